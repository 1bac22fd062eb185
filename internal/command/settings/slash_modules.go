package settings

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

type ModulesCommand struct{}

func (c *ModulesCommand) Name() string        { return "modules" }
func (c *ModulesCommand) Description() string { return "Turn feature modules on or off for this server" }
func (c *ModulesCommand) Module() module.ID   { return module.Settings }
func (c *ModulesCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionAdministrator,
		discordgo.PermissionManageGuild,
	}
}

func (c *ModulesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Turn a module on",
				Options:     []*discordgo.ApplicationCommandOption{moduleOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Turn a module off",
				Options:     []*discordgo.ApplicationCommandOption{moduleOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show which modules are on or off",
			},
		},
	}
}

func moduleOption() *discordgo.ApplicationCommandOption {
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, def := range module.Default().All() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  def.Name,
			Value: string(def.ID),
		})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "module",
		Description: "Which module",
		Required:    true,
		Choices:     choices,
	}
}

func (c *ModulesCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e, st := t.Session, t.Event, t.Storage
	if st == nil {
		return nil
	}

	data := e.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	sub := data.Options[0]

	switch sub.Name {
	case "enable", "disable":
		id := ""
		for _, opt := range sub.Options {
			if opt.Name == "module" {
				id = opt.StringValue()
			}
		}
		def, known := module.Default().ByID(module.ID(id))
		if !known {
			return bot.RespondEphemeral(s, e, "That module doesn't exist.")
		}

		enable := sub.Name == "enable"
		if !enable && isProtectedModule(def.ID) {
			return bot.RespondEphemeral(s, e, fmt.Sprintf("The `%s` module can't be disabled.", def.Name))
		}

		if err := st.SetModuleEnabled(e.GuildID, id, enable); err != nil {
			return bot.RespondEphemeral(s, e, "Couldn't update the module: "+err.Error())
		}

		state := "enabled"
		if !enable {
			state = "disabled"
		}
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Module `%s` %s.", def.Name, state),
			Footer:      &discordgo.MessageEmbedFooter{Text: "Use /modules status to see which modules are off."},
			Color:       bot.EmbedColor,
		})

	case "status":
		disabled, err := st.DisabledModules(e.GuildID)
		if err != nil {
			return bot.RespondEphemeral(s, e, "Couldn't read module settings: "+err.Error())
		}
		off := make(map[string]bool, len(disabled))
		for _, id := range disabled {
			off[id] = true
		}

		var lines []string
		for _, def := range module.Default().All() {
			marker := "🟢"
			if off[string(def.ID)] {
				marker = "🔴"
			}
			lines = append(lines, fmt.Sprintf("%s **%s** %s", marker, def.Name, def.Description))
		}

		embedMsg := embed.NewEmbed().
			SetColor(bot.EmbedColor).
			SetTitle("Modules").
			SetDescription(strings.Join(lines, "\n"))
		return bot.RespondEmbedEphemeral(s, e, embedMsg.MessageEmbed)
	}
	return nil
}

// isProtectedModule reports whether a module must stay enabled. Disabling
// core or settings would lock a guild out of the toggle itself.
func isProtectedModule(id module.ID) bool {
	return id == module.Core || id == module.Settings
}

func init() {
	command.RegisterCommand(
		&ModulesCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
