package moderation

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

type WarningsCommand struct{}

func (c *WarningsCommand) Name() string        { return "warnings" }
func (c *WarningsCommand) Description() string { return "List the warnings recorded for a member" }
func (c *WarningsCommand) Module() module.ID   { return module.Moderation }
func (c *WarningsCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *WarningsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member to look up",
				Required:    true,
			},
		},
	}
}

func (c *WarningsCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e, st := t.Session, t.Event, t.Storage
	if st == nil {
		return nil
	}

	var target *discordgo.User
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		return bot.RespondEphemeral(s, e, "Couldn't tell who to look up.")
	}

	warnings, err := st.UserWarnings(e.GuildID, target.ID)
	if err != nil {
		return bot.RespondEphemeral(s, e, "Couldn't read warnings: "+err.Error())
	}
	if len(warnings) == 0 {
		return bot.RespondEphemeral(s, e, fmt.Sprintf("<@%s> has a clean record.", target.ID))
	}

	var lines []string
	for i, w := range warnings {
		lines = append(lines, fmt.Sprintf("**%d.** %s (by <@%s>, %s)",
			i+1, w.Reason, w.ModeratorID, w.IssuedAt.Format("2006-01-02")))
	}

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetTitle(fmt.Sprintf("Warnings for %s", target.Username)).
		SetDescription(strings.Join(lines, "\n"))

	return bot.RespondEmbedEphemeral(s, e, embedMsg.MessageEmbed)
}

func init() {
	command.RegisterCommand(
		&WarningsCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
