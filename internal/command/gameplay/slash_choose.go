package gameplay

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

type ChooseCommand struct{}

func (c *ChooseCommand) Name() string             { return "choose" }
func (c *ChooseCommand) Description() string      { return "Pick one option from a comma-separated list" }
func (c *ChooseCommand) Module() module.ID        { return module.Gameplay }
func (c *ChooseCommand) UserPermissions() []int64 { return []int64{} }

func (c *ChooseCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "options",
				Description: "Example: `pizza, sushi, tacos`",
				Required:    true,
			},
		},
	}
}

func (c *ChooseCommand) Run(ctx interface{}) error {
	switch t := ctx.(type) {
	case *command.SlashInteractionContext:
		raw := ""
		for _, opt := range t.Event.ApplicationCommandData().Options {
			if opt.Name == "options" {
				raw = opt.StringValue()
			}
		}

		picked, err := pickOption(raw)
		if err != nil {
			return bot.RespondEphemeral(t.Session, t.Event, err.Error())
		}
		return bot.Respond(t.Session, t.Event, fmt.Sprintf("🎯 I pick: **%s**", picked))

	case *command.MessageContext:
		picked, err := pickOption(strings.Join(t.Args, " "))
		if err != nil {
			return bot.Message(t.Session, t.Event.ChannelID, err.Error())
		}
		return bot.Message(t.Session, t.Event.ChannelID, fmt.Sprintf("🎯 I pick: **%s**", picked))
	}
	return nil
}

// pickOption splits a comma-separated list and picks one entry at random.
// Fewer than two non-empty entries is an error, there is nothing to decide.
func pickOption(raw string) (string, error) {
	var options []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	if len(options) < 2 {
		return "", fmt.Errorf("Give me at least two options, separated by commas.")
	}
	return options[rand.Intn(len(options))], nil
}

func init() {
	command.RegisterCommand(
		&ChooseCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
