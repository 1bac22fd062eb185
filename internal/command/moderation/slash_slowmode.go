package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

type SlowmodeCommand struct{}

func (c *SlowmodeCommand) Name() string        { return "slowmode" }
func (c *SlowmodeCommand) Description() string { return "Set this channel's slowmode interval" }
func (c *SlowmodeCommand) Module() module.ID   { return module.Moderation }
func (c *SlowmodeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}

func (c *SlowmodeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minSeconds := float64(0)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "seconds",
				Description: "Seconds between messages per user, 0 disables (max 21600)",
				Required:    true,
				MinValue:    &minSeconds,
				MaxValue:    21600,
			},
		},
	}
}

func (c *SlowmodeCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := t.Session, t.Event

	seconds := 0
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "seconds" {
			seconds = int(opt.IntValue())
		}
	}

	if _, err := s.ChannelEdit(e.ChannelID, &discordgo.ChannelEdit{RateLimitPerUser: &seconds}); err != nil {
		return bot.RespondEphemeral(s, e, "Couldn't change slowmode: "+err.Error())
	}

	if seconds == 0 {
		return bot.Respond(s, e, "Slowmode disabled.")
	}
	return bot.Respond(s, e, fmt.Sprintf("🐌 Slowmode set to %d seconds.", seconds))
}

func init() {
	command.RegisterCommand(
		&SlowmodeCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
