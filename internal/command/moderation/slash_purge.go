package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Delete recent messages in this channel" }
func (c *PurgeCommand) Module() module.ID   { return module.Moderation }
func (c *PurgeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}

func (c *PurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minCount := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "How many messages to delete (1-100)",
				Required:    true,
				MinValue:    &minCount,
				MaxValue:    100,
			},
		},
	}
}

func (c *PurgeCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := t.Session, t.Event

	if !bot.BotHasPermission(s, e.ChannelID, discordgo.PermissionManageMessages) {
		return bot.RespondEphemeral(s, e, "I can't delete messages in this channel.")
	}

	count := 0
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "count" {
			count = int(opt.IntValue())
		}
	}
	if count < 1 {
		return bot.RespondEphemeral(s, e, "Nothing to delete.")
	}
	if count > 100 {
		count = 100
	}

	msgs, err := s.ChannelMessages(e.ChannelID, count, "", "", "")
	if err != nil {
		return bot.RespondEphemeral(s, e, "Couldn't fetch messages: "+err.Error())
	}

	// Pinned messages survive a purge.
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Pinned {
			continue
		}
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return bot.RespondEphemeral(s, e, "Nothing to delete.")
	}

	if err := s.ChannelMessagesBulkDelete(e.ChannelID, ids); err != nil {
		return bot.RespondEphemeral(s, e, "Couldn't delete messages: "+err.Error())
	}
	return bot.RespondEphemeral(s, e, fmt.Sprintf("🧹 Deleted %d messages.", len(ids)))
}

func init() {
	command.RegisterCommand(
		&PurgeCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
