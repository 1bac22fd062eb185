package middleware

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/storage"
	"github.com/stewardbot/steward/pkg/cmd"
)

// WithCommandLogger records a command execution into the guild history after
// it runs. Logging failures never affect the command's own result. Component
// clicks and prefix messages are not recorded; the activity view reports on
// command invocations, not navigation.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				logInteraction(v.Session, v.Storage, v.Event, c.Name())
			case *command.MessageApplicationCommandContext:
				logInteraction(v.Session, v.Storage, v.Event, c.Name())
			}
			return err
		})
	}
}

func logInteraction(s *discordgo.Session, store *storage.Storage, e *discordgo.InteractionCreate, name string) {
	if store == nil || e.GuildID == "" {
		return
	}
	user := resolveUser(s, e)
	if err := bot.LogCommand(s, store, e.GuildID, e.ChannelID, user.ID, user.Username, name); err != nil {
		log.Warn().Err(err).Str("command", name).Msg("failed to log command")
	}
}

// resolveUser retrieves the acting user from an interaction event. Guild
// interactions carry a member, DMs carry a bare user.
func resolveUser(s *discordgo.Session, e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		return e.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}
