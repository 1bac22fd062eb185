// Package middleware wraps registered commands with cross-cutting checks:
// module enablement, guild-only access, user permissions and execution
// logging.
package middleware

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/storage"
	"github.com/stewardbot/steward/pkg/cmd"
)

// WithModuleAccessCheck blocks commands whose module the guild has turned
// off. The guild flag is the only thing checked here; permission gates run in
// their own middleware.
func WithModuleAccessCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			var (
				guildID string
				stor    *storage.Storage
				respond func(string)
			)

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(msg string) {
					bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
			case *command.ComponentInteractionContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(msg string) {
					bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
			case *command.MessageApplicationCommandContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(msg string) {
					bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
			case *command.MessageContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(_ string) {}
			default:
				return c.Run(ctx, inv)
			}

			if moduleDisabled(c, guildID, stor, respond) {
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

func moduleDisabled(c cmd.Command, guildID string, stor *storage.Storage, respond func(string)) bool {
	if guildID == "" || stor == nil {
		return false
	}
	meta, ok := cmd.Root(c).(command.DiscordMeta)
	if !ok || meta.Module() == "" {
		return false
	}
	disabled, err := stor.IsModuleDisabled(guildID, string(meta.Module()))
	if err != nil {
		return false
	}
	if disabled {
		respond("This command belongs to a module that is disabled on this server.\nUse `/modules status` to see which modules are off.")
		return true
	}
	return false
}
