package discord

import (
	"context"
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/pkg/cmd"
	"github.com/stewardbot/steward/pkg/retrylimit"
)

// registerLimiter paces command create/delete calls across all guilds. It
// backs off when Discord reports rate limiting and creeps back up on success.
var registerLimiter = retrylimit.NewAdaptiveLimiter(25, 5, 40, 1, 0.5)

// registerCommands reconciles the guild's registered application commands
// with the local registry: obsolete ones are deleted, new or changed ones
// are created, unchanged ones are left alone. A hash per definition, cached
// on disk, decides "changed".
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	existing, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("could not list existing commands")
	}
	localHashes := loadCommandHashes(guildID)

	var wanted []*discordgo.ApplicationCommand
	wantedHashes := make(map[string]string)
	for _, c := range command.AllCommands() {
		if def := normalizeDefinition(c); def != nil {
			wanted = append(wanted, def)
			wantedHashes[def.Name] = hashCommand(def)
		}
	}

	// Remember the ids Discord already assigned, and delete what the
	// registry no longer declares.
	for _, old := range existing {
		if _, ok := wantedHashes[old.Name]; !ok {
			log.Info().Str("guild", guildID).Str("command", old.Name).Msg("deleting obsolete command")
			if err := b.deletePaced(appID, guildID, old.ID); err != nil {
				log.Error().Err(err).Str("guild", guildID).Str("command", old.Name).Msg("failed to delete command")
			}
			delete(localHashes, old.Name)
			continue
		}
		command.SetAppCommandID(old.Name, old.ID)
	}

	var changed []*discordgo.ApplicationCommand
	for _, def := range wanted {
		if localHashes[def.Name] != wantedHashes[def.Name] {
			changed = append(changed, def)
		}
	}

	if len(changed) > 0 {
		log.Info().Str("guild", guildID).Int("count", len(changed)).Msg("updating changed commands")
		for _, def := range changed {
			created, err := b.createPaced(appID, guildID, def)
			if err != nil {
				log.Error().Err(err).Str("guild", guildID).Str("command", def.Name).Msg("failed to create command")
				continue
			}
			command.SetAppCommandID(created.Name, created.ID)
			localHashes[def.Name] = wantedHashes[def.Name]
		}
	}

	saveCommandHashes(guildID, localHashes)
	return nil
}

// registrationRetry bounds how long one create/delete may keep retrying; a
// definition Discord rejects outright is fatal, not retryable.
func registrationRetry() retrylimit.RetryConfig {
	cfg := retrylimit.DefaultRetryConfig()
	cfg.MaxAttempts = 5
	return cfg
}

func (b *Bot) createPaced(appID, guildID string, def *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error) {
	var created *discordgo.ApplicationCommand
	err := retrylimit.WithRetryConfig(context.Background(), func() error {
		c, err := b.dg.ApplicationCommandCreate(appID, guildID, def)
		if err != nil {
			return classifyAPIError(err)
		}
		created = c
		return nil
	}, registerLimiter, registrationRetry())
	return created, err
}

func (b *Bot) deletePaced(appID, guildID, commandID string) error {
	return retrylimit.WithRetryConfig(context.Background(), func() error {
		if err := b.dg.ApplicationCommandDelete(appID, guildID, commandID); err != nil {
			return classifyAPIError(err)
		}
		return nil
	}, registerLimiter, registrationRetry())
}

// normalizeDefinition returns a command's registration payload with the type
// defaulted, or nil for commands that register nothing. The registry hands
// back middleware-wrapped commands, so unwrap to the adapter first.
func normalizeDefinition(wrapped cmd.Command) *discordgo.ApplicationCommand {
	c := cmd.Root(wrapped)
	if slash, ok := c.(command.SlashProvider); ok {
		if def := slash.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	}
	if menu, ok := c.(command.ContextMenuProvider); ok {
		if def := menu.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.MessageApplicationCommand
			}
			return def
		}
	}
	return nil
}

// statusError exposes the HTTP status of a Discord API failure to the retry
// classifier.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string   { return e.err.Error() }
func (e *statusError) StatusCode() int { return e.status }
func (e *statusError) Unwrap() error   { return e.err }

// classifyAPIError maps discordgo errors onto the retry helper's taxonomy:
// 429 and 5xx retry with backoff, other 4xx are fatal.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}

	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return &statusError{status: http.StatusTooManyRequests, err: err}
	}

	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		code := rest.Response.StatusCode
		if code == http.StatusTooManyRequests || code >= 500 {
			return &statusError{status: code, err: err}
		}
		if code >= 400 {
			return &retrylimit.FatalError{Err: err}
		}
	}
	return err
}
