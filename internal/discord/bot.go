// Package discord runs the bot: session lifecycle, event dispatch into the
// command registry, and slash-command registration against the Discord API.
package discord

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/command/core"
	"github.com/stewardbot/steward/internal/config"
	"github.com/stewardbot/steward/internal/storage"
	"github.com/stewardbot/steward/pkg/cmd"
	"github.com/stewardbot/steward/pkg/jobmgr"
)

// Bot is the running Discord bot.
type Bot struct {
	dg      *discordgo.Session
	storage *storage.Storage
	cfg     *config.Config
}

// StartBot runs the bot until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage) error {
	b := &Bot{
		cfg:     cfg,
		storage: store,
	}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	if err := jobmgr.DefaultManager.StartAsync("menu-expiry", core.RunSessionSweeper); err != nil {
		log.Warn().Err(err).Msg("menu expiry sweeper not started")
	}
	defer func() { _ = jobmgr.DefaultManager.Stop("menu-expiry") }()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, closing session")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
}

// onReady registers commands for every guild the bot is already in, after
// leaving any blacklisted ones.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Info().Str("guild", g.ID).Msg("leaving blacklisted guild")
			if err := s.GuildLeave(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("failed to leave guild")
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("failed to register slash commands")
			}
		} else {
			log.Info().Str("guild", g.ID).Msg("slash command registration skipped")
		}
	}

	log.Info().Str("username", s.State.User.Username).Msg("bot is running")
}

// onGuildCreate seeds the guild's settings document and registers commands
// when the bot joins a new guild.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Info().Str("guild", g.Guild.ID).Msg("leaving blacklisted guild")
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to leave guild")
		}
		return
	}

	if err := b.storage.EnsureGuildRecord(g.Guild.ID); err != nil {
		log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to seed guild settings")
	}

	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to register commands for new guild")
	}
}

// onMessageCreate dispatches prefix commands ("!help" style).
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	prefix := b.cfg.CommandPrefix
	if prefix == "" || !strings.HasPrefix(m.Content, prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])

	c, ok := command.GetCommand(name)
	if !ok {
		return
	}

	mctx := &command.MessageContext{
		Session: s,
		Event:   m,
		Args:    fields[1:],
		Storage: b.storage,
	}
	if err := c.Run(context.Background(), &cmd.Invocation{Args: fields[1:], Data: mctx}); err != nil {
		log.Error().Err(err).Str("command", name).Msg("message command failed")
	}
}

// onInteractionCreate dispatches slash commands, context menu commands and
// component interactions.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		c, ok := command.GetCommand(data.Name)
		if !ok {
			log.Warn().Str("command", data.Name).Msg("unknown application command")
			return
		}

		var runCtx interface{}
		switch data.CommandType {
		case discordgo.MessageApplicationCommand:
			runCtx = &command.MessageApplicationCommandContext{
				Session: s,
				Event:   i,
				Storage: b.storage,
				Target:  resolvedTargetMessage(i),
			}
		default:
			runCtx = &command.SlashInteractionContext{
				Session: s,
				Event:   i,
				Storage: b.storage,
			}
		}

		if err := c.Run(context.Background(), &cmd.Invocation{Data: runCtx}); err != nil {
			log.Error().Err(err).Str("command", data.Name).Msg("application command failed")
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		c := matchComponentCommand(customID)
		if c == nil {
			log.Warn().Str("custom_id", customID).Msg("no command claims this component")
			return
		}

		cctx := &command.ComponentInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
		}
		if err := c.Run(context.Background(), &cmd.Invocation{Data: cctx}); err != nil {
			log.Error().Err(err).Str("custom_id", customID).Msg("component interaction failed")
		}
	}
}

// matchComponentCommand routes a component custom id to the command that owns
// it. Custom ids start with the command name followed by a separator.
func matchComponentCommand(customID string) cmd.Command {
	for _, name := range cmd.DefaultRegistry.Names() {
		if customID == name ||
			strings.HasPrefix(customID, name+"|") ||
			strings.HasPrefix(customID, name+":") ||
			strings.HasPrefix(customID, name+"_") {
			return cmd.DefaultRegistry.Get(name)
		}
	}
	return nil
}

// resolvedTargetMessage extracts the target of a message context menu command.
func resolvedTargetMessage(i *discordgo.InteractionCreate) *discordgo.Message {
	data := i.ApplicationCommandData()
	if data.Resolved == nil {
		return nil
	}
	return data.Resolved.Messages[data.TargetID]
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.GuildBlacklist, guildID)
}
