package announcements

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/storage"
)

// AnnounceContextCommand reposts an existing message to the announce channel
// via the message context menu.
type AnnounceContextCommand struct{}

func (c *AnnounceContextCommand) Name() string        { return "Announce Message" }
func (c *AnnounceContextCommand) Description() string { return "Repost a message to the announce channel" }
func (c *AnnounceContextCommand) Module() module.ID   { return module.Announcements }
func (c *AnnounceContextCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}

func (c *AnnounceContextCommand) ContextDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: c.Name(),
		Type: discordgo.MessageApplicationCommand,
	}
}

func (c *AnnounceContextCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.MessageApplicationCommandContext)
	if !ok {
		return nil
	}
	s, e, st := t.Session, t.Event, t.Storage
	if st == nil {
		return nil
	}

	if err := bot.RespondDeferredEphemeral(s, e); err != nil {
		log.Debug().Err(err).Msg("could not defer announce interaction")
		return nil
	}

	msg := t.Target
	if msg == nil {
		targetID := e.ApplicationCommandData().TargetID
		fetched, err := s.ChannelMessage(e.ChannelID, targetID)
		if err != nil {
			_ = bot.EditResponse(s, e, fmt.Sprintf("Couldn't fetch the message: `%v`", err))
			return nil
		}
		msg = fetched
	}

	if msg.Content == "" && len(msg.Embeds) == 0 && len(msg.Attachments) == 0 {
		_ = bot.EditResponse(s, e, "That message is empty, nothing to announce.")
		return nil
	}

	channelID, err := st.Channel(e.GuildID, storage.ChannelAnnounce)
	if err != nil {
		_ = bot.EditResponse(s, e, "No announce channel configured. Set one with `/setchannel`.")
		return nil
	}

	// Attachments are re-uploaded rather than linked so they survive if the
	// source message is deleted.
	var files []*discordgo.File
	for _, att := range msg.Attachments {
		resp, err := http.Get(att.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", att.URL).Msg("could not download attachment")
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Warn().Err(err).Str("url", att.URL).Msg("could not read attachment")
			continue
		}
		files = append(files, &discordgo.File{
			Name:   att.Filename,
			Reader: bytes.NewReader(data),
		})
	}

	_, err = s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: msg.Content,
		Embeds:  msg.Embeds,
		Files:   files,
	})
	if err != nil {
		_ = bot.EditResponse(s, e, fmt.Sprintf("Couldn't announce it: `%v`", err))
		return nil
	}

	_ = bot.EditResponse(s, e, "Announced.")
	return nil
}

func init() {
	command.RegisterCommand(
		&AnnounceContextCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
