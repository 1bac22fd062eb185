package announcements

import (
	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/storage"
)

type AnnounceCommand struct{}

func (c *AnnounceCommand) Name() string        { return "announce" }
func (c *AnnounceCommand) Description() string { return "Post a message to the announce channel" }
func (c *AnnounceCommand) Module() module.ID   { return module.Announcements }
func (c *AnnounceCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}

func (c *AnnounceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "What to announce",
				Required:    true,
			},
		},
	}
}

func (c *AnnounceCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e, st := t.Session, t.Event, t.Storage
	if st == nil {
		return nil
	}

	message := ""
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "message" {
			message = opt.StringValue()
		}
	}
	if message == "" {
		return bot.RespondEphemeral(s, e, "There's nothing to announce.")
	}

	channelID, err := st.Channel(e.GuildID, storage.ChannelAnnounce)
	if err != nil {
		return bot.RespondEphemeral(s, e, "No announce channel configured. Set one with `/setchannel`.")
	}

	embedMsg := &discordgo.MessageEmbed{
		Title:       "📣 Announcement",
		Description: message,
		Color:       bot.EmbedColor,
	}
	if err := bot.MessageEmbed(s, channelID, embedMsg); err != nil {
		return bot.RespondEphemeral(s, e, "Couldn't post the announcement: "+err.Error())
	}

	return bot.RespondEphemeral(s, e, "Announced.")
}

func init() {
	command.RegisterCommand(
		&AnnounceCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
