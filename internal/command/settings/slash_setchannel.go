package settings

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/storage"
)

type SetChannelCommand struct{}

func (c *SetChannelCommand) Name() string        { return "setchannel" }
func (c *SetChannelCommand) Description() string { return "Set the announce channel for this server" }
func (c *SetChannelCommand) Module() module.ID   { return module.Settings }
func (c *SetChannelCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionAdministrator,
		discordgo.PermissionManageGuild,
	}
}

func (c *SetChannelCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Where announcements should go",
				Required:    true,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
					discordgo.ChannelTypeGuildNews,
				},
			},
		},
	}
}

func (c *SetChannelCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e, st := t.Session, t.Event, t.Storage
	if st == nil {
		return nil
	}

	var channel *discordgo.Channel
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			channel = opt.ChannelValue(s)
		}
	}
	if channel == nil {
		return bot.RespondEphemeral(s, e, "Couldn't tell which channel you meant.")
	}

	if err := st.SetChannel(e.GuildID, storage.ChannelAnnounce, channel.ID); err != nil {
		return bot.RespondEphemeral(s, e, "Couldn't save the channel: "+err.Error())
	}
	return bot.RespondEphemeral(s, e, fmt.Sprintf("Announcements will go to <#%s>.", channel.ID))
}

func init() {
	command.RegisterCommand(
		&SetChannelCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
