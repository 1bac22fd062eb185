package information

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

type ServerInfoCommand struct{}

func (c *ServerInfoCommand) Name() string             { return "serverinfo" }
func (c *ServerInfoCommand) Description() string      { return "Show this server's profile" }
func (c *ServerInfoCommand) Module() module.ID        { return module.Information }
func (c *ServerInfoCommand) UserPermissions() []int64 { return []int64{} }

func (c *ServerInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ServerInfoCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := t.Session, t.Event

	guild, err := s.State.Guild(e.GuildID)
	if err != nil {
		guild, err = s.Guild(e.GuildID)
		if err != nil {
			return bot.RespondEphemeral(s, e, "Couldn't look this server up right now.")
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetTitle(guild.Name).
		AddField("Owner", fmt.Sprintf("<@%s>", guild.OwnerID)).
		AddField("Members", fmt.Sprintf("%d", guild.MemberCount)).
		AddField("Channels", fmt.Sprintf("%d", len(guild.Channels))).
		AddField("Roles", fmt.Sprintf("%d", len(guild.Roles))).
		AddField("Created", created.Format("2006-01-02"))
	if guild.Icon != "" {
		embedMsg = embedMsg.SetThumbnail(guild.IconURL("256"))
	}

	return bot.RespondEmbed(s, e, embedMsg.MessageEmbed)
}

func init() {
	command.RegisterCommand(
		&ServerInfoCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
