package information

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

type UserInfoCommand struct{}

func (c *UserInfoCommand) Name() string             { return "userinfo" }
func (c *UserInfoCommand) Description() string      { return "Show a member's profile" }
func (c *UserInfoCommand) Module() module.ID        { return module.Information }
func (c *UserInfoCommand) UserPermissions() []int64 { return []int64{} }

func (c *UserInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member to look up (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *UserInfoCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := t.Session, t.Event

	var user *discordgo.User
	if data := e.ApplicationCommandData(); len(data.Options) > 0 {
		user = data.Options[0].UserValue(s)
	} else if e.Member != nil {
		user = e.Member.User
	}
	if user == nil {
		return bot.RespondEphemeral(s, e, "Couldn't tell who to look up.")
	}

	displayName := user.Username
	if user.GlobalName != "" {
		displayName = user.GlobalName
	}
	created, _ := discordgo.SnowflakeTimestamp(user.ID)

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetTitle(displayName).
		SetThumbnail(user.AvatarURL("256")).
		AddField("Username", user.Username).
		AddField("ID", user.ID).
		AddField("Created", created.Format("2006-01-02"))

	if member, err := s.GuildMember(e.GuildID, user.ID); err == nil {
		if !member.JoinedAt.IsZero() {
			embedMsg = embedMsg.AddField("Joined", member.JoinedAt.Format("2006-01-02"))
		}
		if len(member.Roles) > 0 {
			mentions := make([]string, 0, len(member.Roles))
			for _, roleID := range member.Roles {
				mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
			}
			embedMsg = embedMsg.AddField("Roles", strings.Join(mentions, " "))
		}
	}

	return bot.RespondEmbed(s, e, embedMsg.MessageEmbed)
}

func init() {
	command.RegisterCommand(
		&UserInfoCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
