package settings

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/pkg/util"
)

const (
	discordMaxMessageLength = 2000
	codeBlockOpen           = "```md"
	codeBlockClose          = "```"
)

var maxTableLength = discordMaxMessageLength - len(codeBlockOpen) - len(codeBlockClose) - 2

type ActivityCommand struct{}

func (c *ActivityCommand) Name() string        { return "activity" }
func (c *ActivityCommand) Description() string { return "Review recently executed commands" }
func (c *ActivityCommand) Module() module.ID   { return module.Settings }
func (c *ActivityCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionAdministrator,
		discordgo.PermissionManageGuild,
	}
}

func (c *ActivityCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ActivityCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e, st := t.Session, t.Event, t.Storage
	if st == nil {
		return nil
	}

	records, err := st.FetchCommandHistory(e.GuildID)
	if err != nil {
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Failed to fetch command history: %v", err),
		})
	}
	if len(records) == 0 {
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "No command history yet.",
		})
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-16s\t%-15s\t%-12s\t%s\n", "# Datetime", "# Username", "# Channel", "# Command"))

	// Latest first, bounded by the message length cap.
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		line := fmt.Sprintf(
			"%-16s\t%-15s\t#%-12s\t/%s\n",
			util.FormatDateTpl(r.Datetime.UnixMilli(), "YYYY-MM-DD hh:mm"),
			r.Username,
			r.ChannelName,
			r.Command,
		)
		if builder.Len()+len(line) > maxTableLength {
			break
		}
		builder.WriteString(line)
	}

	return bot.RespondEphemeral(s, e, codeBlockOpen+"\n"+builder.String()+codeBlockClose)
}

func init() {
	command.RegisterCommand(
		&ActivityCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
