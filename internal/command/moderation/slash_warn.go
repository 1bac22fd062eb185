package moderation

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/storage"
)

type WarnCommand struct{}

func (c *WarnCommand) Name() string        { return "warn" }
func (c *WarnCommand) Description() string { return "Record a warning for a member" }
func (c *WarnCommand) Module() module.ID   { return module.Moderation }
func (c *WarnCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *WarnCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member to warn",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "What they did",
				Required:    true,
			},
		},
	}
}

func (c *WarnCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e, st := t.Session, t.Event, t.Storage
	if st == nil {
		return nil
	}

	var target *discordgo.User
	var reason string
	for _, opt := range e.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "reason":
			reason = opt.StringValue()
		}
	}
	if target == nil || reason == "" {
		return bot.RespondEphemeral(s, e, "Need both a member and a reason.")
	}

	moderatorID := ""
	if e.Member != nil && e.Member.User != nil {
		moderatorID = e.Member.User.ID
	}

	count, err := st.AddWarning(e.GuildID, target.ID, storage.Warning{
		ModeratorID: moderatorID,
		Reason:      reason,
		IssuedAt:    time.Now(),
	})
	if err != nil {
		return bot.RespondEphemeral(s, e, "Couldn't record the warning: "+err.Error())
	}

	return bot.Respond(s, e, fmt.Sprintf("⚠️ <@%s> has been warned (warning #%d): %s", target.ID, count, reason))
}

func init() {
	command.RegisterCommand(
		&WarnCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
