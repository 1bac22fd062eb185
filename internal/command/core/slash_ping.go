package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

type PingCommand struct{}

func (c *PingCommand) Name() string             { return "ping" }
func (c *PingCommand) Description() string      { return "Check bot latency" }
func (c *PingCommand) Module() module.ID        { return module.Core }
func (c *PingCommand) UserPermissions() []int64 { return []int64{} }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	switch t := ctx.(type) {
	case *command.SlashInteractionContext:
		latency := t.Session.HeartbeatLatency().Milliseconds()
		return bot.Respond(t.Session, t.Event, fmt.Sprintf("🏓 Pong! %dms", latency))
	case *command.MessageContext:
		latency := t.Session.HeartbeatLatency().Milliseconds()
		return bot.Message(t.Session, t.Event.ChannelID, fmt.Sprintf("🏓 Pong! %dms", latency))
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&PingCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
