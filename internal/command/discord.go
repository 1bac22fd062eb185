// Package command adapts Discord commands to the universal registry in
// pkg/cmd and defines the execution contexts the runtime hands to them.
package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/storage"
	"github.com/stewardbot/steward/pkg/cmd"
)

// Discord-specific contexts (what the runtime passes when executing).

type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Args    []string
	Storage *storage.Storage
}

type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

type MessageApplicationCommandContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Target  *discordgo.Message
}

type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Args    []string
	Storage *storage.Storage
}

// Providers describe how a command is registered with Discord (slash or context menu).

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}

type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// DiscordMeta is exposed by the Discord adapter so middleware can read the
// owning module and permission requirements without depending on the concrete
// Discord command type.
type DiscordMeta interface {
	Module() module.ID
	UserPermissions() []int64
}

// DiscordCommand is what individual Discord commands implement. Run receives
// one of the context types above and returns nil for contexts it does not
// handle.
type DiscordCommand interface {
	Name() string
	Description() string
	Module() module.ID
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// universal registry. It also implements SlashProvider, ContextMenuProvider,
// ComponentInteractionHandler and DiscordMeta by delegating to the inner
// command. Component interactions are routed through Run so the middleware
// chain sees them like any other invocation.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string             { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string      { return a.Cmd.Description() }
func (a *DiscordAdapter) Module() module.ID        { return a.Cmd.Module() }
func (a *DiscordAdapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	if c, ok := inv.Data.(*ComponentInteractionContext); ok {
		if h, ok := a.Cmd.(ComponentInteractionHandler); ok {
			return h.Component(c)
		}
		return nil
	}
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) ContextDefinition() *discordgo.ApplicationCommand {
	if cp, ok := a.Cmd.(ContextMenuProvider); ok {
		return cp.ContextDefinition()
	}
	return nil
}

func (a *DiscordAdapter) Component(ctx *ComponentInteractionContext) error {
	if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

// RegisterCommand registers a Discord command with the universal registry and
// applies middlewares, first listed outermost.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	c := cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
	cmd.DefaultRegistry.Register(c)
}

// GetCommand looks a registered command up by name.
func GetCommand(name string) (cmd.Command, bool) {
	c := cmd.DefaultRegistry.Get(name)
	return c, c != nil
}

// AllCommands returns every registered command, sorted by name.
func AllCommands() []cmd.Command {
	return cmd.DefaultRegistry.GetAll()
}
