package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/menu"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/storage"
	"github.com/stewardbot/steward/pkg/cmd"
)

// helpModules is the module set the menu renders from, shared by every help
// invocation.
var helpModules = module.Default()

// helpModuleGates is the menu's own per-module permission table, applied on
// top of each module's declared permissions. Both checks use
// hold-at-least-one semantics and both must pass.
var helpModuleGates = map[module.ID][]int64{
	module.Moderation: {
		discordgo.PermissionManageMessages,
		discordgo.PermissionKickMembers,
		discordgo.PermissionModerateMembers,
	},
	module.Settings: {
		discordgo.PermissionAdministrator,
		discordgo.PermissionManageGuild,
	},
}

// helpSessions tracks rendered menus so idle ones lose their controls.
var helpSessions = menu.NewTracker()

// RunSessionSweeper expires idle help menus until ctx ends. The runtime
// starts it as a background job.
func RunSessionSweeper(ctx context.Context) error {
	return helpSessions.Run(ctx, 30*time.Second)
}

// HelpCommand renders the interactive help menu: a module list with a
// paginated command view per module.
type HelpCommand struct{}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "Browse the bot's commands by module" }
func (c *HelpCommand) Module() module.ID        { return module.Core }
func (c *HelpCommand) UserPermissions() []int64 { return []int64{} }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "module",
				Description: "Module to look up",
				Required:    false,
			},
		},
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	switch t := ctx.(type) {
	case *command.SlashInteractionContext:
		return c.runSlash(t)
	case *command.MessageContext:
		return c.runMessage(t)
	}
	return nil
}

func (c *HelpCommand) runSlash(ctx *command.SlashInteractionContext) error {
	s, e, st := ctx.Session, ctx.Event, ctx.Storage
	if st == nil {
		return nil
	}

	// The module option is accepted but not acted on: the menu always opens
	// at the module list and module selection happens through the selector.
	data := e.ApplicationCommandData()
	if len(data.Options) > 0 {
		_ = data.Options[0].StringValue()
	}

	req := menu.Requester{
		GuildID:     e.GuildID,
		UserID:      interactionUserID(e),
		Permissions: bot.ResolvePermissions(e),
	}

	view, err := helpRenderer(st).TopLevel(context.Background(), req)
	if err != nil {
		if errors.Is(err, menu.ErrSettingsUnavailable) {
			log.Debug().Str("guild", e.GuildID).Msg("help menu skipped, guild has no settings record")
			return nil
		}
		log.Error().Err(err).Str("guild", e.GuildID).Msg("help menu render failed")
		view = menu.ErrorView()
	}

	if err := bot.RespondEmbedComponents(s, e, viewEmbed(view), viewComponents(view)); err != nil {
		log.Debug().Err(err).Msg("help menu response dropped")
		return nil
	}

	if len(view.Controls) > 0 {
		if msg, err := s.InteractionResponse(e.Interaction); err == nil {
			trackMenuMessage(s, msg.ChannelID, msg.ID, view)
		}
	}
	return nil
}

func (c *HelpCommand) runMessage(ctx *command.MessageContext) error {
	s, m, st := ctx.Session, ctx.Event, ctx.Storage
	if st == nil {
		return nil
	}

	req := menu.Requester{
		GuildID:     m.GuildID,
		UserID:      m.Author.ID,
		Permissions: bot.ResolveMessagePermissions(s, m),
	}

	view, err := helpRenderer(st).TopLevel(context.Background(), req)
	if err != nil {
		if errors.Is(err, menu.ErrSettingsUnavailable) {
			log.Debug().Str("guild", m.GuildID).Msg("help menu skipped, guild has no settings record")
			return nil
		}
		log.Error().Err(err).Str("guild", m.GuildID).Msg("help menu render failed")
		view = menu.ErrorView()
	}

	msg, err := bot.MessageEmbedComponents(s, m.ChannelID, viewEmbed(view), viewComponents(view))
	if err != nil {
		log.Debug().Err(err).Msg("help menu message dropped")
		return nil
	}
	if len(view.Controls) > 0 {
		trackMenuMessage(s, msg.ChannelID, msg.ID, view)
	}
	return nil
}

func (c *HelpCommand) Component(ctx *command.ComponentInteractionContext) error {
	s, e, st := ctx.Session, ctx.Event, ctx.Storage
	if st == nil {
		return nil
	}
	data := e.MessageComponentData()

	token, err := menu.DecodeToken(data.CustomID)
	if err != nil {
		log.Debug().Err(err).Str("custom_id", data.CustomID).Msg("unrecognized help menu control")
		return nil
	}

	req := menu.Requester{
		GuildID:     e.GuildID,
		UserID:      interactionUserID(e),
		Permissions: bot.ResolvePermissions(e),
	}

	view, err := viewForToken(helpRenderer(st), req, token, data.Values)
	if err != nil {
		if errors.Is(err, menu.ErrSettingsUnavailable) {
			log.Debug().Str("guild", e.GuildID).Msg("help menu update skipped, guild has no settings record")
			if err := bot.RespondDeferredUpdate(s, e); err != nil {
				log.Debug().Err(err).Msg("help menu ack dropped")
			}
			return nil
		}
		log.Warn().Err(err).Str("guild", e.GuildID).Str("custom_id", data.CustomID).Msg("help menu navigation failed")
		view = menu.ErrorView()
	}

	if err := bot.RespondUpdateEmbedComponents(s, e, viewEmbed(view), viewComponents(view)); err != nil {
		log.Debug().Err(err).Msg("help menu update dropped")
		return nil
	}

	if e.Message != nil {
		if len(view.Controls) > 0 {
			trackMenuMessage(s, e.Message.ChannelID, e.Message.ID, view)
		} else {
			helpSessions.Forget(menuKey(e.Message.ChannelID, e.Message.ID))
		}
	}
	return nil
}

// viewForToken resolves one navigation event into the view it asks for.
func viewForToken(r *menu.Renderer, req menu.Requester, token menu.Token, values []string) (menu.View, error) {
	switch token.Action {
	case menu.ActionTop:
		return r.TopLevel(context.Background(), req)
	case menu.ActionPick:
		if len(values) == 0 {
			return menu.View{}, errors.New("module selector fired without a value")
		}
		def, ok := helpModules.ByName(values[0])
		if !ok {
			return menu.View{}, fmt.Errorf("picked unknown module %q", values[0])
		}
		return r.ModulePage(req, def.ID, 0)
	case menu.ActionPage:
		return r.ModulePage(req, token.Module, token.Page)
	default:
		return menu.View{}, fmt.Errorf("unhandled menu action %q", token.Action)
	}
}

func helpRenderer(st *storage.Storage) *menu.Renderer {
	return menu.NewRenderer(registryCommands{}, helpModules, st, st, helpModuleGates)
}

// registryCommands adapts the command registry to the menu's read model.
// Commands surface in module declaration order, name-sorted within a module,
// which fixes the order modules first appear in the top-level view. Commands
// without a slash definition (context menu entries) are not listed.
type registryCommands struct{}

func (registryCommands) Commands() []menu.Command {
	byModule := make(map[module.ID][]menu.Command)
	for _, c := range command.AllCommands() {
		root := cmd.Root(c)
		meta, ok := root.(command.DiscordMeta)
		if !ok {
			continue
		}
		slash, ok := root.(command.SlashProvider)
		if !ok {
			continue
		}
		def := slash.SlashDefinition()
		if def == nil {
			continue
		}

		mc := menu.Command{
			Name:        c.Name(),
			Description: c.Description(),
			Permissions: meta.UserPermissions(),
			MentionID:   command.AppCommandID(c.Name()),
		}
		for _, opt := range def.Options {
			mc.Parameters = append(mc.Parameters, opt.Name)
		}
		if moduleDef, ok := helpModules.ByID(meta.Module()); ok {
			mc.Category = moduleDef.Name
		}
		byModule[meta.Module()] = append(byModule[meta.Module()], mc)
	}

	var out []menu.Command
	for _, def := range helpModules.All() {
		out = append(out, byModule[def.ID]...)
	}
	return out
}

// menuKey identifies one rendered menu message across channels.
func menuKey(channelID, messageID string) string {
	return channelID + "/" + messageID
}

// trackMenuMessage arms (or re-arms) the expiry session for a rendered menu.
// On expiry the message is edited down to its embed, controls stripped; the
// message itself stays.
func trackMenuMessage(s *discordgo.Session, channelID, messageID string, v menu.View) {
	terminal := menu.Terminal(v)
	helpSessions.Track(menuKey(channelID, messageID), func() {
		err := bot.EditMessageEmbedComponents(s, channelID, messageID, viewEmbed(terminal), []discordgo.MessageComponent{})
		if err != nil {
			log.Debug().Err(err).Str("message", messageID).Msg("could not strip controls from expired help menu")
		}
	})
}

func viewEmbed(v menu.View) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       v.Title,
		Description: v.Body,
		Color:       bot.EmbedColor,
	}
	if v.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: v.Footer}
	}
	return embed
}

// viewComponents lays controls out in rows: buttons share one row, each
// select gets its own. The result is never nil so an update always replaces
// the previous rows.
func viewComponents(v menu.View) []discordgo.MessageComponent {
	rows := []discordgo.MessageComponent{}
	var buttons []discordgo.MessageComponent

	flush := func() {
		if len(buttons) > 0 {
			rows = append(rows, discordgo.ActionsRow{Components: buttons})
			buttons = nil
		}
	}

	for _, ctl := range v.Controls {
		switch ctl.Kind {
		case menu.ControlSelect:
			flush()
			options := make([]discordgo.SelectMenuOption, 0, len(ctl.Options))
			for _, opt := range ctl.Options {
				option := discordgo.SelectMenuOption{
					Label:       opt.Label,
					Value:       opt.Value,
					Description: opt.Description,
				}
				if opt.Icon != "" {
					option.Emoji = &discordgo.ComponentEmoji{Name: opt.Icon}
				}
				options = append(options, option)
			}
			rows = append(rows, discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						CustomID:    ctl.State,
						Placeholder: ctl.Placeholder,
						Options:     options,
					},
				},
			})
		case menu.ControlButton:
			buttons = append(buttons, discordgo.Button{
				Label:    ctl.Label,
				Style:    discordgo.SecondaryButton,
				CustomID: ctl.State,
				Disabled: ctl.Disabled,
			})
		}
	}
	flush()
	return rows
}

func interactionUserID(e *discordgo.InteractionCreate) string {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User.ID
	}
	if e.User != nil {
		return e.User.ID
	}
	return ""
}

func init() {
	command.RegisterCommand(
		&HelpCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
