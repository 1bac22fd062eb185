// Package module defines the closed set of feature modules commands belong
// to. Each module can be toggled per guild, can require permissions to be
// visible, and can carry an enablement predicate evaluated per render.
package module

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/storage"
)

// ID identifies a module. The set is closed: commands reference these
// constants and lookups go through the typed registry, not ad hoc strings.
type ID string

const (
	Core          ID = "core"
	Information   ID = "information"
	Gameplay      ID = "gameplay"
	Moderation    ID = "moderation"
	Announcements ID = "announcements"
	Settings      ID = "settings"
)

// Env is what an enablement predicate may inspect. Predicates are read-only
// and must tolerate partially configured guilds.
type Env struct {
	GuildID string
	Store   *storage.Storage
}

// Definition describes one module. Permissions holds the module-declared
// visibility gate: a requester needs at least one of the listed bits.
// Enabled, when non-nil, is consulted on every render; an error or false
// hides the module.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Permissions []int64
	Enabled     func(ctx context.Context, env Env) (bool, error)
}

// Registry is an ordered, immutable set of module definitions.
type Registry struct {
	defs   []Definition
	byID   map[ID]*Definition
	byName map[string]*Definition
}

// NewRegistry builds a registry preserving definition order.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{
		defs:   defs,
		byID:   make(map[ID]*Definition, len(defs)),
		byName: make(map[string]*Definition, len(defs)),
	}
	for i := range r.defs {
		def := &r.defs[i]
		r.byID[def.ID] = def
		r.byName[strings.ToLower(def.Name)] = def
	}
	return r
}

// All returns the definitions in declaration order.
func (r *Registry) All() []Definition {
	return r.defs
}

// ByID returns the definition for an id.
func (r *Registry) ByID(id ID) (*Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// ByName returns the definition matching a name, case-insensitively.
func (r *Registry) ByName(name string) (*Definition, bool) {
	def, ok := r.byName[strings.ToLower(name)]
	return def, ok
}

// Default returns the production module set. Moderation and Settings are
// permission-gated; Announcements only shows up once the guild has an
// announce channel configured.
func Default() *Registry {
	return NewRegistry(
		Definition{
			ID:          Core,
			Name:        "Core",
			Description: "Help, bot info and diagnostics",
		},
		Definition{
			ID:          Information,
			Name:        "Information",
			Description: "Guild and user lookups",
		},
		Definition{
			ID:          Gameplay,
			Name:        "Gameplay",
			Description: "Dice and decision helpers",
		},
		Definition{
			ID:          Moderation,
			Name:        "Moderation",
			Description: "Message cleanup and member discipline",
			Permissions: []int64{
				discordgo.PermissionManageMessages,
				discordgo.PermissionKickMembers,
				discordgo.PermissionModerateMembers,
			},
		},
		Definition{
			ID:          Announcements,
			Name:        "Announcements",
			Description: "Posting to the configured announce channel",
			Enabled: func(ctx context.Context, env Env) (bool, error) {
				if env.Store == nil {
					return false, nil
				}
				return env.Store.HasChannel(env.GuildID, storage.ChannelAnnounce)
			},
		},
		Definition{
			ID:          Settings,
			Name:        "Settings",
			Description: "Per-guild configuration",
			Permissions: []int64{
				discordgo.PermissionAdministrator,
				discordgo.PermissionManageGuild,
			},
		},
	)
}
