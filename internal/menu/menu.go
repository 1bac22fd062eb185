// Package menu implements the interactive help menu: a permission-filtered
// module list with a paginated command view per module. The package is
// transport-free; it consumes narrow read interfaces and produces Views that
// the Discord layer turns into embeds and components.
package menu

import (
	"time"

	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/storage"
)

const (
	// PageSize is the number of commands shown per module page.
	PageSize = 5

	// SessionTimeout is the inactivity window after which a rendered menu is
	// re-rendered with its controls removed. The message itself stays.
	SessionTimeout = 300 * time.Second
)

// Requester describes who asked for the menu, for one invocation only.
type Requester struct {
	GuildID     string
	UserID      string
	Permissions int64
}

// Command is the renderer's read-only view of one registered command.
type Command struct {
	Name        string
	Description string
	Category    string   // module name the command belongs to
	Permissions []int64  // user permissions required to see the command (all must be held)
	Parameters  []string // ordered parameter names
	MentionID   string   // application command id when known, for clickable mentions
}

// CommandSource lists the registered commands. Order matters: module
// discovery order in the top-level view follows first appearance.
type CommandSource interface {
	Commands() []Command
}

// SettingsSource reads a guild's module flags. The boolean reports whether
// the guild has a settings document at all; absence short-circuits the
// render to a silent no-op.
type SettingsSource interface {
	ModuleFlags(guildID string) (map[string]bool, bool, error)
}

// Renderer computes menu views. Two permission gates guard each module: the
// module's own declared permissions and the renderer's gates table. Both use
// hold-at-least-one semantics and both must pass.
type Renderer struct {
	commands CommandSource
	modules  *module.Registry
	settings SettingsSource
	store    *storage.Storage // handed to enablement predicates, may be nil
	gates    map[module.ID][]int64
}

// NewRenderer builds a Renderer. store backs the module predicates' Env and
// may be nil (predicates must tolerate that); gates may be nil when the
// renderer imposes no extra per-module permissions.
func NewRenderer(commands CommandSource, modules *module.Registry, settings SettingsSource, store *storage.Storage, gates map[module.ID][]int64) *Renderer {
	return &Renderer{
		commands: commands,
		modules:  modules,
		settings: settings,
		store:    store,
		gates:    gates,
	}
}

// hasAny reports whether perms holds at least one of the required bits.
// An empty requirement always passes.
func hasAny(perms int64, required []int64) bool {
	if len(required) == 0 {
		return true
	}
	for _, p := range required {
		if perms&p != 0 {
			return true
		}
	}
	return false
}

// hasAll reports whether perms holds every required bit.
func hasAll(perms int64, required []int64) bool {
	for _, p := range required {
		if perms&p == 0 {
			return false
		}
	}
	return true
}
