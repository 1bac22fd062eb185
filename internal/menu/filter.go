package menu

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/pkg/util"
)

// predicateWorkers bounds the concurrent enablement checks; the checks are
// independent reads, so evaluating them in parallel only shaves latency.
const predicateWorkers = 4

// visibleModules returns the module definitions the requester may see, in
// category discovery order. A nil result with a nil error is a valid empty
// menu.
func (r *Renderer) visibleModules(ctx context.Context, req Requester) ([]*module.Definition, error) {
	flags, exists, err := r.settings.ModuleFlags(req.GuildID)
	if err != nil {
		return nil, fmt.Errorf("read guild settings: %w", err)
	}
	if !exists {
		return nil, ErrSettingsUnavailable
	}

	// Cheap gates first: guild flag, then both permission tables. Categories
	// that survive move on to the (possibly slow) enablement predicates.
	var candidates []*module.Definition
	for _, category := range discoverCategories(r.commands.Commands()) {
		def, known := r.modules.ByName(category)
		if !known {
			log.Debug().Str("category", category).Msg("command category matches no module, hiding")
			continue
		}

		if flag, present := flags[string(def.ID)]; present && !flag {
			continue
		}
		if !hasAny(req.Permissions, def.Permissions) {
			continue
		}
		if !hasAny(req.Permissions, r.gates[def.ID]) {
			continue
		}
		candidates = append(candidates, def)
	}

	keep := make([]bool, len(candidates))
	indexes := make([]int, len(candidates))
	for i := range indexes {
		indexes[i] = i
	}

	// Predicate errors demote to "disabled", they never fail the render, so
	// the parallel runner always sees nil.
	_ = util.Parallel(indexes, predicateWorkers, func(_ context.Context, i int) error {
		def := candidates[i]
		if def.Enabled == nil {
			keep[i] = true
			return nil
		}
		enabled, err := def.Enabled(ctx, module.Env{GuildID: req.GuildID, Store: r.store})
		if err != nil {
			log.Debug().Err(fmt.Errorf("%w: %v", ErrModulePredicateFailed, err)).
				Str("module", string(def.ID)).Msg("hiding module")
			return nil
		}
		keep[i] = enabled
		return nil
	})

	var visible []*module.Definition
	for i, def := range candidates {
		if keep[i] {
			visible = append(visible, def)
		}
	}
	return visible, nil
}

// discoverCategories returns the distinct command categories in first-seen
// order.
func discoverCategories(commands []Command) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, c := range commands {
		if c.Category == "" || seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		categories = append(categories, c.Category)
	}
	return categories
}
