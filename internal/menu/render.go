package menu

import (
	"context"
	"fmt"

	"github.com/stewardbot/steward/internal/module"
)

// TopLevel computes the module-selection view for one requester.
//
// ErrSettingsUnavailable means the guild has no settings document and the
// caller must not render anything at all. Any other error is a failed
// settings read; the caller falls back to ErrorView.
func (r *Renderer) TopLevel(ctx context.Context, req Requester) (View, error) {
	visible, err := r.visibleModules(ctx, req)
	if err != nil {
		return View{}, err
	}
	return topLevelView(visible), nil
}

// ModulePage computes one 0-based page of a module's command view. The module
// gates were applied when the top-level view was built; a navigation event
// re-checks only what it renders, the per-command permissions and the page
// bounds. A replayed stale control can still request a page outside
// [0, pageCount), which surfaces as ErrInvalidPageIndex.
func (r *Renderer) ModulePage(req Requester, id module.ID, page int) (View, error) {
	def, ok := r.modules.ByID(id)
	if !ok {
		return View{}, fmt.Errorf("unknown module %q", id)
	}

	commands := r.visibleModuleCommands(req, def)
	if pages := pageCount(len(commands)); page < 0 || page >= pages {
		return View{}, fmt.Errorf("%w: page %d of %d", ErrInvalidPageIndex, page+1, pages)
	}
	return modulePageView(def, commands, page), nil
}
