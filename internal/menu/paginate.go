package menu

import (
	"strings"

	"github.com/stewardbot/steward/internal/module"
)

// visibleModuleCommands returns the commands belonging to def that the
// requester may see, in registration order. Category comparison is
// case-insensitive; a command with declared permissions is visible only when
// the requester holds every listed bit.
func (r *Renderer) visibleModuleCommands(req Requester, def *module.Definition) []Command {
	var visible []Command
	for _, c := range r.commands.Commands() {
		if !strings.EqualFold(c.Category, def.Name) {
			continue
		}
		if !hasAll(req.Permissions, c.Permissions) {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

// pageCount reports how many pages n commands occupy. An empty module still
// occupies one page so the footer stays well formed.
func pageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// pageSlice returns the commands on the given 0-based page. The caller has
// already bounds-checked page against pageCount.
func pageSlice(commands []Command, page int) []Command {
	start := page * PageSize
	if start >= len(commands) {
		return nil
	}
	end := start + PageSize
	if end > len(commands) {
		end = len(commands)
	}
	return commands[start:end]
}
