package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stewardbot/steward/internal/module"
)

// Navigation state rides inside each control's custom id, so every rendered
// message carries everything needed to handle its own events and no
// server-side session object exists. Shape: "help|<action>[|<module>|<page>]".

const (
	customIDPrefix = "help"
	stateSep       = "|"

	// ActionTop returns to the module list.
	ActionTop = "top"
	// ActionPick is the module selector; the picked value is the lowercased
	// module name.
	ActionPick = "pick"
	// ActionPage jumps to an absolute page of a module.
	ActionPage = "page"
)

// Token is the decoded state of one navigation control.
type Token struct {
	Action string
	Module module.ID
	Page   int
}

// Encode renders the token as a component custom id.
func (t Token) Encode() string {
	switch t.Action {
	case ActionPage:
		return strings.Join([]string{customIDPrefix, t.Action, string(t.Module), strconv.Itoa(t.Page)}, stateSep)
	default:
		return customIDPrefix + stateSep + t.Action
	}
}

// IsMenuCustomID reports whether a component custom id belongs to the menu.
func IsMenuCustomID(customID string) bool {
	return strings.HasPrefix(customID, customIDPrefix+stateSep)
}

// DecodeToken parses a component custom id back into a Token. Malformed ids
// come from replayed or foreign components and decode into errors, never
// panics.
func DecodeToken(customID string) (Token, error) {
	parts := strings.Split(customID, stateSep)
	if len(parts) < 2 || parts[0] != customIDPrefix {
		return Token{}, fmt.Errorf("not a menu custom id: %q", customID)
	}

	switch parts[1] {
	case ActionTop, ActionPick:
		return Token{Action: parts[1]}, nil
	case ActionPage:
		if len(parts) != 4 {
			return Token{}, fmt.Errorf("malformed page state: %q", customID)
		}
		page, err := strconv.Atoi(parts[3])
		if err != nil {
			return Token{}, fmt.Errorf("malformed page number in %q: %w", customID, err)
		}
		return Token{Action: ActionPage, Module: module.ID(parts[2]), Page: page}, nil
	default:
		return Token{}, fmt.Errorf("unknown menu action: %q", parts[1])
	}
}
