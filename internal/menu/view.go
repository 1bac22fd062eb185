package menu

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stewardbot/steward/internal/module"
)

// ControlKind discriminates the interactive control shapes a View can carry.
type ControlKind int

const (
	ControlButton ControlKind = iota
	ControlSelect
)

// Option is one choice inside a select control.
type Option struct {
	Label       string
	Value       string
	Icon        string
	Description string
}

// Control is one interactive element attached to a View. State carries the
// encoded navigation token the transport layer hands back when the control
// fires, so no server-side session has to exist between events.
type Control struct {
	Kind        ControlKind
	Label       string
	State       string
	Disabled    bool
	Placeholder string
	Options     []Option
}

// View is a render instruction: what to draw and which controls to attach.
// The transport layer turns it into an embed plus component rows and returns
// an opaque handle for later in-place edits.
type View struct {
	Title    string
	Body     string
	Footer   string
	Controls []Control
}

// moduleIcons maps lowercased module names to their display icon in the
// module selector.
var moduleIcons = map[string]string{
	"core":          "🧭",
	"information":   "📚",
	"gameplay":      "🎲",
	"moderation":    "🛡️",
	"announcements": "📣",
	"settings":      "⚙️",
}

const defaultModuleIcon = "📦"

func iconFor(name string) string {
	if icon, ok := moduleIcons[strings.ToLower(name)]; ok {
		return icon
	}
	return defaultModuleIcon
}

// topLevelView renders the module-selection view for the given visible
// modules. Zero modules is valid: the bullet list and the selector are simply
// omitted, because a choiceless selector cannot be rendered.
func topLevelView(visible []*module.Definition) View {
	var body strings.Builder
	for _, def := range visible {
		fmt.Fprintf(&body, "• %s\n", def.Name)
	}

	v := View{
		Title: "Help Menu",
		Body:  strings.TrimRight(body.String(), "\n"),
	}
	if len(visible) == 0 {
		return v
	}

	options := make([]Option, 0, len(visible))
	for _, def := range visible {
		options = append(options, Option{
			Label:       def.Name,
			Value:       strings.ToLower(def.Name),
			Icon:        iconFor(def.Name),
			Description: def.Description,
		})
	}
	v.Controls = []Control{{
		Kind:        ControlSelect,
		State:       Token{Action: ActionPick}.Encode(),
		Placeholder: "Select a module",
		Options:     options,
	}}
	return v
}

// modulePageView renders one page of a module's command list. commands is the
// already-filtered full list; page is 0-based and already bounds-checked.
func modulePageView(def *module.Definition, commands []Command, page int) View {
	pages := pageCount(len(commands))

	back := Control{
		Kind:  ControlButton,
		Label: "Back to modules",
		State: Token{Action: ActionTop}.Encode(),
	}

	v := View{
		Title:  fmt.Sprintf("%s Commands", capitalizeFirst(def.Name)),
		Footer: fmt.Sprintf("Page %d/%d", page+1, pages),
	}

	if len(commands) == 0 {
		v.Body = "No commands available in this module."
		v.Controls = []Control{back}
		return v
	}

	var body strings.Builder
	for _, c := range pageSlice(commands, page) {
		desc := c.Description
		if desc == "" {
			desc = "No description available"
		}
		fmt.Fprintf(&body, "%s - %s\n", commandMention(c), desc)
		if len(c.Parameters) > 0 {
			fmt.Fprintf(&body, "  parameters: %s\n", strings.Join(c.Parameters, ", "))
		}
	}
	v.Body = strings.TrimRight(body.String(), "\n")

	v.Controls = []Control{
		{
			Kind:     ControlButton,
			Label:    "Previous",
			State:    Token{Action: ActionPage, Module: def.ID, Page: page - 1}.Encode(),
			Disabled: page == 0,
		},
		{
			Kind:     ControlButton,
			Label:    "Next",
			State:    Token{Action: ActionPage, Module: def.ID, Page: page + 1}.Encode(),
			Disabled: page == pages-1,
		},
		back,
	}
	return v
}

// commandMention returns the invocable form of a command: a clickable mention
// when the registered application command id is known, a plain slash form
// otherwise.
func commandMention(c Command) string {
	if c.MentionID != "" {
		return fmt.Sprintf("</%s:%s>", c.Name, c.MentionID)
	}
	return "/" + c.Name
}

// ErrorView is the generic failure view: shown whenever computing a menu view
// fails in a way the user has to be told about. It carries no controls.
func ErrorView() View {
	return View{
		Title: "Help Menu",
		Body:  "Something went wrong while rendering this menu.",
	}
}

// Terminal strips a view's controls. Used when the interactive session times
// out: the rendered message stays, only the inputs disappear.
func Terminal(v View) View {
	v.Controls = nil
	return v
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
