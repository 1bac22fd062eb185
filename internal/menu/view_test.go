package menu

import (
	"strings"
	"testing"

	"github.com/stewardbot/steward/internal/module"
)

func TestTopLevelViewShape(t *testing.T) {
	defs := []*module.Definition{
		{ID: "core", Name: "Core", Description: "Help and diagnostics"},
		{ID: "gameplay", Name: "Gameplay", Description: "Dice"},
		{ID: "karaoke", Name: "Karaoke", Description: "Not in the icon table"},
	}
	v := topLevelView(defs)

	if v.Title != "Help Menu" {
		t.Errorf("title = %q", v.Title)
	}
	wantBody := "• Core\n• Gameplay\n• Karaoke"
	if v.Body != wantBody {
		t.Errorf("body = %q, want %q", v.Body, wantBody)
	}

	if len(v.Controls) != 1 {
		t.Fatalf("controls = %d, want one selector", len(v.Controls))
	}
	sel := v.Controls[0]
	if sel.Kind != ControlSelect {
		t.Errorf("control kind = %v", sel.Kind)
	}
	if sel.State != "help|pick" {
		t.Errorf("selector state = %q", sel.State)
	}
	if len(sel.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(sel.Options))
	}

	tests := []struct {
		i     int
		label string
		value string
		icon  string
	}{
		{0, "Core", "core", "🧭"},
		{1, "Gameplay", "gameplay", "🎲"},
		{2, "Karaoke", "karaoke", "📦"},
	}
	for _, tt := range tests {
		opt := sel.Options[tt.i]
		if opt.Label != tt.label || opt.Value != tt.value || opt.Icon != tt.icon {
			t.Errorf("option %d = %+v, want {%s %s %s}", tt.i, opt, tt.label, tt.value, tt.icon)
		}
	}
	if sel.Options[0].Description != "Help and diagnostics" {
		t.Errorf("option description = %q", sel.Options[0].Description)
	}
}

func TestTopLevelViewEmpty(t *testing.T) {
	v := topLevelView(nil)
	if v.Title != "Help Menu" {
		t.Errorf("title = %q", v.Title)
	}
	if v.Body != "" {
		t.Errorf("body = %q, want empty", v.Body)
	}
	if len(v.Controls) != 0 {
		t.Errorf("controls = %d, want none", len(v.Controls))
	}
}

func TestModulePageViewBody(t *testing.T) {
	def := &module.Definition{ID: "gameplay", Name: "gameplay"}
	commands := []Command{
		{Name: "roll", Description: "Roll dice", Category: "Gameplay", MentionID: "123", Parameters: []string{"sides", "count"}},
		{Name: "choose", Category: "Gameplay"},
	}
	v := modulePageView(def, commands, 0)

	if v.Title != "Gameplay Commands" {
		t.Errorf("title = %q, want capitalized module name", v.Title)
	}
	wantBody := strings.Join([]string{
		"</roll:123> - Roll dice",
		"  parameters: sides, count",
		"/choose - No description available",
	}, "\n")
	if v.Body != wantBody {
		t.Errorf("body = %q, want %q", v.Body, wantBody)
	}
	if v.Footer != "Page 1/1" {
		t.Errorf("footer = %q", v.Footer)
	}
}

func TestModulePageViewNavigationTokens(t *testing.T) {
	def := &module.Definition{ID: "fun", Name: "Fun"}
	commands := make([]Command, 12)
	for i := range commands {
		commands[i] = Command{Name: "c", Category: "Fun"}
	}
	v := modulePageView(def, commands, 1)

	prev, err := DecodeToken(findControl(t, v, "Previous").State)
	if err != nil {
		t.Fatalf("decode previous: %v", err)
	}
	if prev.Action != ActionPage || prev.Module != "fun" || prev.Page != 0 {
		t.Errorf("previous token = %+v", prev)
	}

	next, err := DecodeToken(findControl(t, v, "Next").State)
	if err != nil {
		t.Fatalf("decode next: %v", err)
	}
	if next.Action != ActionPage || next.Module != "fun" || next.Page != 2 {
		t.Errorf("next token = %+v", next)
	}

	back, err := DecodeToken(findControl(t, v, "Back to modules").State)
	if err != nil {
		t.Fatalf("decode back: %v", err)
	}
	if back.Action != ActionTop {
		t.Errorf("back token = %+v", back)
	}
}

func TestErrorView(t *testing.T) {
	v := ErrorView()
	if v.Body == "" {
		t.Error("error view needs a user-visible message")
	}
	if len(v.Controls) != 0 {
		t.Errorf("error view must carry no controls, got %d", len(v.Controls))
	}
}

func TestTerminalStripsControls(t *testing.T) {
	v := topLevelView([]*module.Definition{{ID: "core", Name: "Core"}})
	if len(v.Controls) == 0 {
		t.Fatal("fixture should have controls")
	}
	done := Terminal(v)
	if len(done.Controls) != 0 {
		t.Errorf("controls survived: %d", len(done.Controls))
	}
	if done.Title != v.Title || done.Body != v.Body {
		t.Error("terminal render must keep the message content")
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"core", "Core"},
		{"Core", "Core"},
		{"über", "Über"},
	}
	for _, tt := range tests {
		if got := capitalizeFirst(tt.in); got != tt.want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
