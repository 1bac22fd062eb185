package menu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stewardbot/steward/internal/module"
)

func pagedRenderer(n int) *Renderer {
	mods := module.NewRegistry(module.Definition{ID: "fun", Name: "Fun"})
	cmds := make(commandList, 0, n)
	for i := 0; i < n; i++ {
		cmds = append(cmds, Command{Name: fmt.Sprintf("cmd%02d", i), Category: "Fun"})
	}
	return NewRenderer(cmds, mods, staticSettings(nil), nil, nil)
}

func bodyLines(v View) int {
	if v.Body == "" {
		return 0
	}
	return len(strings.Split(v.Body, "\n"))
}

func findControl(t *testing.T, v View, label string) Control {
	t.Helper()
	for _, c := range v.Controls {
		if c.Label == label {
			return c
		}
	}
	t.Fatalf("no %q control in %v", label, v.Controls)
	return Control{}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1}, {1, 1}, {4, 1}, {5, 1}, {6, 2}, {10, 2}, {11, 3}, {12, 3},
	}
	for _, tt := range tests {
		if got := pageCount(tt.n); got != tt.want {
			t.Errorf("pageCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestModulePageSplit(t *testing.T) {
	r := pagedRenderer(12)
	req := Requester{GuildID: "g1"}

	tests := []struct {
		page         int
		wantLines    int
		wantFooter   string
		prevDisabled bool
		nextDisabled bool
	}{
		{0, 5, "Page 1/3", true, false},
		{1, 5, "Page 2/3", false, false},
		{2, 2, "Page 3/3", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.wantFooter, func(t *testing.T) {
			v, err := r.ModulePage(req, "fun", tt.page)
			if err != nil {
				t.Fatalf("ModulePage: %v", err)
			}
			if got := bodyLines(v); got != tt.wantLines {
				t.Errorf("lines = %d, want %d", got, tt.wantLines)
			}
			if v.Footer != tt.wantFooter {
				t.Errorf("footer = %q, want %q", v.Footer, tt.wantFooter)
			}
			if got := findControl(t, v, "Previous").Disabled; got != tt.prevDisabled {
				t.Errorf("Previous disabled = %v, want %v", got, tt.prevDisabled)
			}
			if got := findControl(t, v, "Next").Disabled; got != tt.nextDisabled {
				t.Errorf("Next disabled = %v, want %v", got, tt.nextDisabled)
			}
			findControl(t, v, "Back to modules")
		})
	}
}

func TestModulePageEmpty(t *testing.T) {
	r := pagedRenderer(0)
	v, err := r.ModulePage(Requester{GuildID: "g1"}, "fun", 0)
	if err != nil {
		t.Fatalf("ModulePage: %v", err)
	}
	if v.Body != "No commands available in this module." {
		t.Errorf("body = %q", v.Body)
	}
	if v.Footer != "Page 1/1" {
		t.Errorf("footer = %q", v.Footer)
	}
	if len(v.Controls) != 1 {
		t.Fatalf("controls = %d, want only the back control", len(v.Controls))
	}
	if back := v.Controls[0]; back.Label != "Back to modules" || back.Disabled {
		t.Errorf("back control = %+v", back)
	}
}

func TestModulePageBoundaryReplay(t *testing.T) {
	// Boundary controls are disabled, not clamped. Their tokens still encode
	// the out-of-range target, so a forged or replayed press must come back
	// as an invalid page, never as a clamp to the nearest valid one.
	r := pagedRenderer(12)
	req := Requester{GuildID: "g1"}

	first, err := r.ModulePage(req, "fun", 0)
	if err != nil {
		t.Fatalf("ModulePage: %v", err)
	}
	prev := findControl(t, first, "Previous")
	if !prev.Disabled {
		t.Error("Previous must be inert on the first page")
	}
	tok, err := DecodeToken(prev.State)
	if err != nil {
		t.Fatalf("DecodeToken(%q): %v", prev.State, err)
	}
	if _, err := r.ModulePage(req, tok.Module, tok.Page); !errors.Is(err, ErrInvalidPageIndex) {
		t.Errorf("replaying inert Previous: err = %v, want ErrInvalidPageIndex", err)
	}

	last, err := r.ModulePage(req, "fun", 2)
	if err != nil {
		t.Fatalf("ModulePage: %v", err)
	}
	next := findControl(t, last, "Next")
	if !next.Disabled {
		t.Error("Next must be inert on the last page")
	}
	tok, err = DecodeToken(next.State)
	if err != nil {
		t.Fatalf("DecodeToken(%q): %v", next.State, err)
	}
	if _, err := r.ModulePage(req, tok.Module, tok.Page); !errors.Is(err, ErrInvalidPageIndex) {
		t.Errorf("replaying inert Next: err = %v, want ErrInvalidPageIndex", err)
	}
}

func TestModulePageOutOfRange(t *testing.T) {
	r := pagedRenderer(12)
	req := Requester{GuildID: "g1"}
	for _, page := range []int{-1, 3, 4, 100} {
		if _, err := r.ModulePage(req, "fun", page); !errors.Is(err, ErrInvalidPageIndex) {
			t.Errorf("page %d: err = %v, want ErrInvalidPageIndex", page, err)
		}
	}
}

func TestModulePageCommandVisibility(t *testing.T) {
	mods := module.NewRegistry(module.Definition{ID: "admin", Name: "Admin"})
	cmds := commandList{
		{Name: "open", Category: "Admin"},
		{Name: "locked", Category: "Admin", Permissions: []int64{permBan, permKick}},
	}
	r := NewRenderer(cmds, mods, staticSettings(nil), nil, nil)

	tests := []struct {
		name      string
		perms     int64
		wantLines int
	}{
		{"one of two bits is not enough", permBan, 1},
		{"all bits shows the command", permBan | permKick, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.ModulePage(Requester{GuildID: "g1", Permissions: tt.perms}, "admin", 0)
			if err != nil {
				t.Fatalf("ModulePage: %v", err)
			}
			if got := bodyLines(v); got != tt.wantLines {
				t.Errorf("lines = %d, want %d\nbody:\n%s", got, tt.wantLines, v.Body)
			}
		})
	}
}

func TestModulePageCategoryCaseInsensitive(t *testing.T) {
	mods := module.NewRegistry(module.Definition{ID: "fun", Name: "Fun"})
	cmds := commandList{
		{Name: "dice", Category: "FUN"},
		{Name: "coin", Category: "fun"},
	}
	r := NewRenderer(cmds, mods, staticSettings(nil), nil, nil)
	v, err := r.ModulePage(Requester{GuildID: "g1"}, "fun", 0)
	if err != nil {
		t.Fatalf("ModulePage: %v", err)
	}
	if got := bodyLines(v); got != 2 {
		t.Errorf("lines = %d, want 2\nbody:\n%s", got, v.Body)
	}
}

func TestModulePageUnknownModule(t *testing.T) {
	r := pagedRenderer(3)
	_, err := r.ModulePage(Requester{GuildID: "g1"}, "music", 0)
	if err == nil {
		t.Fatal("expected error for unknown module")
	}
	if errors.Is(err, ErrInvalidPageIndex) {
		t.Fatalf("unknown module is not a page error: %v", err)
	}
}

func TestSessionsIndependent(t *testing.T) {
	// The renderer keeps no per-session state: interleaved renders for
	// different users come out as if each were alone.
	r := pagedRenderer(12)
	alice := Requester{GuildID: "g1", UserID: "alice"}
	bob := Requester{GuildID: "g1", UserID: "bob"}

	aliceFirst, err := r.ModulePage(alice, "fun", 0)
	if err != nil {
		t.Fatalf("ModulePage: %v", err)
	}
	if _, err := r.ModulePage(bob, "fun", 2); err != nil {
		t.Fatalf("ModulePage: %v", err)
	}
	aliceAgain, err := r.ModulePage(alice, "fun", 0)
	if err != nil {
		t.Fatalf("ModulePage: %v", err)
	}

	if aliceFirst.Footer != "Page 1/3" || aliceAgain.Footer != aliceFirst.Footer {
		t.Errorf("footers = %q then %q, want identical Page 1/3", aliceFirst.Footer, aliceAgain.Footer)
	}
	if aliceFirst.Body != aliceAgain.Body {
		t.Error("another user's navigation leaked into this session")
	}
}
