package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/stewardbot/steward/internal/module"
)

const (
	permBan   int64 = 1 << 1
	permKick  int64 = 1 << 2
	permAdmin int64 = 1 << 3
)

type commandList []Command

func (c commandList) Commands() []Command { return c }

type settingsFunc func(guildID string) (map[string]bool, bool, error)

func (f settingsFunc) ModuleFlags(guildID string) (map[string]bool, bool, error) {
	return f(guildID)
}

func staticSettings(flags map[string]bool) SettingsSource {
	return settingsFunc(func(string) (map[string]bool, bool, error) {
		return flags, true, nil
	})
}

func testModules() *module.Registry {
	return module.NewRegistry(
		module.Definition{ID: "general", Name: "General"},
		module.Definition{ID: "fun", Name: "Fun"},
		module.Definition{ID: "admin", Name: "Admin", Permissions: []int64{permBan, permKick, permAdmin}},
	)
}

func testCommands() commandList {
	return commandList{
		{Name: "hello", Category: "General"},
		{Name: "dice", Category: "Fun"},
		{Name: "purge", Category: "Admin"},
		{Name: "info", Category: "General"},
	}
}

func moduleIDs(defs []*module.Definition) []module.ID {
	ids := make([]module.ID, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	return ids
}

func equalIDs(got, want []module.ID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestVisibleModulesGuildFlagOff(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]bool
		want  []module.ID
	}{
		{"flag absent keeps module", map[string]bool{}, []module.ID{"general", "fun", "admin"}},
		{"flag true keeps module", map[string]bool{"fun": true}, []module.ID{"general", "fun", "admin"}},
		{"flag false drops module", map[string]bool{"fun": false}, []module.ID{"general", "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(testCommands(), testModules(), staticSettings(tt.flags), nil, nil)
			got, err := r.visibleModules(context.Background(), Requester{GuildID: "g1", Permissions: permAdmin})
			if err != nil {
				t.Fatalf("visibleModules: %v", err)
			}
			if !equalIDs(moduleIDs(got), tt.want) {
				t.Errorf("visible = %v, want %v", moduleIDs(got), tt.want)
			}
		})
	}
}

func TestVisibleModulesPermissionAnyOf(t *testing.T) {
	tests := []struct {
		name      string
		perms     int64
		wantAdmin bool
	}{
		{"none of three", 1 << 9, false},
		{"exactly one of three", permKick, true},
		{"all three", permBan | permKick | permAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(testCommands(), testModules(), staticSettings(nil), nil, nil)
			got, err := r.visibleModules(context.Background(), Requester{GuildID: "g1", Permissions: tt.perms})
			if err != nil {
				t.Fatalf("visibleModules: %v", err)
			}
			hasAdmin := false
			for _, def := range got {
				if def.ID == "admin" {
					hasAdmin = true
				}
			}
			if hasAdmin != tt.wantAdmin {
				t.Errorf("admin visible = %v, want %v", hasAdmin, tt.wantAdmin)
			}
		})
	}
}

func TestVisibleModulesDualGates(t *testing.T) {
	// The module declares permBan, the renderer's own table declares permKick.
	// Each gate passes on any of its own bits, but both gates must pass.
	mods := module.NewRegistry(
		module.Definition{ID: "admin", Name: "Admin", Permissions: []int64{permBan}},
	)
	cmds := commandList{{Name: "purge", Category: "Admin"}}
	gates := map[module.ID][]int64{"admin": {permKick}}

	tests := []struct {
		name    string
		perms   int64
		visible bool
	}{
		{"module gate only", permBan, false},
		{"renderer gate only", permKick, false},
		{"both gates", permBan | permKick, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(cmds, mods, staticSettings(nil), nil, gates)
			got, err := r.visibleModules(context.Background(), Requester{GuildID: "g1", Permissions: tt.perms})
			if err != nil {
				t.Fatalf("visibleModules: %v", err)
			}
			if visible := len(got) == 1; visible != tt.visible {
				t.Errorf("visible = %v, want %v", visible, tt.visible)
			}
		})
	}
}

func TestVisibleModulesSettingsAbsent(t *testing.T) {
	missing := settingsFunc(func(string) (map[string]bool, bool, error) {
		return nil, false, nil
	})
	r := NewRenderer(testCommands(), testModules(), missing, nil, nil)
	_, err := r.visibleModules(context.Background(), Requester{GuildID: "g1"})
	if !errors.Is(err, ErrSettingsUnavailable) {
		t.Fatalf("err = %v, want ErrSettingsUnavailable", err)
	}
}

func TestVisibleModulesSettingsReadError(t *testing.T) {
	broken := settingsFunc(func(string) (map[string]bool, bool, error) {
		return nil, false, errors.New("disk gone")
	})
	r := NewRenderer(testCommands(), testModules(), broken, nil, nil)
	_, err := r.visibleModules(context.Background(), Requester{GuildID: "g1"})
	if err == nil {
		t.Fatal("expected error from failed settings read")
	}
	if errors.Is(err, ErrSettingsUnavailable) {
		t.Fatalf("read failure must not masquerade as absent settings: %v", err)
	}
}

func TestVisibleModulesPredicate(t *testing.T) {
	tests := []struct {
		name    string
		enabled func(context.Context, module.Env) (bool, error)
		visible bool
	}{
		{"nil predicate keeps module", nil, true},
		{"true keeps module", func(context.Context, module.Env) (bool, error) { return true, nil }, true},
		{"false drops module", func(context.Context, module.Env) (bool, error) { return false, nil }, false},
		{"error drops module silently", func(context.Context, module.Env) (bool, error) {
			return true, errors.New("backend down")
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods := module.NewRegistry(
				module.Definition{ID: "fun", Name: "Fun", Enabled: tt.enabled},
			)
			cmds := commandList{{Name: "dice", Category: "Fun"}}
			r := NewRenderer(cmds, mods, staticSettings(nil), nil, nil)
			got, err := r.visibleModules(context.Background(), Requester{GuildID: "g1"})
			if err != nil {
				t.Fatalf("predicate outcomes must never fail the render: %v", err)
			}
			if visible := len(got) == 1; visible != tt.visible {
				t.Errorf("visible = %v, want %v", visible, tt.visible)
			}
		})
	}
}

func TestVisibleModulesDiscoveryOrder(t *testing.T) {
	// Category order follows first appearance in the command list, not the
	// registry declaration order.
	cmds := commandList{
		{Name: "dice", Category: "Fun"},
		{Name: "hello", Category: "General"},
		{Name: "coin", Category: "Fun"},
		{Name: "purge", Category: "Admin"},
	}
	r := NewRenderer(cmds, testModules(), staticSettings(nil), nil, nil)
	got, err := r.visibleModules(context.Background(), Requester{GuildID: "g1", Permissions: permBan})
	if err != nil {
		t.Fatalf("visibleModules: %v", err)
	}
	want := []module.ID{"fun", "general", "admin"}
	if !equalIDs(moduleIDs(got), want) {
		t.Errorf("order = %v, want %v", moduleIDs(got), want)
	}
}

func TestVisibleModulesUnknownCategory(t *testing.T) {
	cmds := commandList{
		{Name: "hello", Category: "General"},
		{Name: "play", Category: "Music"},
	}
	r := NewRenderer(cmds, testModules(), staticSettings(nil), nil, nil)
	got, err := r.visibleModules(context.Background(), Requester{GuildID: "g1"})
	if err != nil {
		t.Fatalf("visibleModules: %v", err)
	}
	if !equalIDs(moduleIDs(got), []module.ID{"general"}) {
		t.Errorf("visible = %v, want only general", moduleIDs(got))
	}
}

func TestVisibleModulesEmptyIsValid(t *testing.T) {
	flags := map[string]bool{"general": false, "fun": false, "admin": false}
	r := NewRenderer(testCommands(), testModules(), staticSettings(flags), nil, nil)

	got, err := r.visibleModules(context.Background(), Requester{GuildID: "g1", Permissions: permAdmin})
	if err != nil {
		t.Fatalf("empty module list is not an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("visible = %v, want none", moduleIDs(got))
	}

	view, err := r.TopLevel(context.Background(), Requester{GuildID: "g1", Permissions: permAdmin})
	if err != nil {
		t.Fatalf("TopLevel: %v", err)
	}
	if view.Title != "Help Menu" {
		t.Errorf("title = %q", view.Title)
	}
	if len(view.Controls) != 0 {
		t.Errorf("empty menu must not carry a selector, got %d controls", len(view.Controls))
	}
}
