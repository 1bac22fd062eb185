package module

import (
	"context"
	"testing"
)

func TestRegistryOrder(t *testing.T) {
	r := Default()

	want := []ID{Core, Information, Gameplay, Moderation, Announcements, Settings}
	defs := r.All()
	if len(defs) != len(want) {
		t.Fatalf("len(All) = %d, want %d", len(defs), len(want))
	}
	for i, def := range defs {
		if def.ID != want[i] {
			t.Errorf("All()[%d].ID = %s, want %s", i, def.ID, want[i])
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	r := Default()

	tests := []struct {
		name string
		want ID
		ok   bool
	}{
		{"Moderation", Moderation, true},
		{"moderation", Moderation, true},
		{"MODERATION", Moderation, true},
		{"Core", Core, true},
		{"Music", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := r.ByName(tt.name)
			if ok != tt.ok {
				t.Fatalf("ByName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && def.ID != tt.want {
				t.Errorf("ByName(%q).ID = %s, want %s", tt.name, def.ID, tt.want)
			}
		})
	}

	if _, ok := r.ByID(Settings); !ok {
		t.Error("ByID(Settings) not found")
	}
	if _, ok := r.ByID(ID("music")); ok {
		t.Error("ByID(music) should not resolve")
	}
}

func TestAnnouncementsPredicateWithoutStore(t *testing.T) {
	r := Default()

	def, ok := r.ByID(Announcements)
	if !ok || def.Enabled == nil {
		t.Fatal("Announcements must carry an enablement predicate")
	}

	enabled, err := def.Enabled(context.Background(), Env{GuildID: "g"})
	if err != nil {
		t.Fatalf("predicate errored without a store: %v", err)
	}
	if enabled {
		t.Error("predicate should report disabled without a store")
	}
}
