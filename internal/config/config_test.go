package config

import (
	"os"
	"slices"
	"testing"

	"github.com/caarlos0/env/v11"
)

// parse mirrors New without the fatal exit so tests can assert on errors.
func parse(t *testing.T) (*Config, error) {
	t.Helper()
	cfg := &Config{}
	err := env.Parse(cfg)
	return cfg, err
}

// unset clears a variable for the duration of the test; t.Setenv registers
// the restore, os.Unsetenv makes it truly absent rather than empty.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-under-test")
	for _, key := range []string{"COMMAND_PREFIX", "STORAGE_PATH", "LOG_PATH", "LOG_LEVEL", "INIT_SLASH_COMMANDS", "GUILD_BLACKLIST"} {
		unset(t, key)
	}

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.CommandPrefix != "!" {
		t.Errorf("CommandPrefix = %q, want %q", cfg.CommandPrefix, "!")
	}
	if cfg.StoragePath != "data/steward.json" {
		t.Errorf("StoragePath = %q, want default", cfg.StoragePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.InitSlashCommands {
		t.Error("InitSlashCommands should default to true")
	}
}

func TestConfigTokenRequired(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		unset(t, "DISCORD_TOKEN")
		if _, err := parse(t); err == nil {
			t.Fatal("expected an error without DISCORD_TOKEN")
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "")
		if _, err := parse(t); err == nil {
			t.Fatal("expected an error with empty DISCORD_TOKEN")
		}
	})
}

func TestConfigGuildBlacklist(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-under-test")
	t.Setenv("GUILD_BLACKLIST", "111,222,333")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{"111", "222", "333"}
	if !slices.Equal(cfg.GuildBlacklist, want) {
		t.Errorf("GuildBlacklist = %v, want %v", cfg.GuildBlacklist, want)
	}
}

func TestIsDeveloper(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		userID string
		want   bool
	}{
		{"match", &Config{DeveloperID: "42"}, "42", true},
		{"mismatch", &Config{DeveloperID: "42"}, "7", false},
		{"unset", &Config{}, "42", false},
		{"nil config", nil, "42", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDeveloper(tt.cfg, tt.userID); got != tt.want {
				t.Errorf("IsDeveloper = %v, want %v", got, tt.want)
			}
		})
	}
}
