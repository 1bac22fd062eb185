package discord

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const commandCacheDir = "data/commands"

// loadCommandHashes returns the per-command hashes recorded after the last
// successful registration for the guild. A missing or unreadable cache just
// means everything registers fresh.
func loadCommandHashes(guildID string) map[string]string {
	hashes := make(map[string]string)

	raw, err := os.ReadFile(commandCachePath(guildID))
	if err != nil {
		return hashes
	}
	if err := json.Unmarshal(raw, &hashes); err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("command cache corrupt, re-registering all")
		return make(map[string]string)
	}
	return hashes
}

func saveCommandHashes(guildID string, hashes map[string]string) {
	if err := os.MkdirAll(commandCacheDir, 0o755); err != nil {
		log.Warn().Err(err).Msg("could not create command cache dir")
		return
	}
	raw, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("could not encode command cache")
		return
	}
	if err := os.WriteFile(commandCachePath(guildID), raw, 0o644); err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("could not write command cache")
	}
}

func commandCachePath(guildID string) string {
	return filepath.Join(commandCacheDir, guildID+".json")
}
