package command

import "sync"

// Application command ids become known only after registration with Discord.
// The runtime records them here; the help menu reads them to render clickable
// command mentions. A command with no recorded id falls back to plain text.

var (
	appIDMu       sync.RWMutex
	appCommandIDs = map[string]string{}
)

// SetAppCommandID records the Discord-assigned id for a registered command.
func SetAppCommandID(name, id string) {
	appIDMu.Lock()
	defer appIDMu.Unlock()
	appCommandIDs[name] = id
}

// AppCommandID returns the recorded id for a command name, or "".
func AppCommandID(name string) string {
	appIDMu.RLock()
	defer appIDMu.RUnlock()
	return appCommandIDs[name]
}
