package menu

import "errors"

var (
	// ErrSettingsUnavailable means the guild has no settings document. The
	// caller drops the whole render silently; nothing is shown to the user.
	ErrSettingsUnavailable = errors.New("guild settings unavailable")

	// ErrModulePredicateFailed marks an enablement predicate that errored.
	// It never reaches the user: the module is treated as disabled and the
	// wrapped error only shows up in debug logs.
	ErrModulePredicateFailed = errors.New("module enablement check failed")

	// ErrInvalidPageIndex means a navigation event asked for a page outside
	// [0, pageCount). Controls are disabled at the boundaries, so this only
	// happens on replay of a stale control; the caller renders the generic
	// failure view.
	ErrInvalidPageIndex = errors.New("page index out of range")
)
