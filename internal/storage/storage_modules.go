package storage

// ModuleFlags returns the per-module enablement flags for a guild. The second
// return value is false when the guild has no settings document; the help
// renderer turns that into a silent no-op rather than assuming defaults.
func (s *Storage) ModuleFlags(guildID string) (map[string]bool, bool, error) {
	record, exists, err := s.getGuildRecord(guildID)
	if err != nil || !exists {
		return nil, exists, err
	}
	return record.Modules, true, nil
}

// SetModuleEnabled writes an explicit flag for a module. Writing true restores
// the default; the key is kept so "explicitly enabled" survives round-trips.
func (s *Storage) SetModuleEnabled(guildID, moduleID string, enabled bool) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Modules[moduleID] = enabled
	s.ds.Add(guildID, record)
	return nil
}

// IsModuleDisabled reports whether the guild explicitly disabled a module.
// Guilds without a settings document disable nothing.
func (s *Storage) IsModuleDisabled(guildID, moduleID string) (bool, error) {
	record, exists, err := s.getGuildRecord(guildID)
	if err != nil || !exists {
		return false, err
	}

	flag, present := record.Modules[moduleID]
	return present && !flag, nil
}

// DisabledModules returns the ids of modules the guild explicitly disabled.
func (s *Storage) DisabledModules(guildID string) ([]string, error) {
	record, exists, err := s.getGuildRecord(guildID)
	if err != nil || !exists {
		return nil, err
	}

	var disabled []string
	for id, flag := range record.Modules {
		if !flag {
			disabled = append(disabled, id)
		}
	}
	return disabled, nil
}

// EnsureGuildRecord creates an empty settings document for a guild if none
// exists. Called when the bot joins a guild so the help menu has a document
// to read.
func (s *Storage) EnsureGuildRecord(guildID string) error {
	_, err := s.getOrCreateGuildRecord(guildID)
	return err
}
