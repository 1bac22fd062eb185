package storage

// AddWarning appends a moderation warning for a user and returns the new
// warning count for that user.
func (s *Storage) AddWarning(guildID, userID string, w Warning) (int, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return 0, err
	}

	if record.Warnings == nil {
		record.Warnings = map[string][]Warning{}
	}
	record.Warnings[userID] = append(record.Warnings[userID], w)
	s.ds.Add(guildID, record)
	return len(record.Warnings[userID]), nil
}

// UserWarnings returns the warnings issued to a user in a guild.
func (s *Storage) UserWarnings(guildID, userID string) ([]Warning, error) {
	record, exists, err := s.getGuildRecord(guildID)
	if err != nil || !exists {
		return nil, err
	}
	return record.Warnings[userID], nil
}
