package storage

import "fmt"

// ChannelAnnounce is the channel kind used by the announcements module.
const ChannelAnnounce = "announce"

// SetChannel assigns a channel of the given kind for a guild.
func (s *Storage) SetChannel(guildID, kind, channelID string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Channels[kind] = channelID
	s.ds.Add(guildID, record)
	return nil
}

// Channel returns the configured channel of the given kind, or an error when
// none is set.
func (s *Storage) Channel(guildID, kind string) (string, error) {
	record, exists, err := s.getGuildRecord(guildID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("no '%s' channel set for this guild", kind)
	}

	channelID, ok := record.Channels[kind]
	if !ok || channelID == "" {
		return "", fmt.Errorf("no '%s' channel set for this guild", kind)
	}
	return channelID, nil
}

// HasChannel reports whether a channel of the given kind is configured.
func (s *Storage) HasChannel(guildID, kind string) (bool, error) {
	record, exists, err := s.getGuildRecord(guildID)
	if err != nil || !exists {
		return false, err
	}

	channelID, ok := record.Channels[kind]
	return ok && channelID != "", nil
}
