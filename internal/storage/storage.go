package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit int = 20

// Storage wraps the embedded document store with one JSON record per guild.
type Storage struct {
	ds *datastore.DataStore
}

// CommandHistoryRecord is one executed command, kept for the activity view.
type CommandHistoryRecord struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

// Warning is one moderation warning issued to a user.
type Warning struct {
	ModeratorID string    `json:"moderator_id"`
	Reason      string    `json:"reason"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Record is the per-guild settings document. Modules maps module id to an
// explicit enablement flag: a key that is present and false means the guild
// turned the module off; an absent key means the default (enabled).
type Record struct {
	Modules             map[string]bool        `json:"modules"`
	Channels            map[string]string      `json:"channels"` // e.g. "announce": channelID
	Warnings            map[string][]Warning   `json:"warnings"` // key = userID
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getGuildRecord fetches a guild's record without creating one. The second
// return value reports whether the guild has a settings document at all;
// callers that must treat "no document" specially (the help renderer) depend
// on the distinction.
func (s *Storage) getGuildRecord(guildID string) (*Record, bool, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		return nil, false, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, true, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, true, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}

	normalizeRecord(&record)
	return &record, true, nil
}

// getOrCreateGuildRecord fetches a guild's record, creating an empty one on
// first write-path access.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	record, exists, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	if !exists {
		newRecord := &Record{
			Modules:  map[string]bool{},
			Channels: map[string]string{},
		}
		s.ds.Add(guildID, newRecord)
		return newRecord, nil
	}
	return record, nil
}

func normalizeRecord(record *Record) {
	if record.Modules == nil {
		record.Modules = map[string]bool{}
	}
	if record.Channels == nil {
		record.Channels = map[string]string{}
	}
	if record.Warnings == nil {
		record.Warnings = map[string][]Warning{}
	}
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}
}
