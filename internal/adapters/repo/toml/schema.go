package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version       int                  `toml:"version"`
	Conversations []conversationSchema `toml:"conversations"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type conversationSchema struct {
	ChatID      int64  `toml:"chat_id"`
	UserID      int64  `toml:"user_id"`
	ActiveBinID string `toml:"active_bin_id,omitempty"`
	Stage       string `toml:"stage"`
	UpdatedAt   string `toml:"updated_at"`
}
