package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

const (
	StatePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	tempFilePattern = ".state-*.toml.tmp"
)

// ConversationStore keeps conversation state in a TOML file so a restarted bot
// remembers which bin each chat was scanning.
type ConversationStore struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ConversationStore = (*ConversationStore)(nil)

func NewConversationStore(cfg *viper.Viper) (*ConversationStore, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(StatePathKey)
	if path == "" {
		return nil, errors.New("state path is empty")
	}
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &ConversationStore{path: path, mu: lockForPath(path)}, nil
}

func (s *ConversationStore) Path() string {
	return s.path
}

func (s *ConversationStore) Get(ctx context.Context, key domain.ConversationKey) (domain.ConversationState, error) {
	if err := ctx.Err(); err != nil {
		return domain.ConversationState{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.ConversationState{}, err
	}

	for _, entry := range file.Conversations {
		if entry.ChatID == key.ChatID && entry.UserID == key.UserID {
			return fromSchema(entry), nil
		}
	}

	return domain.ConversationState{}, domain.ErrConversationNotFound
}

func (s *ConversationStore) Save(ctx context.Context, state domain.ConversationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(state)
	updated := false
	for i := range file.Conversations {
		if file.Conversations[i].ChatID == encoded.ChatID && file.Conversations[i].UserID == encoded.UserID {
			file.Conversations[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Conversations = append(file.Conversations, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeSchema(file)
}

func (s *ConversationStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return 0, err
	}

	kept := file.Conversations[:0]
	for _, entry := range file.Conversations {
		updatedAt := parseTime(entry.UpdatedAt)
		if !updatedAt.IsZero() && updatedAt.Before(before) {
			continue
		}
		kept = append(kept, entry)
	}

	removed := len(file.Conversations) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	file.Conversations = kept

	if err := s.writeSchema(file); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *ConversationStore) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *ConversationStore) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(state domain.ConversationState) conversationSchema {
	return conversationSchema{
		ChatID:      state.Key.ChatID,
		UserID:      state.Key.UserID,
		ActiveBinID: state.ActiveBinID.String(),
		Stage:       string(state.Stage),
		UpdatedAt:   formatTime(state.UpdatedAt),
	}
}

func fromSchema(entry conversationSchema) domain.ConversationState {
	stage := domain.ConversationStage(entry.Stage)
	if stage == "" {
		stage = domain.StageIdle
	}

	return domain.ConversationState{
		Key:         domain.ConversationKey{ChatID: entry.ChatID, UserID: entry.UserID},
		ActiveBinID: domain.BinID(entry.ActiveBinID),
		Stage:       stage,
		UpdatedAt:   parseTime(entry.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
