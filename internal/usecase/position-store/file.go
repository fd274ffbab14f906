package positionstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	positionstorev1 "github.com/papersim/paperbroker/internal/domain/position-store/v1"
	"github.com/papersim/paperbroker/pkg/errors"
	"github.com/papersim/paperbroker/pkg/logger"
)

const (
	dataFilename     = "paper_account_data.json"
	settingsFilename = "paper_account_setting.json"
)

// FileStore persists the position snapshot and engine settings as JSON files
// in a directory, for hosts running without Redis.
type FileStore struct {
	mu     sync.Mutex
	dir    string
	logger *logger.Logger
}

// NewFileStore creates a store writing into the given directory.
func NewFileStore(dir string, log *logger.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: log,
	}
}

// Save replaces the persisted position snapshot.
func (s *FileStore) Save(ctx context.Context, positions []positionstorev1.PositionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeJSON(dataFilename, positions); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "file",
			Value: dataFilename,
		})
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}
	return nil
}

// Load returns the persisted position snapshot, or nil when none exists.
func (s *FileStore) Load(ctx context.Context) ([]positionstorev1.PositionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []positionstorev1.PositionSnapshot
	ok, err := s.readJSON(dataFilename, &positions)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "file",
			Value: dataFilename,
		})
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}
	if !ok {
		return nil, nil
	}
	return positions, nil
}

// SaveSettings replaces the persisted engine settings.
func (s *FileStore) SaveSettings(ctx context.Context, settings positionstorev1.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeJSON(settingsFilename, settings); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "file",
			Value: settingsFilename,
		})
		return errors.NewTracer(string(errors.SettingsStoreError)).Wrap(err)
	}
	return nil
}

// LoadSettings returns the persisted engine settings, or nil when none exist.
func (s *FileStore) LoadSettings(ctx context.Context) (*positionstorev1.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings positionstorev1.Settings
	ok, err := s.readJSON(settingsFilename, &settings)
	if err != nil {
		return nil, errors.NewTracer(string(errors.SettingsLoadError)).Wrap(err)
	}
	if !ok {
		return nil, nil
	}
	return &settings, nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(s.dir, name), buf, 0o644)
}

// readJSON reports whether the file existed.
func (s *FileStore) readJSON(name string, v any) (bool, error) {
	buf, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, json.Unmarshal(buf, v)
}
