package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"tripwise/models"
)

// FileStore keeps saved plans as a JSON array in a single file. Writes go to
// a temp file that is renamed over the original, and a mutex serializes
// read-modify-write cycles within the process.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Append(ctx context.Context, plan models.SavedPlan) (models.SavedPlan, error) {
	if err := ctx.Err(); err != nil {
		return models.SavedPlan{}, err
	}
	plan = prepareSavedPlan(plan)

	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.read()
	if err != nil {
		return models.SavedPlan{}, err
	}
	if err := s.write(append(plans, plan)); err != nil {
		return models.SavedPlan{}, err
	}
	return plan, nil
}

func (s *FileStore) List(ctx context.Context) ([]models.SavedPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Get(ctx context.Context, id string) (models.SavedPlan, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return models.SavedPlan{}, err
	}
	return findPlan(plans, id)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.read()
	if err != nil {
		return err
	}
	remaining, err := removePlan(plans, id)
	if err != nil {
		return err
	}
	return s.write(remaining)
}

// Ping checks that the directory holding the file is usable.
func (s *FileStore) Ping(context.Context) error {
	return os.MkdirAll(filepath.Dir(s.path), 0o755)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() ([]models.SavedPlan, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.SavedPlan{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved plans: %w", err)
	}
	return decodePlans(data, s.logger), nil
}

func (s *FileStore) write(plans []models.SavedPlan) error {
	data, err := json.Marshal(plans)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".saved-plans-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write saved plans: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write saved plans: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace saved plans: %w", err)
	}
	return nil
}
