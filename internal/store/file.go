package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"futarinavi/internal/logger"
	"futarinavi/internal/models"
)

type fileData struct {
	Plans []models.Plan `json:"plans"`
}

// FileStore keeps every plan in one JSON file. Writes go to a temp file
// that is renamed over the old one, so a crash never leaves half a file.
type FileStore struct {
	path string

	mu    sync.Mutex
	plans map[string]models.Plan
}

// NewFileStore loads path if it exists. A missing file is an empty store.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, plans: make(map[string]models.Plan)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("plan store file not found, starting empty", map[string]interface{}{"path": path})
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, p := range fd.Plans {
		s.plans[p.ID] = p
	}
	logger.Info("plan store loaded", map[string]interface{}{"path": path, "plans": len(s.plans)})
	return s, nil
}

// Load returns a copy of the plan with id, or ErrNotFound.
func (s *FileStore) Load(_ context.Context, id string) (models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return models.Plan{}, ErrNotFound
	}
	return clonePlan(p), nil
}

// Save inserts or replaces plan and rewrites the file. On a write error
// the in-memory state is rolled back.
func (s *FileStore) Save(_ context.Context, plan models.Plan) error {
	if plan.ID == "" {
		return ErrNoID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.plans[plan.ID]
	s.plans[plan.ID] = clonePlan(plan)
	if err := s.flushLocked(); err != nil {
		if existed {
			s.plans[plan.ID] = prev
		} else {
			delete(s.plans, plan.ID)
		}
		return err
	}
	return nil
}

// Update applies fn and rewrites the file while holding the lock.
func (s *FileStore) Update(_ context.Context, id string, fn UpdateFunc) (models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.plans[id]
	if !ok {
		return models.Plan{}, ErrNotFound
	}
	next, err := applyUpdate(prev, fn)
	if err != nil {
		return models.Plan{}, err
	}
	s.plans[id] = next
	if err := s.flushLocked(); err != nil {
		s.plans[id] = prev
		return models.Plan{}, err
	}
	return clonePlan(next), nil
}

// Delete removes the plan with id and rewrites the file.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.plans[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.plans, id)
	if err := s.flushLocked(); err != nil {
		s.plans[id] = prev
		return err
	}
	return nil
}

// List returns every plan, oldest first.
func (s *FileStore) List(_ context.Context) ([]models.Plan, error) {
	s.mu.Lock()
	out := make([]models.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, clonePlan(p))
	}
	s.mu.Unlock()
	sortPlans(out)
	return out, nil
}

func (s *FileStore) flushLocked() error {
	fd := fileData{Plans: make([]models.Plan, 0, len(s.plans))}
	for _, p := range s.plans {
		fd.Plans = append(fd.Plans, p)
	}
	sortPlans(fd.Plans)

	data, err := json.MarshalIndent(fd, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write plans: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write plans: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write plans: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write plans: %w", err)
	}
	return nil
}
