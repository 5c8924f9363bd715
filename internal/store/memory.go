package store

import (
	"context"
	"sync"

	"futarinavi/internal/models"
)

// MemoryStore keeps plans in process memory. Used for tests and the CLI.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]models.Plan
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]models.Plan)}
}

// Load returns a copy of the plan with id, or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context, id string) (models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return models.Plan{}, ErrNotFound
	}
	return clonePlan(p), nil
}

// Save inserts or replaces plan.
func (s *MemoryStore) Save(_ context.Context, plan models.Plan) error {
	if plan.ID == "" {
		return ErrNoID
	}
	s.mu.Lock()
	s.plans[plan.ID] = clonePlan(plan)
	s.mu.Unlock()
	return nil
}

// Update applies fn to the plan with id while holding the write lock.
func (s *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return models.Plan{}, ErrNotFound
	}
	next, err := applyUpdate(p, fn)
	if err != nil {
		return models.Plan{}, err
	}
	s.plans[id] = next
	return clonePlan(next), nil
}

// Delete removes the plan with id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return ErrNotFound
	}
	delete(s.plans, id)
	return nil
}

// List returns every plan, oldest first.
func (s *MemoryStore) List(_ context.Context) ([]models.Plan, error) {
	s.mu.RLock()
	out := make([]models.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, clonePlan(p))
	}
	s.mu.RUnlock()
	sortPlans(out)
	return out, nil
}
