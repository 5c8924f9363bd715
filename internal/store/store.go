// Package store persists couples' plans: marriage date, options and the
// ids of finished procedures. The timeline itself is never stored; it is
// regenerated from a plan on every read.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"futarinavi/internal/config"
	"futarinavi/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for ids the store does not hold.
	ErrNotFound = errors.New("plan not found")
	// ErrNoID is returned when saving a plan without an id.
	ErrNoID = errors.New("plan has no id")
	// ErrConflict means an Update kept losing races with other writers.
	ErrConflict = errors.New("plan changed concurrently")
)

// UpdateFunc edits a plan in place. Returning an error aborts the update
// and nothing is written.
type UpdateFunc func(p *models.Plan) error

// PlanStore is implemented by every backend.
type PlanStore interface {
	Load(ctx context.Context, id string) (models.Plan, error)
	Save(ctx context.Context, plan models.Plan) error
	// Update loads id, applies fn and saves the result as one atomic step,
	// so concurrent updates of the same plan never overwrite each other.
	Update(ctx context.Context, id string, fn UpdateFunc) (models.Plan, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Plan, error)
}

// NewID returns a fresh plan identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one produced by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// New opens the backend selected by cfg.StoreBackend.
func New(ctx context.Context, cfg config.Config) (PlanStore, error) {
	switch cfg.StoreBackend {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		return NewFileStore(cfg.StorePath)
	case "redis":
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func sortPlans(plans []models.Plan) {
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		}
		return plans[i].ID < plans[j].ID
	})
}

// applyUpdate runs fn on a copy of p. The id cannot be changed by fn.
func applyUpdate(p models.Plan, fn UpdateFunc) (models.Plan, error) {
	next := clonePlan(p)
	if err := fn(&next); err != nil {
		return models.Plan{}, err
	}
	next.ID = p.ID
	return next, nil
}

func clonePlan(p models.Plan) models.Plan {
	if p.CompletedIDs != nil {
		p.CompletedIDs = append([]string(nil), p.CompletedIDs...)
	}
	return p
}
