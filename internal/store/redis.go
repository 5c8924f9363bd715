package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"futarinavi/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	planKeyPrefix = "futarinavi:plan:"
	planIndexKey  = "futarinavi:plans"

	maxUpdateRetries = 10
)

// RedisOptions are the connection settings read from REDIS_* config.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore shares plans across instances. Each plan is a JSON string
// under its own key; a set holds every id for List.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis store: REDIS_ADDR is empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client; its lifecycle stays with the caller.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load returns the plan with id, or ErrNotFound.
func (s *RedisStore) Load(ctx context.Context, id string) (models.Plan, error) {
	return loadPlan(ctx, s.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadPlan(ctx context.Context, c getter, id string) (models.Plan, error) {
	data, err := c.Get(ctx, planKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Plan{}, ErrNotFound
	}
	if err != nil {
		return models.Plan{}, err
	}
	var p models.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Plan{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return p, nil
}

// Save writes plan and adds it to the index in one transaction.
func (s *RedisStore) Save(ctx context.Context, plan models.Plan) error {
	if plan.ID == "" {
		return ErrNoID
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, planKeyPrefix+plan.ID, data, 0)
		pipe.SAdd(ctx, planIndexKey, plan.ID)
		return nil
	})
	return err
}

// Update applies fn under WATCH on the plan key and retries when another
// client changed the plan in between. After maxUpdateRetries lost races it
// gives up with ErrConflict.
func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (models.Plan, error) {
	key := planKeyPrefix + id
	var out models.Plan

	txf := func(tx *redis.Tx) error {
		p, err := loadPlan(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := applyUpdate(p, fn)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			out = next
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return models.Plan{}, err
		}
		return out, nil
	}
	return models.Plan{}, ErrConflict
}

// Delete removes the plan and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, planKeyPrefix+id)
		pipe.SRem(ctx, planIndexKey, id)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every indexed plan, oldest first.
func (s *RedisStore) List(ctx context.Context) ([]models.Plan, error) {
	ids, err := s.client.SMembers(ctx, planIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Plan{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = planKeyPrefix + id
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	plans := make([]models.Plan, 0, len(vals))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			// index entry without a value; skip
			continue
		}
		var p models.Plan
		if err := json.Unmarshal([]byte(str), &p); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", ids[i], err)
		}
		plans = append(plans, p)
	}
	sortPlans(plans)
	return plans, nil
}

// Ping reports whether the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
