package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripwise/models"
)

// maxCASAttempts bounds the optimistic transaction loop when other writers
// keep changing the key.
const maxCASAttempts = 10

// RedisStore keeps the plan list as a JSON string under SavedPlansKey and
// updates it with WATCH/MULTI so concurrent appends never lose entries.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisStore(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	logger.Info("Redis plan store connected", zap.String("addr", addr))
	return &RedisStore{client: client, key: SavedPlansKey, logger: logger}, nil
}

func (s *RedisStore) Append(ctx context.Context, plan models.SavedPlan) (models.SavedPlan, error) {
	plan = prepareSavedPlan(plan)
	err := s.update(ctx, func(plans []models.SavedPlan) ([]models.SavedPlan, error) {
		return append(plans, plan), nil
	})
	if err != nil {
		return models.SavedPlan{}, err
	}
	return plan, nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.SavedPlan, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read saved plans: %w", err)
	}
	return decodePlans(data, s.logger), nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.SavedPlan, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return models.SavedPlan{}, err
	}
	return findPlan(plans, id)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.update(ctx, func(plans []models.SavedPlan) ([]models.SavedPlan, error) {
		return removePlan(plans, id)
	})
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// update runs a read-modify-write of the list inside a WATCH on the key and
// retries when another client changed it first.
func (s *RedisStore) update(ctx context.Context, fn func([]models.SavedPlan) ([]models.SavedPlan, error)) error {
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && err != redis.Nil {
			return err
		}
		next, err := fn(decodePlans(data, s.logger))
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, encoded, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		s.logger.Debug("Saved plans changed concurrently, retrying", zap.Int("attempt", attempt))
	}
	return fmt.Errorf("saved plans: gave up after %d conflicting updates", maxCASAttempts)
}
