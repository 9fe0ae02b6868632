package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripwise/config"
	"tripwise/metrics"
	"tripwise/models"
)

// SavedPlansKey is the single key every backend keeps the plan list under.
const SavedPlansKey = "savedPlans"

var ErrPlanNotFound = errors.New("saved plan not found")

// PlanStore persists the ordered list of saved plans. Append is atomic with
// respect to other appends and deletes on the same backend.
type PlanStore interface {
	Append(ctx context.Context, plan models.SavedPlan) (models.SavedPlan, error)
	List(ctx context.Context) ([]models.SavedPlan, error)
	Get(ctx context.Context, id string) (models.SavedPlan, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// NewStore opens the backend named by cfg.StoreDriver. Operations on the
// returned store are counted in the saved-plan metrics.
func NewStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (PlanStore, error) {
	var (
		store PlanStore
		err   error
	)
	switch cfg.StoreDriver {
	case "", "file":
		store = NewFileStore(cfg.StorePath, logger)
	case "redis":
		store, err = NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	case "postgres":
		store, err = NewPostgresStore(ctx, cfg.PostgresDSN(), logger)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	return observed{store}, nil
}

type observed struct {
	PlanStore
}

func (o observed) Append(ctx context.Context, plan models.SavedPlan) (models.SavedPlan, error) {
	saved, err := o.PlanStore.Append(ctx, plan)
	metrics.ObserveStore("append", err)
	return saved, err
}

func (o observed) List(ctx context.Context) ([]models.SavedPlan, error) {
	plans, err := o.PlanStore.List(ctx)
	metrics.ObserveStore("list", err)
	return plans, err
}

func (o observed) Delete(ctx context.Context, id string) error {
	err := o.PlanStore.Delete(ctx, id)
	metrics.ObserveStore("delete", err)
	return err
}

// prepareSavedPlan fills in the ID and timestamp when the caller left them
// blank.
func prepareSavedPlan(p models.SavedPlan) models.SavedPlan {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.SavedAt.IsZero() {
		p.SavedAt = time.Now().UTC()
	}
	return p
}

// decodePlans reads the stored list. Missing or corrupt data reads as empty.
func decodePlans(data []byte, logger *zap.Logger) []models.SavedPlan {
	if len(data) == 0 {
		return []models.SavedPlan{}
	}
	var plans []models.SavedPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		logger.Warn("Saved plans are corrupted, treating as empty", zap.Error(err))
		return []models.SavedPlan{}
	}
	if plans == nil {
		plans = []models.SavedPlan{}
	}
	return plans
}

func findPlan(plans []models.SavedPlan, id string) (models.SavedPlan, error) {
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return models.SavedPlan{}, ErrPlanNotFound
}

func removePlan(plans []models.SavedPlan, id string) ([]models.SavedPlan, error) {
	for i, p := range plans {
		if p.ID == id {
			return append(plans[:i:i], plans[i+1:]...), nil
		}
	}
	return nil, ErrPlanNotFound
}
