package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"tripwise/models"
)

// PostgresStore keeps the plan list in a one-row-per-key table. Updates take
// a row lock with SELECT ... FOR UPDATE so appends from several processes
// serialize.
type PostgresStore struct {
	db     *sql.DB
	key    string
	logger *zap.Logger
}

// ─── Init ─────────────────────────────────────────────────────────────────────

func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Hosted databases may take a moment to accept connections.
	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		logger.Warn("Waiting for database", zap.Int("attempt", i+1), zap.Error(err))
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}

	s := &PostgresStore{db: db, key: SavedPlansKey, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Database connected and migrated")
	return s, nil
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── PlanStore ────────────────────────────────────────────────────────────────

func (s *PostgresStore) Append(ctx context.Context, plan models.SavedPlan) (models.SavedPlan, error) {
	plan = prepareSavedPlan(plan)
	err := s.update(ctx, func(plans []models.SavedPlan) ([]models.SavedPlan, error) {
		return append(plans, plan), nil
	})
	if err != nil {
		return models.SavedPlan{}, err
	}
	return plan, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.SavedPlan, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.SavedPlan{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved plans: %w", err)
	}
	return decodePlans([]byte(value), s.logger), nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (models.SavedPlan, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return models.SavedPlan{}, err
	}
	return findPlan(plans, id)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return s.update(ctx, func(plans []models.SavedPlan) ([]models.SavedPlan, error) {
		return removePlan(plans, id)
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) update(ctx context.Context, fn func([]models.SavedPlan) ([]models.SavedPlan, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Make sure there is a row to lock.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO kv_store (key, value) VALUES ($1, '[]')
		ON CONFLICT (key) DO NOTHING`, s.key); err != nil {
		return err
	}

	var value string
	if err := tx.QueryRowContext(ctx, `
		SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`, s.key).Scan(&value); err != nil {
		return err
	}

	next, err := fn(decodePlans([]byte(value), s.logger))
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(next)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE kv_store SET value = $1, updated_at = NOW() WHERE key = $2`,
		string(encoded), s.key); err != nil {
		return err
	}
	return tx.Commit()
}
