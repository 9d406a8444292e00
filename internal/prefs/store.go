package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inamate/inamate/editor-go/internal/db"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
)

// Store persists toolbar configs per user.
type Store interface {
	// Get returns the stored config and false when the user has none.
	Get(ctx context.Context, userID string) (toolbar.Config, bool, error)
	Put(ctx context.Context, userID string, cfg toolbar.Config) error
}

type PGStore struct {
	db db.DBTX
}

func NewPGStore(conn db.DBTX) *PGStore {
	return &PGStore{db: conn}
}

func (s *PGStore) Get(ctx context.Context, userID string) (toolbar.Config, bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT config FROM toolbar_prefs WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return toolbar.Config{}, false, nil
	}
	if err != nil {
		return toolbar.Config{}, false, fmt.Errorf("get toolbar prefs: %w", err)
	}

	var cfg toolbar.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return toolbar.Config{}, false, fmt.Errorf("decode toolbar prefs: %w", err)
	}
	return cfg, true, nil
}

func (s *PGStore) Put(ctx context.Context, userID string, cfg toolbar.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toolbar prefs: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO toolbar_prefs (user_id, config, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET config = EXCLUDED.config, updated_at = now()`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("put toolbar prefs: %w", err)
	}
	return nil
}
