package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/inamate/editor-go/internal/toolbar"
)

var ErrInvalidProfile = errors.New("invalid toolbar profile")

// Service resolves each user's toolbar config over the server defaults.
type Service struct {
	store    Store
	defaults toolbar.Config
	logger   *slog.Logger
}

func NewService(store Store, defaults toolbar.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, defaults: defaults, logger: logger}
}

// Toolbar returns the user's config, or the defaults if none is stored.
func (s *Service) Toolbar(ctx context.Context, userID string) (toolbar.Config, error) {
	cfg, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		return toolbar.Config{}, err
	}
	if !ok {
		return s.defaults, nil
	}
	return cfg, nil
}

// Update merges the patch into the user's config and stores the result.
func (s *Service) Update(ctx context.Context, userID string, p toolbar.ConfigPatch) (toolbar.Config, error) {
	cur, err := s.Toolbar(ctx, userID)
	if err != nil {
		return toolbar.Config{}, err
	}
	next := cur.Merge(p)
	if err := validate(next); err != nil {
		return toolbar.Config{}, err
	}
	if err := s.store.Put(ctx, userID, next); err != nil {
		return toolbar.Config{}, err
	}
	s.logger.Info("toolbar prefs updated", "user", userID)
	return next, nil
}

// Reset drops the user's overrides.
func (s *Service) Reset(ctx context.Context, userID string) (toolbar.Config, error) {
	if err := s.store.Put(ctx, userID, s.defaults); err != nil {
		return toolbar.Config{}, err
	}
	return s.defaults, nil
}

func validate(c toolbar.Config) error {
	for name, p := range map[string]toolbar.Profile{"desktop": c.Desktop, "mobile": c.Mobile} {
		if p.MaxVisibleButtons < 1 || p.ButtonSize < 1 || p.Spacing < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidProfile, name)
		}
		if p.Layout != toolbar.LayoutHorizontal && p.Layout != toolbar.LayoutVertical {
			return fmt.Errorf("%w: %s layout %q", ErrInvalidProfile, name, p.Layout)
		}
	}
	return nil
}
