package preference

import (
	"context"
	"fmt"

	"makwell-storefront/internal/kvstore"
	"makwell-storefront/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context) Preferences
	ToggleTheme(ctx context.Context) (Preferences, error)
	DismissCTA(ctx context.Context) (Preferences, error)
}

type service struct {
	store  kvstore.Store
	system Theme
}

// NewService resolves the theme as stored value, then system, then light.
// An empty system theme means the visitor did not report one.
func NewService(store kvstore.Store, system Theme) Service {
	return &service{store: store, system: system}
}

func (s *service) Get(ctx context.Context) Preferences {
	theme, stored := s.theme(ctx)
	return Preferences{
		Theme:     theme,
		Stored:    stored,
		CTAHidden: s.ctaHidden(ctx),
	}
}

func (s *service) ToggleTheme(ctx context.Context) (Preferences, error) {
	current, _ := s.theme(ctx)
	next := current.Toggle()

	if err := s.store.Set(ctx, ThemeKey, string(next)); err != nil {
		return Preferences{}, fmt.Errorf("store theme: %w", err)
	}

	logger.FromCtx(ctx).Info("theme toggled", zap.String("theme", string(next)))
	return s.Get(ctx), nil
}

func (s *service) DismissCTA(ctx context.Context) (Preferences, error) {
	if err := s.store.Set(ctx, HideCTAKey, hideCTAMarker); err != nil {
		return Preferences{}, fmt.Errorf("store cta flag: %w", err)
	}
	return s.Get(ctx), nil
}

func (s *service) theme(ctx context.Context) (Theme, bool) {
	raw, ok, err := s.store.Get(ctx, ThemeKey)
	if err != nil {
		logger.FromCtx(ctx).Warn("theme not readable, using default", zap.Error(err))
	}
	if ok {
		if t, valid := ParseTheme(raw); valid {
			return t, true
		}
	}
	if t, valid := ParseTheme(string(s.system)); valid {
		return t, false
	}
	return ThemeLight, false
}

func (s *service) ctaHidden(ctx context.Context) bool {
	raw, ok, err := s.store.Get(ctx, HideCTAKey)
	if err != nil {
		logger.FromCtx(ctx).Warn("cta flag not readable", zap.Error(err))
		return false
	}
	return ok && raw == hideCTAMarker
}
