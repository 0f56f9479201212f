package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rzaytsev/vocab-api/internal/store"
)

// DefaultTheme is returned when no preference has been saved yet.
const DefaultTheme = "light"

// ErrInvalidTheme indicates a theme name outside the supported set.
var ErrInvalidTheme = errors.New("invalid theme")

var validThemes = map[string]struct{}{
	"light": {},
	"dark":  {},
}

// PreferencesService stores small user preferences in the key-value store.
type PreferencesService struct {
	kv     store.KV
	logger *slog.Logger
}

// NewPreferencesService creates the preferences service.
func NewPreferencesService(kv store.KV, log *slog.Logger) *PreferencesService {
	if kv == nil {
		panic("kv cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PreferencesService{
		kv:     kv,
		logger: log.With(slog.String("component", "preferences_service")),
	}
}

// Theme returns the saved theme, falling back to DefaultTheme when nothing
// is saved or the store misbehaves.
func (s *PreferencesService) Theme(ctx context.Context) string {
	data, err := s.kv.Get(ctx, store.KeyTheme)
	if errors.Is(err, store.ErrKeyNotFound) {
		return DefaultTheme
	}
	if err != nil {
		s.logger.Warn("failed to read theme preference, using default",
			slog.String("error", err.Error()))
		return DefaultTheme
	}

	theme := string(data)
	if _, ok := validThemes[theme]; !ok {
		return DefaultTheme
	}
	return theme
}

// SetTheme validates and persists the theme preference.
func (s *PreferencesService) SetTheme(ctx context.Context, theme string) error {
	if _, ok := validThemes[theme]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	if err := s.kv.Set(ctx, store.KeyTheme, []byte(theme)); err != nil {
		return fmt.Errorf("failed to persist theme preference: %w", err)
	}
	return nil
}
