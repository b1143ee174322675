package theme

import (
	"context"

	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/domain/kv"
	"github.com/rediet/portfolio/pkg/logger"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	StorageKey = "theme"
)

// Parse accepts only the two known values.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

func (t Theme) Label() string {
	if t == Light {
		return "Light"
	}
	return "Dark"
}

func (t Theme) Flip() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

type Applied struct {
	Theme Theme
	Label string
}

type Controller struct {
	logger logger.Logger
}

func NewController(log logger.Logger) *Controller {
	return &Controller{logger: log}
}

// Resolve picks the stored preference, then the system signal ("light" or
// "dark", anything else ignored), then Dark.
func (c *Controller) Resolve(ctx context.Context, store kv.Store, systemSignal string) Theme {
	stored, ok, err := store.Get(ctx, StorageKey)
	if err != nil {
		c.logger.Warn("Theme preference read failed", zap.Error(err))
	}
	if ok {
		if t, valid := Parse(stored); valid {
			return t
		}
	}
	if t, valid := Parse(systemSignal); valid {
		return t
	}
	return Dark
}

// Apply persists the preference. A failed write still applies the theme for
// this render.
func (c *Controller) Apply(ctx context.Context, store kv.Store, t Theme) Applied {
	if _, valid := Parse(string(t)); !valid {
		t = Dark
	}
	if err := store.Set(ctx, StorageKey, string(t)); err != nil {
		c.logger.Warn("Theme preference write failed", zap.String("theme", string(t)), zap.Error(err))
	}
	return Applied{Theme: t, Label: t.Label()}
}

// Toggle flips the current theme and applies the result.
func (c *Controller) Toggle(ctx context.Context, store kv.Store, current Theme) Applied {
	return c.Apply(ctx, store, current.Flip())
}
