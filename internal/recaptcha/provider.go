// Package recaptcha obtains anti-abuse tokens for form submissions.
package recaptcha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrTokenAcquisition wraps every failure to produce a token.
var ErrTokenAcquisition = errors.New("recaptcha token acquisition failed")

// Executor produces a token for a site key and action.
type Executor interface {
	Execute(ctx context.Context, siteKey, action string) (string, error)
}

// Loader is implemented by executors that need a one-time setup before the
// first token, such as fetching remote configuration.
type Loader interface {
	Load(ctx context.Context, siteKey string) error
}

// Config configures a Provider.
type Config struct {
	SiteKey string
}

// Provider hands out tokens. With no site key or executor it yields empty
// tokens rather than failing.
type Provider struct {
	siteKey  string
	executor Executor
	logger   *slog.Logger

	mu     sync.Mutex
	loaded bool
}

// New creates a Provider. exec may be nil.
func New(cfg Config, exec Executor) *Provider {
	return &Provider{
		siteKey:  cfg.SiteKey,
		executor: exec,
		logger:   slog.Default(),
	}
}

// WithLogger replaces the provider's logger.
func (p *Provider) WithLogger(l *slog.Logger) *Provider {
	p.logger = l
	return p
}

// Execute returns a token for action, or "" when the provider is unconfigured.
func (p *Provider) Execute(ctx context.Context, action string) (string, error) {
	if p.siteKey == "" || p.executor == nil {
		p.logger.DebugContext(ctx, "recaptcha not configured, sending empty token", "action", action)
		return "", nil
	}

	if err := p.load(ctx); err != nil {
		return "", fmt.Errorf("%w: load: %w", ErrTokenAcquisition, err)
	}

	token, err := p.executor.Execute(ctx, p.siteKey, action)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenAcquisition, err)
	}
	return token, nil
}

// load runs the executor's Loader once. A failed load is retried on the next call.
func (p *Provider) load(ctx context.Context) error {
	loader, ok := p.executor.(Loader)
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}
	if err := loader.Load(ctx, p.siteKey); err != nil {
		return err
	}
	p.loaded = true
	return nil
}
