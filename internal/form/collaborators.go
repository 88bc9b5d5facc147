package form

import (
	"context"

	"ctchen222/signup-form/internal/transport"
)

//go:generate mockgen -source=collaborators.go -destination=mocks/collaborators_mock.go -package=mocks

// TokenProvider returns an anti-abuse token for an action, or "" when the
// mechanism is not configured.
type TokenProvider interface {
	Execute(ctx context.Context, action string) (string, error)
}

// Transport performs the submission request.
type Transport interface {
	Do(ctx context.Context, req transport.Request) (*transport.Response, error)
}
