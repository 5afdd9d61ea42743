// Package namespace provides the key-value storage area a browser session
// writes its state into. Each session owns one scope; every backend keeps
// scopes isolated from each other.
package namespace

import (
	"context"
	"errors"
)

// Fixed keys used by the application. Values are JSON text.
const (
	KeyClients  = "tourmate_clients"
	KeyUser     = "tourmate_user"
	KeyLoggedIn = "tourmate_logged_in"
	KeyPlans    = "tourmate_plans" // reserved, nothing reads or writes it yet
)

// ErrUnavailable wraps failures of the storage behind a namespace.
var ErrUnavailable = errors.New("namespace unavailable")

// Namespace is a flat string-to-string store for one session scope.
type Namespace interface {
	// GetItem returns the value stored under key. ok is false when the key
	// is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem replaces the value stored under key.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Factory opens the namespace belonging to a session scope.
type Factory func(scope string) Namespace
