// Package session ends a browser session's login state.
package session

import (
	"context"
	"fmt"

	"github.com/iliyamo/tourmate/internal/namespace"
)

// DefaultLanding is where a logged-out browser is sent.
const DefaultLanding = "index.html"

// Terminator clears the login flags of one namespace. Client records are
// left alone.
type Terminator struct {
	ns      namespace.Namespace
	landing string
}

// NewTerminator returns a Terminator that redirects to landing, or to
// DefaultLanding when landing is empty.
func NewTerminator(ns namespace.Namespace, landing string) *Terminator {
	if landing == "" {
		landing = DefaultLanding
	}
	return &Terminator{ns: ns, landing: landing}
}

// Logout removes the current user and the logged-in flag and returns the
// location the browser should navigate to.
func (t *Terminator) Logout(ctx context.Context) (string, error) {
	for _, key := range []string{namespace.KeyUser, namespace.KeyLoggedIn} {
		if err := t.ns.RemoveItem(ctx, key); err != nil {
			return "", fmt.Errorf("logout: remove %s: %w", key, err)
		}
	}
	return t.landing, nil
}
