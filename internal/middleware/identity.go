package middleware

// identity.go defines accessors for the values SessionNamespace stores in the
// echo context.  Rate limiting and every client handler go through them.

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tourmate/internal/namespace"
)

const (
    scopeKey     = "scope"
    namespaceKey = "namespace"
)

// Scope returns the session scope, or "anon" outside SessionNamespace.
func Scope(c echo.Context) string {
    if s, ok := c.Get(scopeKey).(string); ok && s != "" {
        return s
    }
    return "anon"
}

// Namespace returns the session namespace, or nil outside SessionNamespace.
func Namespace(c echo.Context) namespace.Namespace {
    ns, _ := c.Get(namespaceKey).(namespace.Namespace)
    return ns
}
