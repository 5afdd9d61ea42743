package handler // declare the package name; contains HTTP handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// HealthHandler reports liveness together with the namespace backend in use.
type HealthHandler struct {
    Backend string
}

func NewHealthHandler(backend string) *HealthHandler { return &HealthHandler{Backend: backend} }

// Health is used by load balancers and monitoring systems to verify that
// the service is running.
func (h *HealthHandler) Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"status": "ok", "namespace": h.Backend})
}
