package router // package router defines how HTTP routes are registered

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tourmate/internal/handler"
)

// RegisterRoutes registers routes that need neither a session nor a cache:
// the health check and the redirect from / to the client page.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/clients") })
}

// RegisterRecommendations registers the stateless recommendation endpoints.
// Their output depends only on the query string, so they sit behind the
// response cache.
func RegisterRecommendations(e *echo.Echo, cache echo.MiddlewareFunc) {
	e.GET("/v1/recommendation", handler.GetRecommendation, cache)
	e.GET("/v1/tiers", handler.GetTiers, cache)
}

// RegisterClients registers the session-scoped client routes.  session opens
// the caller's namespace and must run first; limiter guards the routes that
// write to it.
func RegisterClients(e *echo.Echo, h *handler.ClientHandler, session, limiter echo.MiddlewareFunc) {
	// HTML pages used by the browser.
	e.GET("/clients", h.Page, session)
	e.POST("/clients", h.Create, session, limiter)
	e.GET("/clients/:id/summary", h.Summary, session)
	e.DELETE("/clients/:id", h.Delete, session, limiter)
	e.POST("/clients/:id/delete", h.DeleteForm, session, limiter)
	e.POST("/logout", h.Logout, session)

	// JSON API.
	g := e.Group("/v1/clients", session)
	g.GET("", h.ListJSON)
	g.POST("", h.CreateJSON, limiter)
	g.DELETE("/:id", h.DeleteJSON, limiter)
}
