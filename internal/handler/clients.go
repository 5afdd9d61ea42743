// Package handler exposes the HTTP handlers of the service.  This file holds
// the client handlers: the HTML pages a browser uses and the JSON API under
// /v1.  Every handler works on the namespace that the session middleware
// opened for the caller.
package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tourmate/internal/middleware"
    "github.com/iliyamo/tourmate/internal/model"
    "github.com/iliyamo/tourmate/internal/render"
    "github.com/iliyamo/tourmate/internal/repository"
    "github.com/iliyamo/tourmate/internal/session"
)

// ClientHandler bundles the collaborators of the client endpoints.  Publisher
// may be nil, in which case no events are sent.
type ClientHandler struct {
    Publisher repository.Publisher
    Landing   string
}

func NewClientHandler(p repository.Publisher, landing string) *ClientHandler {
    return &ClientHandler{Publisher: p, Landing: landing}
}

// ----- DTOs -----

// clientReq is accepted both as a form post and as JSON.  The id is optional;
// when zero the current Unix time in milliseconds is used.
type clientReq struct {
    ID          int64   `json:"id" form:"id"`
    ClientName  string  `json:"clientName" form:"clientName"`
    Destination string  `json:"destination" form:"destination"`
    Days        int     `json:"days" form:"days"`
    Budget      float64 `json:"budget" form:"budget"`
}

func (r clientReq) record() model.ClientRecord {
    id := r.ID
    if id == 0 {
        id = time.Now().UnixMilli()
    }
    return model.ClientRecord{
        ID:          id,
        ClientName:  r.ClientName,
        Destination: r.Destination,
        Days:        r.Days,
        Budget:      r.Budget,
    }.WithRecommendation()
}

type clientResp struct {
    model.ClientRecord
    PerDay int64 `json:"perDay"`
}

func (h *ClientHandler) store(c echo.Context, opts ...repository.Option) (*repository.ClientStore, bool) {
    ns := middleware.Namespace(c)
    if ns == nil {
        return nil, false
    }
    if h.Publisher != nil {
        opts = append(opts, repository.WithPublisher(h.Publisher, middleware.Scope(c)))
    }
    return repository.NewClientStore(ns, opts...), true
}

func parseID(c echo.Context) (int64, error) {
    return strconv.ParseInt(c.Param("id"), 10, 64)
}

// ----- HTML -----

// Page handles GET /clients: the form, and the table of saved clients.
func (h *ClientHandler) Page(c echo.Context) error {
    s, ok := h.store(c)
    if !ok {
        return c.String(http.StatusInternalServerError, "session unavailable")
    }
    clients, err := s.List(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("list clients: %v", err)
        return c.String(http.StatusInternalServerError, "storage unavailable")
    }
    return c.Render(http.StatusOK, render.ClientsPage, render.PageData{Clients: clients})
}

// Create handles POST /clients from the client form.  The record is saved
// with its recommendation cached and the browser is redirected to its
// summary, so a refresh does not submit the form again.
func (h *ClientHandler) Create(c echo.Context) error {
    var req clientReq
    if err := c.Bind(&req); err != nil {
        return c.String(http.StatusBadRequest, "invalid form")
    }
    rec := req.record()
    if err := rec.Validate(); err != nil {
        return c.String(http.StatusUnprocessableEntity, err.Error())
    }
    s, ok := h.store(c)
    if !ok {
        return c.String(http.StatusInternalServerError, "session unavailable")
    }
    if err := s.Save(c.Request().Context(), rec); err != nil {
        c.Logger().Errorf("save client: %v", err)
        return c.String(http.StatusInternalServerError, "storage unavailable")
    }
    return c.Redirect(http.StatusSeeOther, "/clients/"+strconv.FormatInt(rec.ID, 10)+"/summary")
}

// Summary handles GET /clients/:id/summary: the client page with the tour
// summary of one record.
func (h *ClientHandler) Summary(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return c.String(http.StatusBadRequest, "invalid id")
    }
    s, ok := h.store(c)
    if !ok {
        return c.String(http.StatusInternalServerError, "session unavailable")
    }
    ctx := c.Request().Context()
    rec, err := s.Get(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrClientNotFound) {
            return c.String(http.StatusNotFound, "client not found")
        }
        c.Logger().Errorf("get client: %v", err)
        return c.String(http.StatusInternalServerError, "storage unavailable")
    }
    clients, err := s.List(ctx)
    if err != nil {
        c.Logger().Errorf("list clients: %v", err)
        return c.String(http.StatusInternalServerError, "storage unavailable")
    }
    return c.Render(http.StatusOK, render.ClientsPage, render.PageData{Clients: clients, Summary: &rec})
}

// Delete handles DELETE /clients/:id.  The response body is the redrawn
// client table, produced by the store's renderer hook.
func (h *ClientHandler) Delete(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return c.String(http.StatusBadRequest, "invalid id")
    }
    redraw := repository.RendererFunc(func(_ context.Context, clients []model.ClientRecord) error {
        return c.Render(http.StatusOK, render.ClientsTable, clients)
    })
    s, ok := h.store(c, repository.WithRenderer(redraw))
    if !ok {
        return c.String(http.StatusInternalServerError, "session unavailable")
    }
    if err := s.DeleteByID(c.Request().Context(), id); err != nil {
        c.Logger().Errorf("delete client: %v", err)
        return c.String(http.StatusInternalServerError, "storage unavailable")
    }
    if !c.Response().Committed {
        return c.NoContent(http.StatusNoContent)
    }
    return nil
}

// DeleteForm handles POST /clients/:id/delete for browsers without
// JavaScript and redirects back to the list.
func (h *ClientHandler) DeleteForm(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return c.String(http.StatusBadRequest, "invalid id")
    }
    s, ok := h.store(c)
    if !ok {
        return c.String(http.StatusInternalServerError, "session unavailable")
    }
    if err := s.DeleteByID(c.Request().Context(), id); err != nil {
        c.Logger().Errorf("delete client: %v", err)
        return c.String(http.StatusInternalServerError, "storage unavailable")
    }
    return c.Redirect(http.StatusSeeOther, "/clients")
}

// Logout handles POST /logout: the session flags are cleared and the browser
// is sent to the landing page.  Saved clients stay in the namespace.
func (h *ClientHandler) Logout(c echo.Context) error {
    ns := middleware.Namespace(c)
    if ns == nil {
        return c.String(http.StatusInternalServerError, "session unavailable")
    }
    landing, err := session.NewTerminator(ns, h.Landing).Logout(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("logout: %v", err)
        return c.String(http.StatusInternalServerError, "storage unavailable")
    }
    return c.Redirect(http.StatusSeeOther, landing)
}

// ----- JSON -----

// ListJSON handles GET /v1/clients.
func (h *ClientHandler) ListJSON(c echo.Context) error {
    s, ok := h.store(c)
    if !ok {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session unavailable"})
    }
    clients, err := s.List(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("list clients: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage unavailable"})
    }
    out := make([]clientResp, 0, len(clients))
    for _, rec := range clients {
        out = append(out, clientResp{ClientRecord: rec, PerDay: rec.PerDay()})
    }
    return c.JSON(http.StatusOK, out)
}

// CreateJSON handles POST /v1/clients.
func (h *ClientHandler) CreateJSON(c echo.Context) error {
    var req clientReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    rec := req.record()
    if err := rec.Validate(); err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }
    s, ok := h.store(c)
    if !ok {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session unavailable"})
    }
    if err := s.Save(c.Request().Context(), rec); err != nil {
        c.Logger().Errorf("save client: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage unavailable"})
    }
    return c.JSON(http.StatusCreated, clientResp{ClientRecord: rec, PerDay: rec.PerDay()})
}

// DeleteJSON handles DELETE /v1/clients/:id.  Unknown ids are not an error.
func (h *ClientHandler) DeleteJSON(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    s, ok := h.store(c)
    if !ok {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session unavailable"})
    }
    if err := s.DeleteByID(c.Request().Context(), id); err != nil {
        c.Logger().Errorf("delete client: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage unavailable"})
    }
    return c.NoContent(http.StatusNoContent)
}
