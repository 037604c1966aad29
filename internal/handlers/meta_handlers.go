package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"devtoolbox_echo/internal/models"
	"devtoolbox_echo/internal/router"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetaHandler exposes the navigation data and health checks
type MetaHandler struct {
	router *router.Router
	menu   []models.MenuItem
	cache  Pinger
}

// NewMetaHandler creates a MetaHandler. cache may be nil when Redis is not configured.
func NewMetaHandler(r *router.Router, menu []models.MenuItem, cache Pinger) *MetaHandler {
	return &MetaHandler{router: r, menu: menu, cache: cache}
}

// RouteInfo describes one route in the API
type RouteInfo struct {
	Path     string       `json:"path"`
	Name     string       `json:"name,omitempty"`
	View     string       `json:"view,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
	Loaded   bool         `json:"loaded"`
	Meta     *router.Meta `json:"meta,omitempty"`
}

// Menu returns the navigation tree
func (h *MetaHandler) Menu(c echo.Context) error {
	return c.JSON(http.StatusOK, h.menu)
}

// Routes returns the route table in declaration order
func (h *MetaHandler) Routes(c echo.Context) error {
	routes := h.router.Routes()
	out := make([]RouteInfo, 0, len(routes))
	for _, route := range routes {
		view, _ := router.ViewKey(route.Path)
		out = append(out, RouteInfo{
			Path:     route.Path,
			Name:     route.Name,
			View:     view,
			Redirect: route.Redirect,
			Loaded:   h.router.Loaded(route.Path),
			Meta:     route.Meta,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Health reports liveness and, when configured, cache reachability
func (h *MetaHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.cache == nil {
		status["cache"] = "disabled"
		return c.JSON(http.StatusOK, status)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		c.Logger().Warnf("health: cache ping failed: %v", err)
		status["status"] = "degraded"
		status["cache"] = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	status["cache"] = "ok"
	return c.JSON(http.StatusOK, status)
}

// Home redirects to the page the root route resolves to
func (h *MetaHandler) Home(c echo.Context) error {
	target, err := h.router.Target(router.Root)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, target)
}
