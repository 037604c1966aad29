package handlers

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"devtoolbox_echo/internal/router"
	"devtoolbox_echo/internal/services"
)

// RegisterRoutes wires every page, API endpoint and asset onto e.
// metrics may be nil, in which case /metrics is not served.
func RegisterRoutes(e *echo.Echo, tool *ToolHandler, meta *MetaHandler, metrics *services.Metrics, static fs.FS) {
	e.StaticFS("/static", static)

	for _, route := range tool.router.Routes() {
		if route.Redirect != "" {
			if route.Path == router.Root {
				e.GET(route.Path, meta.Home)
				continue
			}
			target := route.Redirect
			e.GET(route.Path, func(c echo.Context) error {
				return c.Redirect(http.StatusFound, target)
			})
			continue
		}
		e.GET(route.Path, tool.Page)
		e.POST(route.Path, tool.Submit)
	}

	api := e.Group("/api")
	api.GET("/menu", meta.Menu)
	api.GET("/routes", meta.Routes)
	api.POST("/tools/:key", tool.API)

	e.GET("/healthz", meta.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}
}
