package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"devtoolbox_echo/internal/services"
)

// Metrics counts finished requests by method and status code
func Metrics(m *services.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			code := c.Response().Status
			if err != nil && !c.Response().Committed {
				// the error handler runs after this returns and will write this status
				code = StatusFor(err)
			}
			m.ObserveRequest(c.Request().Method, strconv.Itoa(code))
			return err
		}
	}
}
