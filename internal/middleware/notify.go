package middleware

import (
	"github.com/labstack/echo/v4"

	"devtoolbox_echo/internal/notify"
)

const notifierKey = "notifier"

// Notifications gives every request its own Notifier, seeded from the flash cookie
// left by a previous redirect.
func Notifications() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			n := notify.New()
			if state, ok := notify.ReadFlash(c.Response(), c.Request()); ok {
				n.Restore(state)
			}
			c.Set(notifierKey, n)
			return next(c)
		}
	}
}

// Notifier returns the request's Notifier, creating one if the middleware did not run
func Notifier(c echo.Context) *notify.Notifier {
	if n, ok := c.Get(notifierKey).(*notify.Notifier); ok {
		return n
	}
	n := notify.New()
	c.Set(notifierKey, n)
	return n
}
