package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtoolbox_echo/internal/notify"
	"devtoolbox_echo/internal/router"
	"devtoolbox_echo/internal/tools"
	"devtoolbox_echo/internal/views"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"http error", echo.NewHTTPError(http.StatusTeapot), http.StatusTeapot},
		{"not found", fmt.Errorf("resolve: %w", router.ErrNotFound), http.StatusNotFound},
		{"invalid input", fmt.Errorf("%w: bad", tools.ErrInvalidInput), http.StatusBadRequest},
		{"unknown action", fmt.Errorf("%w \"x\"", views.ErrUnknownAction), http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestUserMessageStripsSentinelPrefix(t *testing.T) {
	err := fmt.Errorf("load: %w", fmt.Errorf("%w: line 2, column 3", tools.ErrInvalidInput))
	assert.Equal(t, "line 2, column 3", UserMessage(err))
	assert.Equal(t, "gone", UserMessage(echo.NewHTTPError(http.StatusGone, "gone")))
	assert.Empty(t, UserMessage(errors.New("internal detail")))
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dev/base64", nil), rec)

	CustomErrorHandler(errors.New("database password is hunter2"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestErrorHandlerJSONForAPI(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/tools/base64", nil), rec)

	CustomErrorHandler(fmt.Errorf("%w: not base64", tools.ErrInvalidInput), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"not base64","notification":{"message":"not base64","type":"error"}}`, rec.Body.String())
}

func TestNotificationsSeedFromFlash(t *testing.T) {
	e := echo.New()

	flash := httptest.NewRecorder()
	notify.WriteFlash(flash, nil, notify.State{Message: "saved", Type: notify.TypeSuccess})
	cookies := flash.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c := e.NewContext(req, httptest.NewRecorder())

	var got notify.State
	handler := Notifications()(func(c echo.Context) error {
		got = Notifier(c).Current()
		return nil
	})
	require.NoError(t, handler(c))
	assert.Equal(t, notify.State{Message: "saved", Type: notify.TypeSuccess}, got)
}

func TestNotifierWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	n := Notifier(c)
	n.Error("x")
	assert.Same(t, n, Notifier(c))
}
