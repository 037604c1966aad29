package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"devtoolbox_echo/internal/notify"
	"devtoolbox_echo/internal/router"
	"devtoolbox_echo/internal/tools"
	"devtoolbox_echo/internal/views"
	"devtoolbox_echo/web/pages"
)

// APIError is the JSON body returned for failed /api requests
type APIError struct {
	Error        string       `json:"error"`
	Notification notify.State `json:"notification"`
}

// StatusFor maps an error to the HTTP status it should produce
func StatusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, router.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tools.ErrInvalidInput), errors.Is(err, views.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the text shown to the user for err
func UserMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(he.Code)
	}
	if errors.Is(err, tools.ErrInvalidInput) {
		msg := err.Error()
		if i := strings.Index(msg, tools.ErrInvalidInput.Error()+": "); i >= 0 {
			return msg[i+len(tools.ErrInvalidInput.Error())+2:]
		}
		return msg
	}
	if errors.Is(err, views.ErrUnknownAction) {
		return err.Error()
	}
	return ""
}

// CustomErrorHandler renders HTML error pages, or JSON for /api routes
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		c.Logger().Error(err)
		return
	}

	code := StatusFor(err)
	errorTitle := "Internal Server Error"
	errorMessage := UserMessage(err)

	switch code {
	case http.StatusNotFound:
		errorTitle = "Page Not Found"
		if errorMessage == "" || errors.Is(err, router.ErrNotFound) {
			errorMessage = "The page you're looking for doesn't exist."
		}
	case http.StatusBadRequest:
		errorTitle = "Bad Request"
		if errorMessage == "" {
			errorMessage = "The request could not be processed."
		}
	case http.StatusRequestEntityTooLarge:
		errorTitle = "Upload Too Large"
		errorMessage = "The uploaded data exceeds the size limit."
	case http.StatusMethodNotAllowed:
		errorTitle = "Method Not Allowed"
	default:
		if code >= 500 {
			errorMessage = "Something went wrong. Please try again later."
		} else if errorMessage == "" {
			errorTitle = http.StatusText(code)
		}
	}
	if errorMessage == "" {
		errorMessage = http.StatusText(code)
	}

	if code >= 500 {
		c.Logger().Error(err)
	} else {
		c.Logger().Debug(err)
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if jsonErr := c.JSON(code, APIError{
			Error:        errorMessage,
			Notification: notify.State{Message: errorMessage, Type: notify.TypeError},
		}); jsonErr != nil {
			c.Logger().Error(fmt.Errorf("failed to write error response: %w", jsonErr))
		}
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	props := pages.ErrorPageProps{
		Code:         code,
		ErrorTitle:   errorTitle,
		ErrorMessage: errorMessage,
		RequestID:    requestID,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().Status = code
	if renderErr := pages.ErrorPage(props).Render(c.Request().Context(), c.Response()); renderErr != nil {
		c.Logger().Error(fmt.Errorf("failed to render error page: %w", renderErr))
		_ = c.String(code, errorMessage)
	}
}
