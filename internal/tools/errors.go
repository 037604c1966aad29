// Package tools implements the text and image transformations behind each tool page.
// Every function is stateless apart from the APIClient, which owns an HTTP client.
package tools

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks errors caused by the user's input rather than the server
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
