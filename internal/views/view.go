// Package views adapts the tools to pages: each view describes its form and turns
// one submitted form into one output.
package views

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"devtoolbox_echo/internal/tools"
)

// ErrUnknownAction is returned when a form names an action the view does not offer
var ErrUnknownAction = errors.New("unknown action")

// FieldKind selects the input widget for a form field
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
	FieldNumber   FieldKind = "number"
	FieldFile     FieldKind = "file"
	FieldPassword FieldKind = "password"
)

// Option is a select choice or an action button
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one form input
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []Option  `json:"options,omitempty"`
	Default     string    `json:"default,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Form describes the inputs and action buttons of a tool page
type Form struct {
	Fields  []Field  `json:"fields"`
	Actions []Option `json:"actions"`
	// Multipart is set when the form uploads a file
	Multipart bool `json:"multipart,omitempty"`
}

// Defaults returns the initial field values
func (f Form) Defaults() map[string]string {
	values := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		if field.Default != "" {
			values[field.Name] = field.Default
		}
	}
	return values
}

// File is an uploaded file
type File struct {
	Name string
	Data []byte
}

// Input is one submission of a tool form
type Input struct {
	Action string
	Values map[string]string
	File   *File
}

// Value returns the raw value of a field
func (in Input) Value(name string) string {
	return in.Values[name]
}

// Bool reads a checkbox-style field
func (in Input) Bool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(in.Values[name])) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Int reads a numeric field, returning def when it is empty
func (in Input) Int(name string, def int) (int, error) {
	v := strings.TrimSpace(in.Values[name])
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", tools.ErrInvalidInput, name)
	}
	return n, nil
}

// Pair is a labelled value shown in a result table
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Image is a binary image result
type Image struct {
	ContentType string `json:"content_type"`
	FileName    string `json:"file_name,omitempty"`
	Data        []byte `json:"data"`
}

// Output is what a view produced for one submission
type Output struct {
	// Message is the success notification
	Message string        `json:"message"`
	Text    string        `json:"text,omitempty"`
	HTML    template.HTML `json:"html,omitempty"`
	Pairs   []Pair        `json:"pairs,omitempty"`
	Image   *Image        `json:"image,omitempty"`
	Data    any           `json:"data,omitempty"`
}

// View is the page behind one route
type View interface {
	Key() string
	Form() Form
	Submit(ctx context.Context, in Input) (Output, error)
}

// Cache stores rendered results between requests
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Deps are the shared collaborators handed to view factories
type Deps struct {
	// Cache may be nil
	Cache          Cache
	CacheTTL       time.Duration
	APIClient      *tools.APIClient
	Timezone       *time.Location
	Now            func() time.Time
	HighlightStyle string
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func unknownAction(view, action string) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownAction, action, view)
}
