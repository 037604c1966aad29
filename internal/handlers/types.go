package handlers

import (
	"devtoolbox_echo/internal/models"
	"devtoolbox_echo/internal/notify"
	"devtoolbox_echo/internal/views"
)

// Breadcrumb represents a navigation trail
type Breadcrumb struct {
	Title string
	URL   string
}

// PageData represents the common data structure passed to templates
type PageData struct {
	Title        string
	ActiveNav    string
	Breadcrumbs  []Breadcrumb
	Menu         []models.MenuItem
	Notification notify.State
	Data         interface{} // Page-specific data
}

// ToolPage is the page-specific data of a tool page
type ToolPage struct {
	Key    string
	Path   string
	Form   views.Form
	Values map[string]string
	Output *views.Output
}

// ToolResponse is the body returned by the JSON tool API
type ToolResponse struct {
	Output       views.Output `json:"output"`
	Notification notify.State `json:"notification"`
}
