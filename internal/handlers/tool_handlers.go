package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"devtoolbox_echo/internal/middleware"
	"devtoolbox_echo/internal/models"
	"devtoolbox_echo/internal/notify"
	"devtoolbox_echo/internal/router"
	"devtoolbox_echo/internal/services"
	"devtoolbox_echo/internal/tools"
	"devtoolbox_echo/internal/views"
)

// ToolHandler serves the tool pages and the JSON tool API
type ToolHandler struct {
	router    *router.Router
	menu      []models.MenuItem
	metrics   *services.Metrics
	maxUpload int64
	// viewPaths maps a view key to the route that renders it
	viewPaths map[string]string
	groups    map[string]string
}

// NewToolHandler creates a ToolHandler. metrics may be nil.
func NewToolHandler(r *router.Router, menu []models.MenuItem, metrics *services.Metrics, maxUpload int64) *ToolHandler {
	h := &ToolHandler{
		router:    r,
		menu:      menu,
		metrics:   metrics,
		maxUpload: maxUpload,
		viewPaths: make(map[string]string),
		groups:    make(map[string]string),
	}
	for _, route := range r.Routes() {
		if key, ok := router.ViewKey(route.Path); ok {
			h.viewPaths[key] = route.Path
		}
	}
	for _, group := range menu {
		h.groups[group.Key] = group.Title
	}
	return h
}

// Page renders the tool behind the request path with its default values
func (h *ToolHandler) Page(c echo.Context) error {
	res, err := h.resolve(c.Request().URL.Path)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, res, res.View.Form().Defaults(), nil)
}

// Submit runs the submitted form and renders the result on the same page
func (h *ToolHandler) Submit(c echo.Context) error {
	res, err := h.resolve(c.Request().URL.Path)
	if err != nil {
		return err
	}
	form := res.View.Form()

	in, err := h.formInput(c, form)
	if err == nil {
		var out views.Output
		out, err = h.run(c.Request().Context(), res.View, in)
		if err == nil {
			middleware.Notifier(c).Success(out.Message)
			return h.render(c, http.StatusOK, res, in.Values, &out)
		}
	}

	msg := h.failure(c, err)
	if views.IsUploadMissing(err) {
		notify.WriteFlash(c.Response(), c.Request(), notify.State{Message: msg, Type: notify.TypeError})
		return c.Redirect(http.StatusSeeOther, res.Route.Path)
	}
	middleware.Notifier(c).Error(msg)
	values := form.Defaults()
	if in.Values != nil {
		values = in.Values
	}
	return h.render(c, middleware.StatusFor(err), res, values, nil)
}

// API runs a tool by view key and returns the output as JSON.
// The body is either JSON ({"action", "values", "file"}) or a regular form.
func (h *ToolHandler) API(c echo.Context) error {
	key := c.Param("key")
	path, ok := h.viewPaths[key]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown tool %q", key))
	}
	res, err := h.resolve(path)
	if err != nil {
		return err
	}

	var in views.Input
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		in, err = h.jsonInput(c)
	} else {
		in, err = h.formInput(c, res.View.Form())
	}
	if err != nil {
		return err
	}

	out, err := h.run(c.Request().Context(), res.View, in)
	if err != nil {
		if middleware.StatusFor(err) >= 500 {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error()).SetInternal(err)
		}
		return err
	}

	n := middleware.Notifier(c)
	n.Success(out.Message)
	return c.JSON(http.StatusOK, ToolResponse{Output: out, Notification: n.Current()})
}

// resolve maps a path to its view, recording first loads
func (h *ToolHandler) resolve(path string) (router.Resolution, error) {
	res, err := h.router.Resolve(path)
	if errors.Is(err, router.ErrNotFound) {
		return router.Resolution{}, echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	if err != nil {
		return router.Resolution{}, err
	}
	if res.Loaded && h.metrics != nil {
		h.metrics.ObserveViewLoad(res.View.Key())
	}
	return res, nil
}

// run submits in to view and records the outcome
func (h *ToolHandler) run(ctx context.Context, view views.View, in views.Input) (views.Output, error) {
	start := time.Now()
	out, err := view.Submit(ctx, in)
	if h.metrics != nil {
		h.metrics.ObserveTool(view.Key(), actionLabel(view.Form(), in.Action), time.Since(start), err)
	}
	return out, err
}

// actionLabel bounds the metric label to the actions the form declares
func actionLabel(form views.Form, action string) string {
	if action == "" {
		return ""
	}
	for _, declared := range form.Actions {
		if declared.Value == action {
			return action
		}
	}
	return "unknown"
}

// failure logs err when it is not the user's fault and returns the notification text
func (h *ToolHandler) failure(c echo.Context, err error) string {
	if middleware.StatusFor(err) >= 500 {
		c.Logger().Errorf("tool %s: %v", c.Request().URL.Path, err)
	}
	if msg := middleware.UserMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}

func (h *ToolHandler) render(c echo.Context, status int, res router.Resolution, values map[string]string, out *views.Output) error {
	title := res.View.Key()
	group := ""
	if res.Route.Meta != nil {
		title = res.Route.Meta.Title
		group = h.groups[res.Route.Meta.Group]
	}

	breadcrumbs := []Breadcrumb{{Title: "首页", URL: "/"}}
	if group != "" {
		breadcrumbs = append(breadcrumbs, Breadcrumb{Title: group})
	}
	breadcrumbs = append(breadcrumbs, Breadcrumb{Title: title})

	return c.Render(status, "tool.html", &PageData{
		Title:       title,
		ActiveNav:   res.Route.Path,
		Breadcrumbs: breadcrumbs,
		Menu:        h.menu,
		Data: &ToolPage{
			Key:    res.View.Key(),
			Path:   res.Route.Path,
			Form:   res.View.Form(),
			Values: values,
			Output: out,
		},
	})
}

// formInput reads the declared fields of form from a urlencoded or multipart body
func (h *ToolHandler) formInput(c echo.Context, form views.Form) (views.Input, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := req.ParseMultipartForm(h.maxUpload); err != nil {
			return views.Input{}, fmt.Errorf("%w: %v", tools.ErrInvalidInput, err)
		}
	}

	in := views.Input{
		Action: c.FormValue("action"),
		Values: make(map[string]string, len(form.Fields)),
	}
	for _, field := range form.Fields {
		if field.Kind == views.FieldFile {
			file, err := h.uploadedFile(c, field.Name)
			if err != nil {
				return in, err
			}
			in.File = file
			continue
		}
		in.Values[field.Name] = c.FormValue(field.Name)
	}
	return in, nil
}

func (h *ToolHandler) uploadedFile(c echo.Context, name string) (*views.File, error) {
	header, err := c.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tools.ErrInvalidInput, err)
	}
	if h.maxUpload > 0 && header.Size > h.maxUpload {
		return nil, fmt.Errorf("%w: %s is larger than %s", tools.ErrInvalidInput, header.Filename, byteSize(int(h.maxUpload)))
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &views.File{Name: header.Filename, Data: data}, nil
}

type apiFile struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

type apiRequest struct {
	Action string            `json:"action"`
	Values map[string]string `json:"values"`
	File   *apiFile          `json:"file"`
}

func (h *ToolHandler) jsonInput(c echo.Context) (views.Input, error) {
	var req apiRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return views.Input{}, echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object").SetInternal(err)
	}
	in := views.Input{Action: req.Action, Values: req.Values}
	if in.Values == nil {
		in.Values = map[string]string{}
	}
	if req.File != nil {
		if h.maxUpload > 0 && int64(len(req.File.Data)) > h.maxUpload {
			return in, fmt.Errorf("%w: file is larger than %s", tools.ErrInvalidInput, byteSize(int(h.maxUpload)))
		}
		in.File = &views.File{Name: req.File.Name, Data: req.File.Data}
	}
	return in, nil
}
