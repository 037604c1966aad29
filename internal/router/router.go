// Package router maps URL paths to tool views. The table is fixed at construction;
// each view is built on the first navigation to its path and reused afterwards.
package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"devtoolbox_echo/internal/views"
)

// ErrNotFound is returned for paths that have no route
var ErrNotFound = errors.New("route not found")

// maxRedirects bounds redirect chains during resolution
const maxRedirects = 8

// Loader builds the view for a route
type Loader func() (views.View, error)

// Meta is display information attached to a route
type Meta struct {
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
	Group string `json:"group,omitempty"`
}

// Route is one entry of the routing table.
// Exactly one of Component and Redirect is set.
type Route struct {
	Path      string
	Name      string
	Component Loader
	Redirect  string
	Meta      *Meta
}

// entry holds a route and its lazily loaded view
type entry struct {
	route Route

	mu   sync.Mutex
	view views.View
}

// load returns the cached view, building it on first use.
// A failed load is not cached so the next navigation retries it.
func (e *entry) load() (views.View, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.view != nil {
		return e.view, false, nil
	}
	view, err := e.route.Component()
	if err != nil {
		return nil, false, err
	}
	if view == nil {
		return nil, false, fmt.Errorf("route %s: loader returned no view", e.route.Path)
	}
	e.view = view
	return view, true, nil
}

// Resolution is the outcome of resolving a path
type Resolution struct {
	Route Route
	View  views.View
	// RedirectedFrom is the requested path when one or more redirects were followed
	RedirectedFrom string
	// Loaded is set when this navigation built the view
	Loaded bool
}

// Router resolves paths against an immutable route table
type Router struct {
	entries []*entry
	byPath  map[string]*entry
}

// New validates routes and builds a Router.
// Paths must be unique, and redirects must point at registered paths.
func New(routes []Route) (*Router, error) {
	r := &Router{byPath: make(map[string]*entry, len(routes))}
	names := make(map[string]bool, len(routes))

	for _, route := range routes {
		path := normalize(route.Path)
		if path == "" || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("route path %q must start with /", route.Path)
		}
		route.Path = path
		if _, exists := r.byPath[path]; exists {
			return nil, fmt.Errorf("duplicate route path %q", path)
		}
		hasComponent := route.Component != nil
		hasRedirect := route.Redirect != ""
		if hasComponent == hasRedirect {
			return nil, fmt.Errorf("route %q needs exactly one of component or redirect", path)
		}
		if route.Name != "" {
			if names[route.Name] {
				return nil, fmt.Errorf("duplicate route name %q", route.Name)
			}
			names[route.Name] = true
		}
		e := &entry{route: route}
		r.entries = append(r.entries, e)
		r.byPath[path] = e
	}

	for _, e := range r.entries {
		if e.route.Redirect == "" {
			continue
		}
		if _, ok := r.byPath[normalize(e.route.Redirect)]; !ok {
			return nil, fmt.Errorf("route %q redirects to unknown path %q", e.route.Path, e.route.Redirect)
		}
	}
	return r, nil
}

// Resolve follows redirects from path and returns the view it ends on
func (r *Router) Resolve(path string) (Resolution, error) {
	requested := normalize(path)
	current := requested
	for hops := 0; hops <= maxRedirects; hops++ {
		e, ok := r.byPath[current]
		if !ok {
			return Resolution{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if e.route.Redirect != "" {
			current = normalize(e.route.Redirect)
			continue
		}

		view, loaded, err := e.load()
		if err != nil {
			return Resolution{}, fmt.Errorf("load %s: %w", current, err)
		}
		res := Resolution{Route: e.route, View: view, Loaded: loaded}
		if current != requested {
			res.RedirectedFrom = requested
		}
		return res, nil
	}
	return Resolution{}, fmt.Errorf("too many redirects resolving %s", path)
}

// Target returns the final path a request for path ends up on, without loading views
func (r *Router) Target(path string) (string, error) {
	current := normalize(path)
	for hops := 0; hops <= maxRedirects; hops++ {
		e, ok := r.byPath[current]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if e.route.Redirect == "" {
			return current, nil
		}
		current = normalize(e.route.Redirect)
	}
	return "", fmt.Errorf("too many redirects resolving %s", path)
}

// Routes returns the table in declaration order
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.route
	}
	return out
}

// Loaded reports whether the view behind path has been built
func (r *Router) Loaded(path string) bool {
	e, ok := r.byPath[normalize(path)]
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view != nil
}

// normalize strips a trailing slash except on the root
func normalize(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
