// Package notify carries the one-line feedback a tool page shows after an action.
package notify

import (
	"sync"
)

// Type is the severity of a notification
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// State is the message currently shown to the user
type State struct {
	Message string `json:"message"`
	Type    Type   `json:"type"`
}

// Notifier holds the notification for a single request.
// Every setter replaces the whole state; the last write wins.
type Notifier struct {
	mu    sync.Mutex
	state State
	set   bool
}

// New returns a Notifier with an empty success message
func New() *Notifier {
	return &Notifier{state: State{Type: TypeSuccess}}
}

// Success replaces the state with a success message
func (n *Notifier) Success(message string) {
	n.replace(State{Message: message, Type: TypeSuccess})
}

// Error replaces the state with an error message
func (n *Notifier) Error(message string) {
	n.replace(State{Message: message, Type: TypeError})
}

// Restore replaces the state with one carried over from a previous request
func (n *Notifier) Restore(state State) {
	if state.Type != TypeError {
		state.Type = TypeSuccess
	}
	n.replace(state)
}

// Current returns a copy of the state
func (n *Notifier) Current() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// IsSet reports whether any setter ran since creation
func (n *Notifier) IsSet() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.set
}

func (n *Notifier) replace(state State) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state = state
	n.set = true
}
