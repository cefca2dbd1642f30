package demo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Button IDs rendered by Counter.
const (
	ButtonOne    = "button-one"
	ButtonTwo    = "button-two"
	ButtonToggle = "button-toggle"
)

var (
	// ErrUnknownButton is returned for a click name that names no button.
	ErrUnknownButton = errors.New("demo: unknown button")
	// ErrUnbound is returned when a button has no listener yet.
	ErrUnbound = errors.New("demo: button has no listener")
)

var shortNames = map[string]string{
	"one":    ButtonOne,
	"two":    ButtonTwo,
	"toggle": ButtonToggle,
}

// ButtonID resolves a click name. It accepts the short names used in
// hooks.yaml ("one", "two", "toggle") and full button IDs.
func ButtonID(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if id, ok := shortNames[name]; ok {
		return id, nil
	}
	for _, id := range shortNames {
		if id == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// Buttons maps button IDs to click listeners, standing in for the event
// listeners of rendered buttons. Binding a button replaces its listener.
type Buttons struct {
	listeners map[string]func()
}

// NewButtons creates an empty registry.
func NewButtons() *Buttons {
	return &Buttons{listeners: make(map[string]func())}
}

// Bind sets the listener of id.
func (b *Buttons) Bind(id string, fn func()) {
	if fn == nil {
		delete(b.listeners, id)
		return
	}
	b.listeners[id] = fn
}

// Click invokes the listener bound to id.
func (b *Buttons) Click(id string) error {
	fn, ok := b.listeners[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnbound, id)
	}
	fn()
	return nil
}

// Bound returns the IDs that have a listener, sorted.
func (b *Buttons) Bound() []string {
	ids := make([]string, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
