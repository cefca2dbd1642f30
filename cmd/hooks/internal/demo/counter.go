// Package demo holds the Counter example component and a session driver that
// clicks its buttons.
package demo

import (
	"fmt"

	"github.com/go-drift/hooks/pkg/core"
)

const markup = `<button id="button-one" type="button">Update Count One %d</button>
<button id="button-two" type="button">Update Count Two %d</button>
<button id="button-toggle" type="button">Toggle Green</button>
<div class="green" style="background-color: %s"></div>`

// Counter renders two counters and a colored box. Its layout effects fight
// over the color: the first sets it to yellow, the second to blue, so the box
// settles on blue whatever the toggle asks for.
type Counter struct {
	Buttons *Buttons

	// Logf receives the component's console output. Nil discards it.
	Logf func(format string, args ...any)
}

// NewCounter creates a Counter binding its listeners onto buttons.
func NewCounter(buttons *Buttons, logf func(format string, args ...any)) *Counter {
	return &Counter{Buttons: buttons, Logf: logf}
}

func (c *Counter) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

func increment(n int) int { return n + 1 }

// Render is the component function.
func (c *Counter) Render(h *core.Hooks) string {
	countOne, setCountOne := core.UseState(h, 0)
	countTwo, setCountTwo := core.UseState(h, 0)
	color, setColor := core.UseState(h, "green")

	// Memoized on countTwo so the logged value is the one of the render
	// that last changed it.
	listenerOne := core.UseCallback(h, func() {
		setCountOne.Update(increment)
		c.logf("countTwo: %d", countTwo)
	}, core.Deps(countTwo))

	listenerTwo := core.UseCallback(h, func() {
		setCountTwo.Update(increment)
	}, core.Deps())

	toggle := core.UseCallback(h, func() {
		setColor.Update(func(prev string) string {
			if prev == "red" {
				return "green"
			}
			return "red"
		})
	}, core.Deps())

	core.UseLayoutEffect(h, func() (core.Cleanup, error) {
		setColor.Set("yellow")
		return func() { c.logf("color: %s", color) }, nil
	}, core.Deps(color))

	core.UseLayoutEffect(h, func() (core.Cleanup, error) {
		setColor.Set("blue")
		return nil, nil
	}, core.Deps(color))

	core.UseEffect(h, func() (core.Cleanup, error) {
		c.Buttons.Bind(ButtonOne, listenerOne)
		c.Buttons.Bind(ButtonTwo, listenerTwo)
		c.Buttons.Bind(ButtonToggle, toggle)
		return nil, nil
	}, nil)

	core.UseEffect(h, func() (core.Cleanup, error) {
		c.logf("useEffect countOne: %d", countOne)
		return func() { c.logf("return useEffect countOne: %d", countOne) }, nil
	}, core.Deps(countOne))

	core.UseEffect(h, func() (core.Cleanup, error) {
		c.logf("useEffect countTwo: %d", countTwo)
		return func() { c.logf("return useEffect countTwo: %d", countTwo) }, nil
	}, core.Deps(countTwo))

	c.logf("render: countOne=%d countTwo=%d color=%s", countOne, countTwo, color)

	return fmt.Sprintf(markup, countOne, countTwo, color)
}
