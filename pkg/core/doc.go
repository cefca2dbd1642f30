// Package core provides the hook-slot engine that re-renders a component and
// threads its state across renders by call position.
//
// A component is a plain function that receives a *Hooks capability and
// returns markup. Hooks are declared with package-level functions:
//
//	func Greeter(h *core.Hooks) string {
//	    name, setName := core.UseState(h, "world")
//	    core.UseEffect(h, func() (core.Cleanup, error) {
//	        if name == "world" {
//	            setName.Set("gopher")
//	        }
//	        return nil, nil
//	    }, core.Deps(name))
//	    return "<p>hello " + name + "</p>"
//	}
//
// # Engine
//
// An Engine owns all slot storage of one component. Init performs the first
// render; every setter call requests a re-render on the next frame tick
// through the engine's frame.Clock:
//
//	loop := frame.NewLoop()
//	engine := core.New(Greeter, sink.NewWriter(os.Stdout), loop)
//	if err := engine.Init(); err != nil {
//	    return err
//	}
//	defer engine.Dispose()
//	return loop.Run(ctx, frame.DefaultInterval)
//
// # Hook identity
//
// Each hook kind (state, layout effect, effect, callback) has its own call
// counter, reset at the start of every render. A component that calls a
// different number of hooks of a kind from one render to the next reads
// another hook's slot; nothing stops it. WithDebug(true) reports such shape
// changes through errors.ReportHook.
//
// # Effects
//
// Layout effects queued by a render run synchronously after the component
// returns, in declaration order. Deferred effects each schedule their own
// frame tick and are decided and run there. Both run the previous cleanup
// before running again.
//
// # Commits
//
// A render with no queued layout effects commits immediately. The first render
// commits after draining its layout effects. A later render that queued layout
// effects drains them and does not commit.
package core
