package sideeffect

import (
	"reflect"

	"github.com/go-drift/sideeffect/pkg/core"
	"github.com/go-drift/sideeffect/pkg/errors"
)

// Component describes the wrapped component: it renders one occurrence's
// props to a widget subtree.
type Component[P any] interface {
	Render(ctx core.BuildContext, props P) core.Widget
}

// RenderFunc adapts a plain function to Component. Functions carry no
// declared name, so wrappers around them report the fallback display name
// unless the function value is wrapped in a type implementing DisplayNamer.
type RenderFunc[P any] func(ctx core.BuildContext, props P) core.Widget

func (f RenderFunc[P]) Render(ctx core.BuildContext, props P) core.Widget {
	return f(ctx, props)
}

// DisplayNamer lets a component declare an explicit display name, taking
// precedence over its type name.
type DisplayNamer interface {
	DisplayName() string
}

// Option configures optional factory behavior.
type Option[S any] func(*factoryOptions[S]) error

type factoryOptions[S any] struct {
	mapStateOnServer func(S) S
}

// WithMapStateOnServer installs the server-side state mapper applied to
// Rewind's return value. Peek and the client handler always receive the raw
// reduced state. Passing nil fails factory construction.
func WithMapStateOnServer[S any](fn func(S) S) Option[S] {
	return func(o *factoryOptions[S]) error {
		if fn == nil {
			return &errors.ConfigurationError{
				Arg:     "mapStateOnServer",
				Message: "Expected mapStateOnServer to either be undefined or a function.",
			}
		}
		o.mapStateOnServer = fn
		return nil
	}
}

// Factory carries the three behavior parameters of a side-effect channel.
// Each Wrap call yields an independent wrapper type with its own registry.
type Factory[P, S any] struct {
	reducePropsToState        func([]P) S
	handleStateChangeOnClient func(S)
	mapStateOnServer          func(S) S
}

// New validates the behavior parameters and returns a Factory.
//
// reducePropsToState maps the ordered props of all live occurrences to one
// aggregate state. handleStateChangeOnClient is invoked on the client path
// whenever the aggregate changes. Both are required.
func New[P, S any](
	reducePropsToState func(props []P) S,
	handleStateChangeOnClient func(state S),
	opts ...Option[S],
) (*Factory[P, S], error) {
	if reducePropsToState == nil {
		return nil, &errors.ConfigurationError{
			Arg:     "reducePropsToState",
			Message: "Expected reducePropsToState to be a function.",
		}
	}
	if handleStateChangeOnClient == nil {
		return nil, &errors.ConfigurationError{
			Arg:     "handleStateChangeOnClient",
			Message: "Expected handleStateChangeOnClient to be a function.",
		}
	}
	var o factoryOptions[S]
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return &Factory[P, S]{
		reducePropsToState:        reducePropsToState,
		handleStateChangeOnClient: handleStateChangeOnClient,
		mapStateOnServer:          o.mapStateOnServer,
	}, nil
}

// Wrap validates component and produces the wrapper type for it.
func (f *Factory[P, S]) Wrap(component Component[P]) (*SideEffect[P, S], error) {
	if !isRenderable(component) {
		return nil, &errors.ConfigurationError{
			Arg:     "WrappedComponent",
			Message: "Expected WrappedComponent to be a renderable component.",
		}
	}
	effect := &SideEffect[P, S]{
		CanUseDOM:                 true,
		reducePropsToState:        f.reducePropsToState,
		handleStateChangeOnClient: f.handleStateChangeOnClient,
		mapStateOnServer:          f.mapStateOnServer,
		component:                 component,
		name:                      "SideEffect(" + displayName(component) + ")",
	}
	effect.registry = &registry[P, S]{reduce: f.reducePropsToState}
	return effect, nil
}

// isRenderable is the component-validity predicate: a non-nil descriptor
// whose Render is callable. A nil interface, nil adapter func, or nil
// pointer descriptor all fail it.
func isRenderable[P any](component Component[P]) bool {
	if component == nil {
		return false
	}
	v := reflect.ValueOf(component)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan:
		return !v.IsNil()
	}
	return true
}

// displayName resolves the wrapped component's diagnostic name in three
// tiers: an explicit DisplayNamer, then the descriptor's declared type name,
// then the literal "Component". Plain functions have no declared name and
// fall through to the last tier.
func displayName[P any](component Component[P]) string {
	if namer, ok := component.(DisplayNamer); ok {
		if name := namer.DisplayName(); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(component)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() != reflect.Func {
		if name := t.Name(); name != "" {
			return name
		}
	}
	return "Component"
}

// SideEffect is the wrapper type produced by Factory.Wrap: one side-effect
// channel whose mounted occurrences contribute props to a shared aggregate.
// It replaces the registry and flags that would otherwise live in
// process-wide state; hold one per logical channel.
//
// All methods must be called from the host's single UI thread, like every
// other lifecycle interaction.
type SideEffect[P, S any] struct {
	// CanUseDOM routes update-time notifications: true (the default) means
	// an interactive display is present and prop updates notify the client
	// handler; false means a server pass where updates stay silent and
	// reads happen through Rewind or Peek. Mount and unmount always notify
	// regardless of this flag. Primarily toggled by tests and server hosts.
	CanUseDOM bool

	reducePropsToState        func([]P) S
	handleStateChangeOnClient func(S)
	mapStateOnServer          func(S) S
	component                 Component[P]
	registry                  *registry[P, S]
	name                      string
}

// DisplayName reports "SideEffect(<wrapped name>)" for diagnostics.
func (e *SideEffect[P, S]) DisplayName() string {
	return e.name
}

// Widget returns one wrapper occurrence configured with props. Mounting it
// registers the occurrence, updating it refreshes the registered props, and
// unmounting it deregisters. The occurrence renders the wrapped component
// with exactly these props, nothing added or removed.
func (e *SideEffect[P, S]) Widget(props P) core.Widget {
	return wrapperWidget[P, S]{effect: e, props: props}
}

// Peek returns the current aggregate state without touching the registry.
// Valid on client and server, any number of times.
func (e *SideEffect[P, S]) Peek() S {
	return e.registry.collect()
}

// Rewind returns the aggregate state and clears the registry, so the next
// call reflects only occurrences mounted afterwards. When a server-state
// mapper is configured it is applied to the returned value only.
//
// Rewind is the one-shot drain of a server render pass. On the client
// (CanUseDOM true) it fails with a UsageError and the registry is left
// untouched.
func (e *SideEffect[P, S]) Rewind() (S, error) {
	if e.CanUseDOM {
		var zero S
		return zero, &errors.UsageError{
			Op:      "sideeffect.Rewind",
			Message: "You may only call Rewind() on the server. Call Peek() to read the current state.",
		}
	}
	state := e.registry.collect()
	if e.mapStateOnServer != nil {
		state = e.mapStateOnServer(state)
	}
	e.registry.clear()
	return state, nil
}

// MountedCount reports the number of live occurrences, for diagnostics.
func (e *SideEffect[P, S]) MountedCount() int {
	return e.registry.size()
}

// emitChange recomputes the aggregate and notifies the client handler.
// The handler receives the raw reduced state; the server mapper never
// applies on this path.
func (e *SideEffect[P, S]) emitChange() {
	e.handleStateChangeOnClient(e.registry.collect())
}

// wrapperWidget is one occurrence of the wrapper type in a host tree.
type wrapperWidget[P, S any] struct {
	effect *SideEffect[P, S]
	props  P
}

func (w wrapperWidget[P, S]) CreateElement() core.Element {
	return core.NewStatefulElement(w, nil)
}

func (w wrapperWidget[P, S]) Key() any {
	return nil
}

func (w wrapperWidget[P, S]) CreateState() core.State {
	return &wrapperState[P, S]{}
}

type wrapperState[P, S any] struct {
	core.StateBase
	handle *instance[P]
}

func (s *wrapperState[P, S]) widget() wrapperWidget[P, S] {
	return s.Element().Widget().(wrapperWidget[P, S])
}

// InitState registers the occurrence and notifies the client handler
// unconditionally. The first emission is never deduplicated, and the flag
// routing update-time behavior does not apply to mounts.
func (s *wrapperState[P, S]) InitState() {
	w := s.widget()
	s.handle = &instance[P]{props: w.props}
	w.effect.registry.add(s.handle)
	w.effect.emitChange()
}

// DidUpdateWidget refreshes the registered props snapshot. On the client
// path it notifies only when this occurrence's own props changed since its
// previous mount or update (compared with reflect.DeepEqual), so sibling
// re-renders with identical props never re-notify. On the server path the
// update stays silent; reads happen through Rewind or Peek.
func (s *wrapperState[P, S]) DidUpdateWidget(oldWidget core.StatefulWidget) {
	w := s.widget()
	old := oldWidget.(wrapperWidget[P, S])
	s.handle.props = w.props
	if w.effect.CanUseDOM && !reflect.DeepEqual(old.props, w.props) {
		w.effect.emitChange()
	}
}

// Dispose deregisters the occurrence and notifies unconditionally; removal
// always counts as a change, mirroring InitState.
func (s *wrapperState[P, S]) Dispose() {
	w := s.widget()
	w.effect.registry.remove(s.handle)
	w.effect.emitChange()
	s.RunDisposers()
}

// Build renders the wrapped component with the wrapper's own props.
func (s *wrapperState[P, S]) Build(ctx core.BuildContext) core.Widget {
	w := s.widget()
	return w.effect.component.Render(ctx, w.props)
}
