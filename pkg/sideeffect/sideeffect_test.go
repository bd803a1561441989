package sideeffect_test

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/go-drift/sideeffect/pkg/core"
	"github.com/go-drift/sideeffect/pkg/errors"
	"github.com/go-drift/sideeffect/pkg/sideeffect"
	setest "github.com/go-drift/sideeffect/pkg/testing"
)

// Props is the classic attribute-map shape used throughout these tests.
type Props = map[string]any

// identityReduce mirrors the conventional reducer: the ordered sequence of
// live props, nil for empty input.
func identityReduce(props []Props) []Props {
	if len(props) == 0 {
		return nil
	}
	return props
}

func discard([]Props) {}

// Dummy is a named component descriptor.
type Dummy struct{}

func (Dummy) Render(ctx core.BuildContext, props Props) core.Widget {
	return nil
}

// named implements DisplayNamer on top of a render func.
type named struct {
	name   string
	render sideeffect.RenderFunc[Props]
}

func (n named) Render(ctx core.BuildContext, props Props) core.Widget {
	return n.render(ctx, props)
}

func (n named) DisplayName() string {
	return n.name
}

func newEffect(t *testing.T, opts ...sideeffect.Option[[]Props]) (*sideeffect.SideEffect[Props, []Props], *[][]Props) {
	t.Helper()
	var emitted [][]Props
	factory, err := sideeffect.New(identityReduce, func(state []Props) {
		emitted = append(emitted, state)
	}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	effect, err := factory.Wrap(Dummy{})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	return effect, &emitted
}

func expectConfigurationError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected ConfigurationError %q, got nil", message)
	}
	var cfgErr *errors.ConfigurationError
	if !stderrors.As(err, &cfgErr) {
		t.Fatalf("expected *errors.ConfigurationError, got %T: %v", err, err)
	}
	if err.Error() != message {
		t.Fatalf("error message = %q, want %q", err.Error(), message)
	}
}

func TestNew_NilReducerFails(t *testing.T) {
	_, err := sideeffect.New[Props, []Props](nil, discard)
	expectConfigurationError(t, err, "Expected reducePropsToState to be a function.")
}

func TestNew_NilHandlerFails(t *testing.T) {
	_, err := sideeffect.New(identityReduce, nil)
	expectConfigurationError(t, err, "Expected handleStateChangeOnClient to be a function.")
}

func TestNew_NilServerMapperFails(t *testing.T) {
	_, err := sideeffect.New(identityReduce, discard,
		sideeffect.WithMapStateOnServer[[]Props](nil))
	expectConfigurationError(t, err, "Expected mapStateOnServer to either be undefined or a function.")
}

func TestWrap_NilComponentFails(t *testing.T) {
	factory, err := sideeffect.New(identityReduce, discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = factory.Wrap(nil)
	expectConfigurationError(t, err, "Expected WrappedComponent to be a renderable component.")

	var nilFn sideeffect.RenderFunc[Props]
	_, err = factory.Wrap(nilFn)
	expectConfigurationError(t, err, "Expected WrappedComponent to be a renderable component.")
}

func TestDisplayName_NamedType(t *testing.T) {
	effect, _ := newEffect(t)
	if got := effect.DisplayName(); got != "SideEffect(Dummy)" {
		t.Errorf("DisplayName() = %q, want SideEffect(Dummy)", got)
	}
}

func TestDisplayName_AnonymousFunctionFallsBack(t *testing.T) {
	factory, err := sideeffect.New(identityReduce, discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	effect, err := factory.Wrap(sideeffect.RenderFunc[Props](
		func(ctx core.BuildContext, props Props) core.Widget { return nil },
	))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if got := effect.DisplayName(); got != "SideEffect(Component)" {
		t.Errorf("DisplayName() = %q, want SideEffect(Component)", got)
	}
}

func TestDisplayName_ExplicitNameWins(t *testing.T) {
	factory, err := sideeffect.New(identityReduce, discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	effect, err := factory.Wrap(named{
		name:   "PageTitle",
		render: func(ctx core.BuildContext, props Props) core.Widget { return nil },
	})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if got := effect.DisplayName(); got != "SideEffect(PageTitle)" {
		t.Errorf("DisplayName() = %q, want SideEffect(PageTitle)", got)
	}
}

func TestPeek_CollectsPropsInMountOrder(t *testing.T) {
	effect, _ := newEffect(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		effect.Widget(Props{"foo": "bar"}),
		effect.Widget(Props{"something": "different"}),
	}})

	want := []Props{{"foo": "bar"}, {"something": "different"}}
	if got := effect.Peek(); !reflect.DeepEqual(got, want) {
		t.Errorf("Peek() = %v, want %v", got, want)
	}
}

func TestPeek_NeverClearsState(t *testing.T) {
	effect, _ := newEffect(t)
	tester := setest.NewComponentTesterWithT(t)
	tester.PumpWidget(effect.Widget(Props{"foo": "bar"}))

	first := effect.Peek()
	second := effect.Peek()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Peek() not idempotent: %v then %v", first, second)
	}
	if effect.MountedCount() != 1 {
		t.Errorf("MountedCount() = %d, want 1", effect.MountedCount())
	}
}

func TestRewind_OnClientFailsAndLeavesState(t *testing.T) {
	effect, _ := newEffect(t)
	tester := setest.NewComponentTesterWithT(t)
	tester.PumpWidget(effect.Widget(Props{"foo": "bar"}))

	_, err := effect.Rewind()
	if err == nil {
		t.Fatal("expected a UsageError on the client")
	}
	var usageErr *errors.UsageError
	if !stderrors.As(err, &usageErr) {
		t.Fatalf("expected *errors.UsageError, got %T: %v", err, err)
	}
	want := "You may only call Rewind() on the server. Call Peek() to read the current state."
	if err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
	if effect.MountedCount() != 1 {
		t.Error("a failed Rewind must not clear the registry")
	}
}

func TestRewind_OnServerDrainsOnce(t *testing.T) {
	effect, _ := newEffect(t)
	effect.CanUseDOM = false
	tester := setest.NewComponentTesterWithT(t)
	tester.PumpWidget(effect.Widget(Props{"foo": "bar"}))

	state, err := effect.Rewind()
	if err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	if want := []Props{{"foo": "bar"}}; !reflect.DeepEqual(state, want) {
		t.Errorf("Rewind() = %v, want %v", state, want)
	}

	// Drained: the reducer now sees an empty sequence and returns nil.
	again, err := effect.Rewind()
	if err != nil {
		t.Fatalf("second Rewind: %v", err)
	}
	if again != nil {
		t.Errorf("second Rewind() = %v, want nil", again)
	}
}

func TestRewind_AppliesServerMapperOnly(t *testing.T) {
	reversed := func(state []Props) []Props {
		out := make([]Props, 0, len(state))
		for i := len(state) - 1; i >= 0; i-- {
			out = append(out, state[i])
		}
		return out
	}
	effect, _ := newEffect(t, sideeffect.WithMapStateOnServer(reversed))
	effect.CanUseDOM = false
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		effect.Widget(Props{"a": 1}),
		effect.Widget(Props{"b": 2}),
	}})

	raw := []Props{{"a": 1}, {"b": 2}}
	if got := effect.Peek(); !reflect.DeepEqual(got, raw) {
		t.Errorf("Peek() = %v, want the unmapped aggregate %v", got, raw)
	}

	state, err := effect.Rewind()
	if err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	mapped := []Props{{"b": 2}, {"a": 1}}
	if !reflect.DeepEqual(state, mapped) {
		t.Errorf("Rewind() = %v, want the mapped aggregate %v", state, mapped)
	}
}

func TestClientHandler_FiresOnMountAndUnmount(t *testing.T) {
	effect, emitted := newEffect(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(effect.Widget(Props{"foo": "bar"}))
	if len(*emitted) != 1 {
		t.Fatalf("emissions after mount = %d, want 1", len(*emitted))
	}
	if want := []Props{{"foo": "bar"}}; !reflect.DeepEqual((*emitted)[0], want) {
		t.Errorf("first emission = %v, want %v", (*emitted)[0], want)
	}

	tester.PumpWidget(nil)
	if len(*emitted) != 2 {
		t.Fatalf("emissions after unmount = %d, want 2", len(*emitted))
	}
	if (*emitted)[1] != nil {
		t.Errorf("unmount emission = %v, want nil (empty-input reduction)", (*emitted)[1])
	}
}

func TestClientHandler_DedupesUnchangedProps(t *testing.T) {
	effect, emitted := newEffect(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(effect.Widget(Props{"foo": "bar"}))
	if len(*emitted) != 1 {
		t.Fatalf("emissions after mount = %d, want 1", len(*emitted))
	}

	// Same props again: the occurrence updates but must not re-notify.
	tester.PumpWidget(effect.Widget(Props{"foo": "bar"}))
	if len(*emitted) != 1 {
		t.Errorf("emissions after unchanged update = %d, want 1", len(*emitted))
	}

	// Changed props: exactly one more notification.
	tester.PumpWidget(effect.Widget(Props{"foo": "baz"}))
	if len(*emitted) != 2 {
		t.Errorf("emissions after changed update = %d, want 2", len(*emitted))
	}
	if want := []Props{{"foo": "baz"}}; !reflect.DeepEqual((*emitted)[1], want) {
		t.Errorf("second emission = %v, want %v", (*emitted)[1], want)
	}
}

func TestClientHandler_SiblingUpdateDoesNotRenotifyUnchanged(t *testing.T) {
	effect, emitted := newEffect(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		effect.Widget(Props{"stable": true}),
		effect.Widget(Props{"version": 1}),
	}})
	mountEmissions := len(*emitted) // one per mounted occurrence

	// Re-render both siblings; only the second's props changed.
	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		effect.Widget(Props{"stable": true}),
		effect.Widget(Props{"version": 2}),
	}})

	if got := len(*emitted) - mountEmissions; got != 1 {
		t.Errorf("emissions for one changed sibling = %d, want 1", got)
	}
	want := []Props{{"stable": true}, {"version": 2}}
	if !reflect.DeepEqual((*emitted)[len(*emitted)-1], want) {
		t.Errorf("last emission = %v, want %v", (*emitted)[len(*emitted)-1], want)
	}
}

func TestServerPath_UpdatesStaySilent(t *testing.T) {
	effect, emitted := newEffect(t)
	effect.CanUseDOM = false
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(effect.Widget(Props{"foo": "bar"}))
	mountEmissions := len(*emitted) // mounts always notify, even on the server

	tester.PumpWidget(effect.Widget(Props{"foo": "changed"}))
	if len(*emitted) != mountEmissions {
		t.Errorf("server-path update notified the client handler")
	}

	// The silent update is still visible to Rewind.
	state, err := effect.Rewind()
	if err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	if want := []Props{{"foo": "changed"}}; !reflect.DeepEqual(state, want) {
		t.Errorf("Rewind() = %v, want %v", state, want)
	}
}

func TestWrapper_RendersWrappedWithExactProps(t *testing.T) {
	var rendered []Props
	factory, err := sideeffect.New(identityReduce, discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	effect, err := factory.Wrap(sideeffect.RenderFunc[Props](
		func(ctx core.BuildContext, props Props) core.Widget {
			rendered = append(rendered, props)
			return nil
		},
	))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}

	tester := setest.NewComponentTesterWithT(t)
	props := Props{"foo": "bar", "n": 3}
	tester.PumpWidget(effect.Widget(props))

	if len(rendered) != 1 {
		t.Fatalf("wrapped component rendered %d times, want 1", len(rendered))
	}
	if !reflect.DeepEqual(rendered[0], props) {
		t.Errorf("wrapped component received %v, want %v", rendered[0], props)
	}
}

func TestWrap_IndependentChannels(t *testing.T) {
	factory, err := sideeffect.New(identityReduce, discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := factory.Wrap(Dummy{})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	second, err := factory.Wrap(Dummy{})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}

	tester := setest.NewComponentTesterWithT(t)
	tester.PumpWidget(first.Widget(Props{"only": "first"}))

	if second.MountedCount() != 0 {
		t.Error("wrapping twice must produce independent registries")
	}
	if first.MountedCount() != 1 {
		t.Errorf("first.MountedCount() = %d, want 1", first.MountedCount())
	}
}
