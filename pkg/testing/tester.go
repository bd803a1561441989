package testing

import (
	"reflect"
	"testing"

	"github.com/go-drift/sideeffect/pkg/core"
)

// ComponentTester provides isolated component testing. It drives the same
// build phase as a real host but under direct test control: widgets mount,
// update, and unmount exactly when pumped.
type ComponentTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	dispatches []func()
}

// NewComponentTester creates a tester.
// Call Cleanup() when done, or use NewComponentTesterWithT() instead.
func NewComponentTester() *ComponentTester {
	return &ComponentTester{
		buildOwner: core.NewBuildOwner(),
	}
}

// NewComponentTesterWithT creates a tester that auto-cleans up via
// t.Cleanup(). This is the recommended constructor for tests.
func NewComponentTesterWithT(t *testing.T) *ComponentTester {
	tester := NewComponentTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the current tree. Must be called if not using
// NewComponentTesterWithT.
func (t *ComponentTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// BuildOwner exposes the owner driving rebuilds, for hosts that schedule
// their own work.
func (t *ComponentTester) BuildOwner() *core.BuildOwner {
	return t.buildOwner
}

// RootElement returns the currently mounted root element, or nil.
func (t *ComponentTester) RootElement() core.Element {
	return t.root
}

// PumpWidget mounts widget and runs one build pass. When the new widget is
// compatible with the mounted root (same type, equal key) the root element
// is updated in place, so states survive and receive DidUpdateWidget;
// otherwise the old tree unmounts first. Pumping nil unmounts everything.
func (t *ComponentTester) PumpWidget(widget core.Widget) {
	if widget == nil {
		t.Cleanup()
		return
	}

	if t.root != nil && canUpdate(t.root.Widget(), widget) {
		t.root.Update(widget)
		t.root.RebuildIfNeeded()
		t.Pump()
		return
	}

	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	t.root = core.MountRoot(widget, t.buildOwner)
	t.Pump()
}

// Pump runs a single frame cycle: queued dispatches, then dirty rebuilds.
func (t *ComponentTester) Pump() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
}

// Dispatch queues fn to run at the start of the next Pump.
func (t *ComponentTester) Dispatch(fn func()) {
	if fn != nil {
		t.dispatches = append(t.dispatches, fn)
	}
}

func canUpdate(existing core.Widget, next core.Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}
