// Package core provides the widget and element lifecycle host.
//
// This package defines the foundational types the side-effect machinery
// builds on: Widget, Element, State, and BuildContext. It follows a
// declarative model where widgets describe configuration and elements
// manage identity and lifecycle at a location in the tree.
//
// # Core Types
//
// Widget is an immutable description of part of the tree. Widgets are
// lightweight configuration values that can be created frequently.
//
// Element is the instantiation of a Widget at a particular location.
// Elements own the lifecycle: a State's InitState fires once after mount,
// DidUpdateWidget fires on every configuration change, and Dispose fires
// once on unmount, always in that relative order and always synchronously.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *myState) InitState() {
//	    // Initialize state here
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return nil
//	}
//
// # Scheduling
//
// BuildOwner collects elements marked dirty by SetState or Update and
// rebuilds them in depth order on FlushBuild. Hosts decide when to flush;
// nothing here spawns goroutines or blocks.
//
// This package deliberately stops at lifecycle and reconciliation. There is
// no layout, painting, or input handling: it exists to host components whose
// value lies in their side effects, not their pixels.
package core
