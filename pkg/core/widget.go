package core

// Widget is an immutable description of part of the component tree.
// Widgets are lightweight configuration values; creating them frequently
// is cheap.
type Widget interface {
	// CreateElement instantiates this widget at a location in the tree.
	CreateElement() Element
	// Key identifies this widget for reconciliation. Nil means unkeyed.
	Key() any
}

// StatelessWidget builds its subtree directly from its configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget creates a State object that persists across rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State holds mutable state for a StatefulWidget.
//
// Lifecycle order per mounted occurrence: InitState fires exactly once after
// the element is mounted, DidUpdateWidget fires on every configuration
// change while mounted, Dispose fires exactly once on unmount. The framework
// invokes these synchronously and never concurrently for one element.
type State interface {
	// InitState is called once when the element is mounted.
	InitState()
	// Build returns the widget subtree for the current state.
	Build(ctx BuildContext) Widget
	// DidUpdateWidget is called when the element receives a new widget
	// of the same type. oldWidget is the previous configuration.
	DidUpdateWidget(oldWidget StatefulWidget)
	// Dispose is called once when the element is unmounted.
	Dispose()
	// SetState runs fn and schedules a rebuild.
	SetState(fn func())
}

// BuildContext is the element-side view handed to Build methods.
type BuildContext interface {
	// Widget returns the widget currently configured at this location.
	Widget() Widget
	// FindAncestor walks up the tree and returns the first element
	// matching the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
}

// Element is the instantiation of a Widget at a particular location in the
// tree. Elements manage lifecycle and identity across rebuilds.
type Element interface {
	Widget() Widget
	Depth() int
	// Mount attaches the element under parent and runs the initial build.
	Mount(parent Element, slot any)
	// Update replaces the element's widget with a compatible new one.
	Update(newWidget Widget)
	// Unmount detaches the element and disposes its state.
	Unmount()
	MarkNeedsBuild()
	RebuildIfNeeded()
	VisitChildren(visitor func(Element) bool)
}

// MountRoot inflates widget and mounts it as a root element owned by owner.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}
