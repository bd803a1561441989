package core

// Fragment renders an ordered list of children without adding behavior of
// its own. Children reconcile by position.
type Fragment struct {
	Children []Widget
}

func (f Fragment) CreateElement() Element {
	return NewFragmentElement(f, nil)
}

func (f Fragment) Key() any {
	return nil
}

// FragmentElement hosts a Fragment and its child elements.
type FragmentElement struct {
	elementBase
	children []Element
}

func NewFragmentElement(widget Fragment, owner *BuildOwner) *FragmentElement {
	element := &FragmentElement{}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

func (e *FragmentElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *FragmentElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *FragmentElement) Unmount() {
	e.mounted = false
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
}

func (e *FragmentElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false

	widgets := e.widget.(Fragment).Children
	updated := make([]Element, 0, len(widgets))
	for index, childWidget := range widgets {
		var existing Element
		if index < len(e.children) {
			existing = e.children[index]
		}
		child := updateChild(existing, childWidget, e, e.buildOwner)
		if child != nil {
			updated = append(updated, child)
		}
	}
	for i := len(widgets); i < len(e.children); i++ {
		e.children[i].Unmount()
	}
	e.children = updated
}

func (e *FragmentElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

func (e *FragmentElement) FindAncestor(predicate func(Element) bool) Element {
	return e.findAncestor(predicate)
}
