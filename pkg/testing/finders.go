package testing

import (
	"fmt"
	"reflect"

	"github.com/go-drift/sideeffect/pkg/core"
)

// Finder locates elements in the component tree.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first pre-order).
	Evaluate(root core.Element) []core.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no elements: %s", desc))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one element matched.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Find evaluates a finder against the mounted tree.
func (t *ComponentTester) Find(finder Finder) FinderResult {
	result := FinderResult{finder: finder}
	if t.root == nil {
		return result
	}
	result.elements = finder.Evaluate(t.root)
	return result
}

// ByWidgetType matches elements whose widget has the same dynamic type as
// the example value.
func ByWidgetType(example core.Widget) Finder {
	return widgetTypeFinder{want: reflect.TypeOf(example)}
}

type widgetTypeFinder struct {
	want reflect.Type
}

func (f widgetTypeFinder) Evaluate(root core.Element) []core.Element {
	var matches []core.Element
	walk(root, func(element core.Element) {
		if reflect.TypeOf(element.Widget()) == f.want {
			matches = append(matches, element)
		}
	})
	return matches
}

func (f widgetTypeFinder) Description() string {
	return fmt.Sprintf("widget of type %v", f.want)
}

// ByPredicate matches elements for which predicate returns true.
func ByPredicate(description string, predicate func(core.Element) bool) Finder {
	return predicateFinder{description: description, predicate: predicate}
}

type predicateFinder struct {
	description string
	predicate   func(core.Element) bool
}

func (f predicateFinder) Evaluate(root core.Element) []core.Element {
	var matches []core.Element
	walk(root, func(element core.Element) {
		if f.predicate(element) {
			matches = append(matches, element)
		}
	})
	return matches
}

func (f predicateFinder) Description() string {
	return f.description
}

// walk visits element and its descendants depth-first, pre-order.
func walk(element core.Element, visit func(core.Element)) {
	if element == nil {
		return
	}
	visit(element)
	element.VisitChildren(func(child core.Element) bool {
		walk(child, visit)
		return true
	})
}
