// Package sideeffect centralizes "many writers, one reader" coordination for
// widget trees: independently mounted occurrences of a wrapper type each
// contribute props to one shared collector, which reduces them into a single
// ordered aggregate and notifies a handler whenever the aggregate changes.
//
// The canonical use is a document-level concern fed from scattered places in
// a tree, such as a page title or a set of metadata tags; see pkg/head.
//
// # Building a channel
//
// A Factory carries the behavior of one kind of channel:
//
//	factory, err := sideeffect.New(
//	    func(props []titleProps) string {
//	        for i := len(props) - 1; i >= 0; i-- {
//	            if props[i].Title != "" {
//	                return props[i].Title
//	            }
//	        }
//	        return ""
//	    },
//	    func(title string) { window.SetTitle(title) },
//	)
//
// Wrap produces the wrapper type for a component:
//
//	effect, err := factory.Wrap(sideeffect.RenderFunc[titleProps](render))
//
// Each mounted effect.Widget(props) occurrence registers itself on mount,
// refreshes its registered props on update, and deregisters on unmount. The
// reduction always runs over all live occurrences in mount order; it is
// never merged incrementally.
//
// # Client and server paths
//
// With CanUseDOM true (the default) the handler fires on mount, on unmount,
// and on any update that changed that occurrence's own props. With CanUseDOM
// false, updates stay silent and a server pass reads the aggregate once via
// Rewind, which drains the registry; Peek reads without draining in either
// mode.
//
// The package performs no locking of its own: the host runtime is expected
// to serialize lifecycle hooks, as single-threaded UI runtimes do. Reducer,
// handler, and mapper panics propagate to the host unwrapped.
package sideeffect
