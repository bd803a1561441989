package sideeffect

// instance is the handle for one mounted wrapper occurrence. Its props field
// always holds the occurrence's latest props; the hosting environment owns
// the values, the registry only reads them.
type instance[P any] struct {
	props P
}

// registry maintains the ordered set of live instance handles for one
// wrapper type. Registration order is aggregation order.
type registry[P, S any] struct {
	reduce    func([]P) S
	instances []*instance[P]
}

// add appends the handle. Each mount produces a fresh handle, so no
// duplicate check is needed.
func (r *registry[P, S]) add(handle *instance[P]) {
	r.instances = append(r.instances, handle)
}

// remove deletes the first identity match. Each unmount removes its own
// handle exactly once; removing a handle that was never added is a caller
// error.
func (r *registry[P, S]) remove(handle *instance[P]) {
	for i, candidate := range r.instances {
		if candidate == handle {
			r.instances = append(r.instances[:i], r.instances[i+1:]...)
			return
		}
	}
}

// collect folds the reducer over the live props in registration order,
// seeded with an empty sequence. It never mutates registry state.
func (r *registry[P, S]) collect() S {
	props := make([]P, 0, len(r.instances))
	for _, handle := range r.instances {
		props = append(props, handle.props)
	}
	return r.reduce(props)
}

// clear drops every live handle. Only Rewind does this.
func (r *registry[P, S]) clear() {
	r.instances = nil
}

func (r *registry[P, S]) size() int {
	return len(r.instances)
}
