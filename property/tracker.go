package property

// Tracker records the properties read by a function and reports when any of
// them changed afterwards, without being a property itself.
type Tracker struct {
	rt *Runtime
	id ref
}

type trackerCallable struct {
	baseCallable
	handler func()
}

func (c *trackerCallable) evaluate(any) bindingResult {
	return keepBinding
}

func (c *trackerCallable) markDirty(wasDirty bool) {
	if !wasDirty && c.handler != nil {
		c.handler()
	}
}

// NewTracker returns a tracker that starts dirty.
func NewTracker(rt *Runtime) *Tracker {
	return NewTrackerWithDirtyHandler(rt, nil)
}

// NewTrackerWithDirtyHandler returns a tracker calling handler synchronously
// each time it goes from clean to dirty.
func NewTrackerWithDirtyHandler(rt *Runtime, handler func()) *Tracker {
	id := rt.newBinding(&trackerCallable{handler: handler}, "")
	b := rt.bindings.get(id)
	b.owner = id
	b.ownerKind = ownerTracker
	return &Tracker{rt: rt, id: id}
}

func (tr *Tracker) SetName(name string) *Tracker {
	if tr.rt.debugNames {
		tr.rt.mustBinding(tr.id).name = name
	}
	return tr
}

func (tr *Tracker) IsDirty() bool {
	return tr.rt.mustBinding(tr.id).dirty
}

// SetDirty marks the tracker and whatever depends on it dirty. The dirty
// handler is not called.
func (tr *Tracker) SetDirty() {
	b := tr.rt.mustBinding(tr.id)
	b.dirty = true
	tr.rt.markListDirty(b.dependents)
}

// RegisterAsDependency makes the binding currently evaluating depend on the
// tracker.
func (tr *Tracker) RegisterAsDependency() {
	rt := tr.rt
	if rt.current == tr.id || rt.bindings.get(rt.current) == nil {
		return
	}
	b := rt.mustBinding(tr.id)
	if b.dependents.isZero() {
		b.dependents = rt.newList(tr.id, ownerTracker)
	}
	rt.registerDependency(rt.current, b.dependents)
}

// Dispose unlinks the tracker from everything it read and from whatever
// depends on it.
func (tr *Tracker) Dispose() {
	b := tr.rt.bindings.get(tr.id)
	if b == nil {
		return
	}
	tr.rt.dropList(b.dependents)
	tr.rt.releaseBinding(tr.id)
}

// Evaluate runs fn and records what it reads, the tracker itself is
// registered as a dependency of the enclosing binding.
func Evaluate[R any](tr *Tracker, fn func() R) R {
	tr.RegisterAsDependency()
	return EvaluateAsDependencyRoot(tr, fn)
}

// EvaluateAsDependencyRoot is Evaluate without registering the tracker to the
// enclosing binding.
func EvaluateAsDependencyRoot[R any](tr *Tracker, fn func() R) R {
	rt := tr.rt
	rt.clearDependencies(tr.id)
	prev := rt.current
	rt.current = tr.id
	r := func() R {
		defer func() { rt.current = prev }()
		rt.evaluations++
		return fn()
	}()
	if b := rt.bindings.get(tr.id); b != nil {
		b.dirty = false
	}
	return r
}

// EvaluateIfDirty runs fn only when the tracker is dirty, ok reports whether
// it ran. The tracker is registered to the enclosing binding either way.
func EvaluateIfDirty[R any](tr *Tracker, fn func() R) (r R, ok bool) {
	tr.RegisterAsDependency()
	if !tr.IsDirty() {
		return r, false
	}
	return EvaluateAsDependencyRoot(tr, fn), true
}
