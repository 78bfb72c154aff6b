package property

import "fmt"

type changeHandler interface {
	runChange()
}

type pendingChange struct {
	id      ref
	handler changeHandler
}

func (rt *Runtime) queueChange(id ref, h changeHandler) {
	if rt.pendingSet.Contains(id) {
		return
	}
	rt.pendingSet.Add(id)
	rt.pending = append(rt.pending, pendingChange{id: id, handler: h})
}

// RunChangeHandlers re-evaluates every ChangeTracker that became dirty, in
// the order they did, and notifies those whose value changed. Trackers
// dirtied by a notification run in a following round of the same call.
func (rt *Runtime) RunChangeHandlers() error {
	for round := 0; len(rt.pending) > 0; round++ {
		if round >= rt.changeHandlerLimit {
			return fmt.Errorf("%w: %d trackers still pending after %d rounds", ErrChangeHandlerLoop, rt.pendingSet.Cardinality(), round)
		}
		batch := rt.pending
		rt.pending = nil
		for _, pc := range batch {
			if !rt.pendingSet.Contains(pc.id) {
				continue
			}
			rt.pendingSet.Remove(pc.id)
			pc.handler.runChange()
		}
	}
	return nil
}

// PendingChanges is the number of change trackers waiting for
// RunChangeHandlers.
func (rt *Runtime) PendingChanges() int {
	return rt.pendingSet.Cardinality()
}

// ChangeTracker evaluates a function every time one of its dependencies
// changed and calls notify when the result differs from the previous one.
// Notifications are deferred to Runtime.RunChangeHandlers.
type ChangeTracker[T any] struct {
	rt     *Runtime
	id     ref
	value  T
	equal  func(a, b T) bool
	eval   func() T
	notify func(T)
}

func NewChangeTracker[T comparable](rt *Runtime) *ChangeTracker[T] {
	return NewChangeTrackerFunc(rt, func(a, b T) bool { return a == b })
}

// NewChangeTrackerFunc compares values with equal, a nil equal notifies after
// every evaluation.
func NewChangeTrackerFunc[T any](rt *Runtime, equal func(a, b T) bool) *ChangeTracker[T] {
	return &ChangeTracker[T]{rt: rt, equal: equal}
}

type changeCallable[T any] struct {
	baseCallable
	ct *ChangeTracker[T]
}

func (c *changeCallable[T]) evaluate(dst any) bindingResult {
	*dst.(*T) = c.ct.eval()
	return keepBinding
}

func (c *changeCallable[T]) markDirty(wasDirty bool) {
	if !wasDirty {
		c.ct.rt.queueChange(c.ct.id, c.ct)
	}
}

// Init evaluates eval right away and keeps the result without notifying.
// Calling Init again replaces the previous functions.
func (ct *ChangeTracker[T]) Init(eval func() T, notify func(T)) {
	ct.Dispose()
	ct.eval = eval
	ct.notify = notify
	ct.id = ct.rt.newBinding(&changeCallable[T]{ct: ct}, "")
	b := ct.rt.bindings.get(ct.id)
	b.owner = ct.id
	b.ownerKind = ownerTracker
	ct.rt.evaluate(ct.id, &ct.value)
	if b := ct.rt.bindings.get(ct.id); b != nil {
		b.dirty = false
	}
}

// Value is the result of the last evaluation.
func (ct *ChangeTracker[T]) Value() T {
	return ct.value
}

func (ct *ChangeTracker[T]) runChange() {
	b := ct.rt.bindings.get(ct.id)
	if b == nil || !b.dirty {
		return
	}
	ct.rt.clearDependencies(ct.id)
	var next T
	ct.rt.evaluate(ct.id, &next)
	if b := ct.rt.bindings.get(ct.id); b != nil {
		b.dirty = false
	}
	if ct.equal != nil && ct.equal(ct.value, next) {
		return
	}
	ct.value = next
	if ct.notify != nil {
		ct.notify(next)
	}
}

func (ct *ChangeTracker[T]) Dispose() {
	if ct.id.isZero() {
		return
	}
	ct.rt.pendingSet.Remove(ct.id)
	ct.rt.releaseBinding(ct.id)
	ct.id = ref{}
}
