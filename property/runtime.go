// Package property is a lazy, dependency tracking property engine.
//
// Every Property, binding and Tracker lives in the arenas of a Runtime and is
// addressed by a generational id. A Runtime must only be used from one
// goroutine at a time.
package property

import (
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

const DefaultChangeHandlerLimit = 10

type RuntimeOption func(rt *Runtime)

// WithDebugNames keeps the names given with SetName, they show up in panics
// and in Graph.
func WithDebugNames() RuntimeOption {
	return func(rt *Runtime) {
		rt.debugNames = true
	}
}

// WithClock sets the clock read by UpdateAnimations.
func WithClock(clock func() time.Duration) RuntimeOption {
	return func(rt *Runtime) {
		rt.clock = clock
	}
}

// WithChangeHandlerLimit sets how many rounds RunChangeHandlers runs before
// giving up with ErrChangeHandlerLoop.
func WithChangeHandlerLimit(rounds int) RuntimeOption {
	return func(rt *Runtime) {
		rt.changeHandlerLimit = rounds
	}
}

type Runtime struct {
	cells    arena[cellSlot]
	bindings arena[bindingHolder]
	nodes    arena[depNode]
	lists    arena[depList]

	// binding or tracker currently evaluating, reads register into it
	current    ref
	debugNames bool

	clock              func() time.Duration
	tick               *Property[time.Duration]
	activeAnimations   bool
	pending            []pendingChange
	pendingSet         mapset.Set[ref]
	changeHandlerLimit int

	evaluations uint64
	dirtyMarks  uint64
}

func NewRuntime(opts ...RuntimeOption) *Runtime {
	start := time.Now()
	rt := &Runtime{
		clock:              func() time.Duration { return time.Since(start) },
		pendingSet:         mapset.NewThreadUnsafeSet[ref](),
		changeHandlerLimit: DefaultChangeHandlerLimit,
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.tick = New(rt, time.Duration(0))
	rt.tick.SetName("animation tick")
	return rt
}

type Stats struct {
	Cells       int
	Bindings    int
	Nodes       int
	Lists       int
	Evaluations uint64
	DirtyMarks  uint64
}

func (rt *Runtime) Stats() Stats {
	return Stats{
		Cells:       rt.cells.live,
		Bindings:    rt.bindings.live,
		Nodes:       rt.nodes.live,
		Lists:       rt.lists.live,
		Evaluations: rt.evaluations,
		DirtyMarks:  rt.dirtyMarks,
	}
}

// IsTracking reports whether a binding or tracker is currently evaluating.
func (rt *Runtime) IsTracking() bool {
	return rt.bindings.get(rt.current) != nil
}

// Untracked runs fn without registering any dependency to the binding
// currently evaluating.
func (rt *Runtime) Untracked(fn func()) {
	prev := rt.current
	rt.current = ref{}
	defer func() { rt.current = prev }()
	fn()
}

func (rt *Runtime) cellLabel(id ref) string {
	if c := rt.cells.get(id); c != nil && c.name != "" {
		return c.name
	}
	return fmt.Sprintf("cell#%d", id.idx)
}

func (rt *Runtime) bindingLabel(id ref) string {
	b := rt.bindings.get(id)
	if b == nil {
		return fmt.Sprintf("binding#%d", id.idx)
	}
	if b.ownerKind == ownerCell {
		return rt.cellLabel(b.owner)
	}
	if b.name != "" {
		return b.name
	}
	return fmt.Sprintf("tracker#%d", id.idx)
}

func (rt *Runtime) mustCell(id ref) *cellSlot {
	c := rt.cells.get(id)
	if c == nil {
		panic(fmt.Errorf("%w: cell#%d", ErrUseAfterDispose, id.idx))
	}
	return c
}

func (rt *Runtime) mustBinding(id ref) *bindingHolder {
	b := rt.bindings.get(id)
	if b == nil {
		panic(fmt.Errorf("%w: binding#%d", ErrUseAfterDispose, id.idx))
	}
	return b
}

func (rt *Runtime) checkUnlocked(id ref, c *cellSlot) {
	if c.locked {
		panic(fmt.Errorf("%w with property %s", ErrRecursionDetected, rt.cellLabel(id)))
	}
}

/* dependency lists */

func (rt *Runtime) newList(owner ref, kind ownerKind) ref {
	id, l := rt.lists.alloc()
	l.owner = owner
	l.ownerKind = kind
	return id
}

func (rt *Runtime) pushFront(list, node ref) {
	l := rt.lists.get(list)
	n := rt.nodes.get(node)
	if l == nil || n == nil {
		return
	}
	rt.unlink(node)
	n.list = list
	n.prev = ref{}
	n.next = l.first
	if old := rt.nodes.get(l.first); old != nil {
		old.prev = node
	}
	l.first = node
}

// unlink detaches the node from its list and neighbours, the node itself
// stays allocated.
func (rt *Runtime) unlink(node ref) {
	n := rt.nodes.get(node)
	if n == nil || n.list.isZero() {
		return
	}
	if prev := rt.nodes.get(n.prev); prev != nil {
		prev.next = n.next
	} else if l := rt.lists.get(n.list); l != nil && l.first == node {
		l.first = n.next
	}
	if next := rt.nodes.get(n.next); next != nil {
		next.prev = n.prev
	}
	n.list = ref{}
	n.prev = ref{}
	n.next = ref{}
}

// dropList detaches every node of the list and frees it. The nodes belong to
// their bindings and are released when those clear their dependencies.
func (rt *Runtime) dropList(list ref) {
	l := rt.lists.get(list)
	if l == nil {
		return
	}
	for id := l.first; !id.isZero(); {
		n := rt.nodes.get(id)
		if n == nil {
			break
		}
		next := n.next
		n.list = ref{}
		n.prev = ref{}
		n.next = ref{}
		id = next
	}
	rt.lists.release(list)
}

func (rt *Runtime) markListDirty(list ref) {
	l := rt.lists.get(list)
	if l == nil {
		return
	}
	for id := l.first; !id.isZero(); {
		n := rt.nodes.get(id)
		if n == nil {
			return
		}
		next, consumer := n.next, n.binding
		rt.markBindingDirty(consumer)
		id = next
	}
}

/* bindings */

func (rt *Runtime) newBinding(callable bindingCallable, name string) ref {
	id, b := rt.bindings.alloc()
	b.callable = callable
	b.dirty = true
	b.name = name
	return id
}

// clearDependencies unsubscribes the binding from everything it read.
func (rt *Runtime) clearDependencies(id ref) {
	b := rt.bindings.get(id)
	if b == nil {
		return
	}
	nodes := b.nodes
	b.nodes = b.nodes[:0]
	for _, n := range nodes {
		rt.unlink(n)
		rt.nodes.release(n)
	}
}

func (rt *Runtime) releaseBinding(id ref) {
	b := rt.bindings.get(id)
	if b == nil {
		return
	}
	rt.clearDependencies(id)
	callable := b.callable
	rt.bindings.release(id)
	if callable != nil {
		callable.dispose()
	}
}

func (rt *Runtime) registerDependency(consumer, list ref) {
	b := rt.bindings.get(consumer)
	l := rt.lists.get(list)
	if b == nil || l == nil {
		return
	}
	// consecutive reads of the same cell need a single edge
	if first := rt.nodes.get(l.first); first != nil && first.binding == consumer {
		return
	}
	id, n := rt.nodes.alloc()
	n.binding = consumer
	rt.pushFront(list, id)
	b.nodes = append(b.nodes, id)
}

func (rt *Runtime) evaluate(id ref, dst any) bindingResult {
	b := rt.mustBinding(id)
	callable := b.callable
	prev := rt.current
	rt.current = id
	defer func() { rt.current = prev }()
	rt.evaluations++
	return callable.evaluate(dst)
}

func (rt *Runtime) markBindingDirty(id ref) {
	b := rt.bindings.get(id)
	if b == nil {
		return
	}
	wasDirty := b.dirty
	b.dirty = true
	if !wasDirty {
		rt.dirtyMarks++
	}
	b.callable.markDirty(wasDirty)
	if wasDirty {
		return
	}
	if b = rt.bindings.get(id); b != nil {
		rt.markListDirty(b.dependents)
	}
}

/* cells */

func (rt *Runtime) newCell(name string) ref {
	id, c := rt.cells.alloc()
	c.name = name
	return id
}

func (rt *Runtime) bindingOf(id ref) (ref, *bindingHolder) {
	c := rt.cells.get(id)
	if c == nil || c.kind != handleBinding {
		return ref{}, nil
	}
	return c.handle, rt.bindings.get(c.handle)
}

// dependents returns the list of bindings reading the cell, allocating it on
// demand. Constant cells have none.
func (rt *Runtime) dependents(id ref, alloc bool) ref {
	c := rt.mustCell(id)
	if c.constant {
		return ref{}
	}
	if c.kind == handleBinding {
		b := rt.mustBinding(c.handle)
		if b.dependents.isZero() && alloc {
			b.dependents = rt.newList(id, ownerCell)
		}
		return b.dependents
	}
	if c.handle.isZero() && alloc {
		c.handle = rt.newList(id, ownerCell)
	}
	return c.handle
}

func (rt *Runtime) registerCell(id ref) {
	if rt.bindings.get(rt.current) == nil {
		return
	}
	c := rt.mustCell(id)
	if c.constant {
		return
	}
	rt.registerDependency(rt.current, rt.dependents(id, true))
}

// update evaluates the binding of the cell into dst when it is dirty.
func (rt *Runtime) update(id ref, dst any) {
	c := rt.mustCell(id)
	rt.checkUnlocked(id, c)
	if c.kind != handleBinding {
		return
	}
	bid := c.handle
	if b := rt.mustBinding(bid); !b.dirty {
		return
	}
	c.locked = true
	result := func() bindingResult {
		defer func() {
			if c := rt.cells.get(id); c != nil {
				c.locked = false
			}
		}()
		rt.clearDependencies(bid)
		result := rt.evaluate(bid, dst)
		if b := rt.bindings.get(bid); b != nil {
			b.dirty = false
		}
		return result
	}()
	if result == removeBinding {
		rt.removeBinding(id)
	}
}

func (rt *Runtime) access(id ref) {
	rt.checkUnlocked(id, rt.mustCell(id))
}

func (rt *Runtime) interceptSet(id ref, v any) bool {
	c := rt.mustCell(id)
	rt.checkUnlocked(id, c)
	_, b := rt.bindingOf(id)
	if b == nil {
		return false
	}
	c.locked = true
	defer func() {
		if c := rt.cells.get(id); c != nil {
			c.locked = false
		}
	}()
	return b.callable.interceptSet(v)
}

func (rt *Runtime) removeBinding(id ref) {
	c := rt.mustCell(id)
	rt.checkUnlocked(id, c)
	if c.kind != handleBinding {
		return
	}
	bid := c.handle
	b := rt.mustBinding(bid)
	c.kind = handleDependents
	c.handle = b.dependents
	if !c.handle.isZero() {
		rt.lists.get(c.handle).owner = id
	}
	b.dependents = ref{}
	c.locked = true
	defer func() {
		if c := rt.cells.get(id); c != nil {
			c.locked = false
		}
	}()
	rt.releaseBinding(bid)
}

func (rt *Runtime) setBinding(id ref, callable bindingCallable, name string) {
	c := rt.mustCell(id)
	rt.checkUnlocked(id, c)
	if c.constant {
		panic(fmt.Errorf("%w: %s", ErrConstantChanged, rt.cellLabel(id)))
	}
	if _, b := rt.bindingOf(id); b != nil {
		c.locked = true
		intercepted := func() bool {
			defer func() {
				if c := rt.cells.get(id); c != nil {
					c.locked = false
				}
			}()
			return b.callable.interceptSetBinding(callable, name)
		}()
		if intercepted {
			return
		}
	}
	rt.removeBinding(id)
	rt.installBinding(id, rt.newBinding(callable, name))
}

func (rt *Runtime) installBinding(id, bid ref) {
	c := rt.mustCell(id)
	b := rt.mustBinding(bid)
	b.owner = id
	b.ownerKind = ownerCell
	if !c.constant {
		b.dependents = c.handle
	}
	c.kind = handleBinding
	c.handle = bid
	if !c.constant {
		rt.markCellDirty(id)
	}
}

// takeBinding detaches the binding of the cell and returns its callable
// without disposing it. The dependents stay with the cell.
func (rt *Runtime) takeBinding(id ref) bindingCallable {
	c := rt.mustCell(id)
	rt.checkUnlocked(id, c)
	if c.kind != handleBinding {
		return nil
	}
	bid := c.handle
	b := rt.mustBinding(bid)
	callable := b.callable
	c.kind = handleDependents
	c.handle = b.dependents
	if l := rt.lists.get(c.handle); l != nil {
		l.owner = id
	}
	rt.clearDependencies(bid)
	rt.bindings.release(bid)
	return callable
}

// moveBinding hands the binding of from, together with its dependents, over
// to the plain cell to. from is left without binding nor dependents.
func (rt *Runtime) moveBinding(from, to ref) {
	src := rt.mustCell(from)
	rt.checkUnlocked(from, src)
	if src.kind != handleBinding {
		return
	}
	bid := src.handle
	src.kind = handleDependents
	src.handle = ref{}

	dst := rt.mustCell(to)
	rt.removeBinding(to)
	rt.dropList(dst.handle)
	b := rt.mustBinding(bid)
	b.owner = to
	dst.kind = handleBinding
	dst.handle = bid
	if l := rt.lists.get(b.dependents); l != nil {
		l.owner = to
	}
}

func (rt *Runtime) markCellDirty(id ref) {
	c := rt.mustCell(id)
	if c.constant {
		panic(fmt.Errorf("%w: %s", ErrConstantChanged, rt.cellLabel(id)))
	}
	rt.checkUnlocked(id, c)
	rt.markListDirty(rt.dependents(id, false))
}

func (rt *Runtime) setConstant(id ref) {
	c := rt.mustCell(id)
	if c.constant {
		return
	}
	if c.kind == handleBinding {
		b := rt.mustBinding(c.handle)
		rt.dropList(b.dependents)
		b.dependents = ref{}
	} else {
		rt.dropList(c.handle)
		c.handle = ref{}
	}
	c.constant = true
}

func (rt *Runtime) disposeCell(id ref) {
	c := rt.cells.get(id)
	if c == nil {
		return
	}
	rt.checkUnlocked(id, c)
	rt.removeBinding(id)
	if c = rt.cells.get(id); c == nil {
		return
	}
	rt.dropList(c.handle)
	rt.cells.release(id)
}
