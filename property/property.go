package property

// Property is a reactive value. It holds either a plain value or a binding
// computing it, reads made while a binding or tracker evaluates register a
// dependency so that later writes mark the reader dirty.
type Property[T any] struct {
	rt    *Runtime
	id    ref
	value T
	equal func(a, b T) bool
}

func New[T comparable](rt *Runtime, value T) *Property[T] {
	return NewFunc(rt, value, func(a, b T) bool { return a == b })
}

// NewFunc creates a property compared with equal. A nil equal treats every
// Set as a change.
func NewFunc[T any](rt *Runtime, value T, equal func(a, b T) bool) *Property[T] {
	return &Property[T]{
		rt:    rt,
		id:    rt.newCell(""),
		value: value,
		equal: equal,
	}
}

func NewBinding[T comparable](rt *Runtime, fn func() T) *Property[T] {
	var zero T
	p := New(rt, zero)
	p.SetBinding(fn)
	return p
}

func (p *Property[T]) Runtime() *Runtime {
	return p.rt
}

func (p *Property[T]) SetName(name string) *Property[T] {
	if p.rt.debugNames {
		p.rt.mustCell(p.id).name = name
	}
	return p
}

func (p *Property[T]) Name() string {
	return p.rt.cellLabel(p.id)
}

// Get evaluates the binding if dirty and registers p as a dependency of the
// binding or tracker currently evaluating.
func (p *Property[T]) Get() T {
	p.rt.update(p.id, &p.value)
	p.rt.registerCell(p.id)
	return p.value
}

// GetUntracked is Get without the dependency registration.
func (p *Property[T]) GetUntracked() T {
	p.rt.update(p.id, &p.value)
	return p.value
}

// Peek returns the last computed value without evaluating nor registering.
func (p *Property[T]) Peek() T {
	p.rt.access(p.id)
	return p.value
}

func (p *Property[T]) changed(v T) bool {
	if p.equal == nil {
		return true
	}
	return !p.equal(p.value, v)
}

// Set drops the binding, unless it redirects the write, and stores v. The
// dependents are marked dirty only when v differs from the current value.
func (p *Property[T]) Set(v T) {
	if !p.rt.interceptSet(p.id, v) {
		p.rt.removeBinding(p.id)
	}
	if !p.changed(v) {
		return
	}
	p.value = v
	p.rt.markCellDirty(p.id)
}

// SetBinding installs fn as the binding of p. fn is not called before the
// next read.
func (p *Property[T]) SetBinding(fn func() T) {
	p.rt.setBinding(p.id, &funcBinding[T]{fn: fn}, "")
}

// SetBindingWithOld installs a binding that receives the previous value.
func (p *Property[T]) SetBindingWithOld(fn func(old T) T) {
	p.rt.setBinding(p.id, &oldValueBinding[T]{fn: fn}, "")
}

func (p *Property[T]) HasBinding() bool {
	_, b := p.rt.bindingOf(p.id)
	return b != nil
}

// IsDirty reports whether the binding has to be evaluated on the next read.
// A plain property is never dirty.
func (p *Property[T]) IsDirty() bool {
	_, b := p.rt.bindingOf(p.id)
	return b != nil && b.dirty
}

// MarkDirty marks the dependents of p dirty without changing its value, and
// the binding of p itself if any.
func (p *Property[T]) MarkDirty() {
	if bid, b := p.rt.bindingOf(p.id); b != nil {
		p.rt.markBindingDirty(bid)
		return
	}
	p.rt.markCellDirty(p.id)
}

// SetConstant promises that p will never change again, reads stop
// registering dependencies and Set panics with ErrConstantChanged.
func (p *Property[T]) SetConstant() {
	p.rt.setConstant(p.id)
}

func (p *Property[T]) IsConstant() bool {
	return p.rt.mustCell(p.id).constant
}

// Dispose unlinks every dependency of p and drops its binding. p must not be
// used afterwards.
func (p *Property[T]) Dispose() {
	p.rt.disposeCell(p.id)
}

// IsDisposed reports whether Dispose was called.
func (p *Property[T]) IsDisposed() bool {
	return p.rt.cells.get(p.id) == nil
}

type funcBinding[T any] struct {
	baseCallable
	fn func() T
}

func (b *funcBinding[T]) evaluate(dst any) bindingResult {
	*dst.(*T) = b.fn()
	return keepBinding
}

type oldValueBinding[T any] struct {
	baseCallable
	fn func(old T) T
}

func (b *oldValueBinding[T]) evaluate(dst any) bindingResult {
	v := dst.(*T)
	*v = b.fn(*v)
	return keepBinding
}
