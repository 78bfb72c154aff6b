package property

import "fmt"

// twoWayGroup is the hidden property shared by every linked property. It is
// disposed with the last binding reading it.
type twoWayGroup[T any] struct {
	common *Property[T]
	refs   int
}

func (g *twoWayGroup[T]) binding() *twoWayBinding[T] {
	g.refs++
	return &twoWayBinding[T]{group: g}
}

func (g *twoWayGroup[T]) release() {
	g.refs--
	if g.refs == 0 {
		g.common.Dispose()
	}
}

// root follows merged groups to the one actually holding the value.
func (g *twoWayGroup[T]) root() *twoWayGroup[T] {
	for {
		next := twoWayGroupOf(g.common)
		if next == nil {
			return g
		}
		g = next
	}
}

type twoWayBinding[T any] struct {
	group *twoWayGroup[T]
}

func (b *twoWayBinding[T]) evaluate(dst any) bindingResult {
	*dst.(*T) = b.group.common.Get()
	return keepBinding
}

func (b *twoWayBinding[T]) markDirty(bool) {}

func (b *twoWayBinding[T]) interceptSet(v any) bool {
	b.group.common.Set(v.(T))
	return true
}

func (b *twoWayBinding[T]) interceptSetBinding(next bindingCallable, name string) bool {
	common := b.group.common
	common.rt.setBinding(common.id, next, name)
	return true
}

func (b *twoWayBinding[T]) dispose() {
	b.group.release()
}

func twoWayGroupOf[T any](p *Property[T]) *twoWayGroup[T] {
	_, b := p.rt.bindingOf(p.id)
	if b == nil {
		return nil
	}
	if tw, ok := b.callable.(*twoWayBinding[T]); ok {
		return tw.group
	}
	return nil
}

// IsLinked reports whether p shares its value through LinkTwoWay or
// LinkTwoWayWithMap.
func IsLinked[T any](p *Property[T]) bool {
	return twoWayGroupOf(p) != nil
}

// LinkTwoWay makes a and b behave as a single property: setting either one,
// or installing a binding on either one, is seen through both.
//
// The value or binding of b is kept, the one of a is lost. When one side is
// already linked the other joins its group.
func LinkTwoWay[T any](a, b *Property[T]) {
	rt := a.rt
	value := b.GetUntracked()
	ga, gb := twoWayGroupOf(a), twoWayGroupOf(b)
	if ga != nil && gb != nil && ga.root() == gb.root() {
		return
	}
	name := ""
	if rt.debugNames {
		name = fmt.Sprintf("<%s<=>%s>", a.Name(), b.Name())
	}

	if ga != nil {
		rt.setBinding(b.id, ga.binding(), name)
		b.Set(value)
		return
	}
	if gb != nil {
		rt.setBinding(a.id, gb.binding(), name)
		return
	}

	g := &twoWayGroup[T]{common: NewFunc(rt, value, b.equal).SetName(name)}
	rt.moveBinding(b.id, g.common.id)
	rt.setBinding(a.id, g.binding(), name)
	rt.setBinding(b.id, g.binding(), name)
}

// LinkTwoWayWithMap links a property to one of another type. The value or
// binding of a is kept and b is derived from it with mapTo, writes to b are
// folded back into the value of a with mapFrom. A binding on b is kept too,
// it then drives a through mapFrom.
func LinkTwoWayWithMap[T, T2 any](a *Property[T], b *Property[T2], mapTo func(T) T2, mapFrom func(*T, T2)) {
	rt := a.rt
	name := ""
	if rt.debugNames {
		name = fmt.Sprintf("<%s<=>%s>", a.Name(), b.Name())
	}

	g := twoWayGroupOf(a)
	if g == nil {
		g = &twoWayGroup[T]{common: NewFunc(rt, a.Peek(), a.equal).SetName(a.Name() + "*")}
		rt.moveBinding(a.id, g.common.id)
		rt.setBinding(a.id, g.binding(), name)
	}

	old := rt.takeBinding(b.id)
	g.refs++
	rt.setBinding(b.id, &twoWayMapBinding[T, T2]{group: g, mapTo: mapTo, mapFrom: mapFrom}, name)
	if old != nil {
		rt.setBinding(b.id, old, name)
	}
}

type twoWayMapBinding[T, T2 any] struct {
	group   *twoWayGroup[T]
	mapTo   func(T) T2
	mapFrom func(*T, T2)
}

func (b *twoWayMapBinding[T, T2]) evaluate(dst any) bindingResult {
	*dst.(*T2) = b.mapTo(b.group.common.Get())
	return keepBinding
}

func (b *twoWayMapBinding[T, T2]) markDirty(bool) {}

func (b *twoWayMapBinding[T, T2]) interceptSet(v any) bool {
	common := b.group.common
	old := common.GetUntracked()
	b.mapFrom(&old, v.(T2))
	common.Set(old)
	return true
}

func (b *twoWayMapBinding[T, T2]) interceptSetBinding(next bindingCallable, name string) bool {
	common := b.group.common
	common.rt.setBinding(common.id, &bindingMapper[T, T2]{inner: next, mapTo: b.mapTo, mapFrom: b.mapFrom}, name)
	return true
}

func (b *twoWayMapBinding[T, T2]) dispose() {
	b.group.release()
}

// bindingMapper runs a binding written for T2 on a property of type T.
type bindingMapper[T, T2 any] struct {
	inner   bindingCallable
	mapTo   func(T) T2
	mapFrom func(*T, T2)
}

func (m *bindingMapper[T, T2]) evaluate(dst any) bindingResult {
	v := dst.(*T)
	sub := m.mapTo(*v)
	m.inner.evaluate(&sub)
	m.mapFrom(v, sub)
	return keepBinding
}

func (m *bindingMapper[T, T2]) markDirty(wasDirty bool) {
	m.inner.markDirty(wasDirty)
}

func (m *bindingMapper[T, T2]) interceptSet(v any) bool {
	return m.inner.interceptSet(m.mapTo(v.(T)))
}

func (m *bindingMapper[T, T2]) interceptSetBinding(bindingCallable, string) bool {
	return false
}

func (m *bindingMapper[T, T2]) dispose() {
	m.inner.dispose()
}
