package property

import "time"

// StateInfo is the value of a state property, see SetStateBinding.
type StateInfo struct {
	Current  int
	Previous int
	// ChangeTime is the animation tick at which the binding producing
	// Current first became dirty.
	ChangeTime time.Duration
}

type stateBinding struct {
	baseCallable
	rt        *Runtime
	fn        func() int
	dirtyTime time.Duration
	hasDirty  bool
}

func (b *stateBinding) evaluate(dst any) bindingResult {
	info := dst.(*StateInfo)
	next := b.fn()
	ts, ok := b.dirtyTime, b.hasDirty
	b.hasDirty = false
	if next != info.Current {
		if !ok {
			ts = b.rt.tick.GetUntracked()
		}
		info.Previous = info.Current
		info.ChangeTime = ts
		info.Current = next
	}
	return keepBinding
}

func (b *stateBinding) markDirty(bool) {
	if !b.hasDirty {
		b.dirtyTime = b.rt.tick.GetUntracked()
		b.hasDirty = true
	}
}

// SetStateBinding installs fn, returning a state index, as the binding of p.
// When the index changes the previous one and the time of the change are
// recorded, transitions use them to pick and start animations.
func SetStateBinding(p *Property[StateInfo], fn func() int) {
	p.rt.setBinding(p.id, &stateBinding{rt: p.rt, fn: fn}, "")
}
