package property

import (
	"math"
	"time"
)

type AnimationDirection uint8

const (
	Normal AnimationDirection = iota
	Reverse
	Alternate
	AlternateReverse
)

func (d AnimationDirection) String() string {
	switch d {
	case Normal:
		return "normal"
	case Reverse:
		return "reverse"
	case Alternate:
		return "alternate"
	case AlternateReverse:
		return "alternate-reverse"
	default:
		return "unknown"
	}
}

// Animation describes how a property moves to a new value. A negative
// IterationCount repeats forever, zero jumps straight to the end.
type Animation struct {
	Duration       time.Duration
	Delay          time.Duration
	Easing         EasingCurve
	IterationCount float64
	Direction      AnimationDirection
}

// DefaultAnimation runs once over d with a linear curve.
func DefaultAnimation(d time.Duration) Animation {
	return Animation{Duration: d, Easing: Linear, IterationCount: 1}
}

// CurrentTick returns the time of the current animation frame. It is a
// property read, bindings reading it are marked dirty by every tick.
func (rt *Runtime) CurrentTick() time.Duration {
	return rt.tick.Get()
}

// UpdateAnimationsTo moves the animation clock to tick.
func (rt *Runtime) UpdateAnimationsTo(tick time.Duration) {
	if rt.tick.GetUntracked() == tick {
		return
	}
	rt.activeAnimations = false
	rt.tick.Set(tick)
}

// UpdateAnimations moves the animation clock to the runtime clock.
func (rt *Runtime) UpdateAnimations() {
	rt.UpdateAnimationsTo(rt.clock())
}

// HasActiveAnimations reports whether an animation evaluated since the last
// tick still needs frames.
func (rt *Runtime) HasActiveAnimations() bool {
	return rt.activeAnimations
}

type animationState uint8

const (
	animDelaying animationState = iota
	animRunning
	animDone
)

type animationData[T any] struct {
	from, to  T
	anim      Animation
	start     time.Duration
	state     animationState
	iteration uint64
	interp    func(from, to T, t float32) T
}

func (d *animationData[T]) reversed(iteration uint64) bool {
	switch d.anim.Direction {
	case Reverse:
		return true
	case Alternate:
		return iteration%2 == 1
	case AlternateReverse:
		return iteration%2 == 0
	default:
		return false
	}
}

func (d *animationData[T]) reset(now time.Duration) {
	d.state = animDelaying
	d.start = now
}

// compute returns the value at now and whether the animation is over.
func (d *animationData[T]) compute(now time.Duration) (T, bool) {
	elapsed := now - d.start
	for {
		switch d.state {
		case animDelaying:
			if d.anim.Delay <= 0 {
				d.state, d.iteration = animRunning, 0
				continue
			}
			if elapsed < d.anim.Delay {
				if d.reversed(0) {
					return d.to, false
				}
				return d.from, false
			}
			elapsed -= d.anim.Delay
			d.start = now - elapsed
			d.state, d.iteration = animRunning, 0

		case animRunning:
			dur := d.anim.Duration
			if dur <= 0 || d.anim.IterationCount == 0 {
				d.state, d.iteration = animDone, 0
				continue
			}
			if elapsed >= dur {
				d.iteration += uint64(elapsed / dur)
				elapsed %= dur
				d.start = now - elapsed
			}
			if d.anim.IterationCount < 0 || float64(d.iteration)*float64(dur)+float64(elapsed) < d.anim.IterationCount*float64(dur) {
				progress := min(max(float32(elapsed)/float32(dur), 0), 1)
				if d.reversed(d.iteration) {
					progress = 1 - progress
				}
				return d.interp(d.from, d.to, d.anim.Easing.Apply(progress)), false
			}
			// the last iteration played, not the one the clock ran into
			d.state = animDone
			d.iteration = uint64(math.Ceil(d.anim.IterationCount)) - 1

		default:
			if d.reversed(d.iteration) {
				return d.from, true
			}
			return d.to, true
		}
	}
}

type animator interface {
	animating() bool
}

// IsAnimating reports whether p runs an animation that has not reached its
// end yet.
func IsAnimating[T any](p *Property[T]) bool {
	_, b := p.rt.bindingOf(p.id)
	if b == nil {
		return false
	}
	a, ok := b.callable.(animator)
	return ok && a.animating()
}

type animatedValueBinding[T any] struct {
	baseCallable
	rt   *Runtime
	data *animationData[T]
}

func (b *animatedValueBinding[T]) evaluate(dst any) bindingResult {
	v, finished := b.data.compute(b.rt.tick.Get())
	*dst.(*T) = v
	if finished {
		return removeBinding
	}
	b.rt.activeAnimations = true
	return keepBinding
}

func (b *animatedValueBinding[T]) animating() bool {
	return true
}

// SetAnimatedValue moves p from its current value to v following anim. The
// animation is driven by the runtime ticks, once over p is a plain property
// again.
func SetAnimatedValue[T any](p *Property[T], v T, anim Animation) {
	SetAnimatedValueFunc(p, v, anim, mustInterpolator[T]())
}

// SetAnimatedValueFunc is SetAnimatedValue with an explicit interpolation.
func SetAnimatedValueFunc[T any](p *Property[T], v T, anim Animation, interp func(from, to T, t float32) T) {
	rt := p.rt
	data := &animationData[T]{
		from:   p.GetUntracked(),
		to:     v,
		anim:   anim,
		start:  rt.tick.GetUntracked(),
		interp: interp,
	}
	rt.setBinding(p.id, &animatedValueBinding[T]{rt: rt, data: data}, "")
}

type animatedBindingState uint8

const (
	notAnimating animatedBindingState = iota
	shouldStart
	animating
)

// animatedBinding wraps a binding held by a hidden cell and animates from the
// previous value every time that binding becomes dirty.
type animatedBinding[T any] struct {
	rt       *Runtime
	original ref
	state    animatedBindingState
	data     animationData[T]
	details  func() (Animation, time.Duration)
}

func (b *animatedBinding[T]) evaluate(dst any) bindingResult {
	rt := b.rt
	rt.registerCell(b.original)
	v := dst.(*T)
	switch b.state {
	case notAnimating:
		rt.update(b.original, v)
		return keepBinding
	case shouldStart:
		b.state = animating
		b.data.from = *v
		rt.update(b.original, &b.data.to)
		if b.details != nil {
			b.data.anim, b.data.start = b.details()
		}
	}
	val, finished := b.data.compute(rt.tick.Get())
	*v = val
	if finished {
		b.state = notAnimating
	} else {
		rt.activeAnimations = true
	}
	return keepBinding
}

func (b *animatedBinding[T]) markDirty(bool) {
	if b.state == shouldStart {
		return
	}
	_, orig := b.rt.bindingOf(b.original)
	if orig != nil && orig.dirty {
		b.state = shouldStart
		b.data.reset(b.rt.tick.GetUntracked())
	}
}

func (b *animatedBinding[T]) interceptSet(any) bool {
	return false
}

func (b *animatedBinding[T]) interceptSetBinding(bindingCallable, string) bool {
	return false
}

func (b *animatedBinding[T]) dispose() {
	b.rt.disposeCell(b.original)
}

func (b *animatedBinding[T]) animating() bool {
	return b.state != notAnimating
}

func newAnimatedBinding[T any](p *Property[T], fn func() T, interp func(from, to T, t float32) T) *animatedBinding[T] {
	rt := p.rt
	original := rt.newCell("")
	rt.setBinding(original, &funcBinding[T]{fn: fn}, "")
	return &animatedBinding[T]{
		rt:       rt,
		original: original,
		data:     animationData[T]{interp: interp},
	}
}

// SetAnimatedBinding installs fn as the binding of p. The first value is
// taken as is, every later change of fn animates following anim.
func SetAnimatedBinding[T any](p *Property[T], fn func() T, anim Animation) {
	SetAnimatedBindingFunc(p, fn, anim, mustInterpolator[T]())
}

// SetAnimatedBindingFunc is SetAnimatedBinding with an explicit interpolation.
func SetAnimatedBindingFunc[T any](p *Property[T], fn func() T, anim Animation, interp func(from, to T, t float32) T) {
	b := newAnimatedBinding(p, fn, interp)
	b.data.anim = anim
	p.rt.setBinding(p.id, b, "")
}

// SetAnimatedBindingForTransition is SetAnimatedBinding where the animation
// and its start time are computed when a change starts animating.
func SetAnimatedBindingForTransition[T any](p *Property[T], fn func() T, details func() (Animation, time.Duration)) {
	b := newAnimatedBinding(p, fn, mustInterpolator[T]())
	b.details = details
	p.rt.setBinding(p.id, b, "")
}
