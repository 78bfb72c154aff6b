package property

import (
	"fmt"
	"math"
)

//go:generate go run ../cmd/codegen --out interpolate_gen.go

// Interpolator is implemented by values that know how to move towards
// another value of the same type. t is usually between 0 and 1 but easing
// curves may overshoot.
type Interpolator[T any] interface {
	Interpolate(to T, t float32) T
}

// InterpolatorFor returns how values of T are animated, either through
// Interpolator or for the builtin numeric types.
func InterpolatorFor[T any]() (func(from, to T, t float32) T, error) {
	var zero T
	if _, ok := any(zero).(Interpolator[T]); ok {
		return func(from, to T, t float32) T {
			return any(from).(Interpolator[T]).Interpolate(to, t)
		}, nil
	}
	if fn := builtinInterpolator[T](); fn != nil {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotInterpolatable, zero)
}

func mustInterpolator[T any]() func(from, to T, t float32) T {
	fn, err := InterpolatorFor[T]()
	if err != nil {
		panic(err)
	}
	return fn
}

// roundLerp interpolates integers, the step is rounded to the nearest.
func roundLerp(from, to float64, t float32) float64 {
	return from + math.Round(float64(t)*(to-from))
}

func lerp32(from, to, t float32) float32 {
	return from + t*(to-from)
}
