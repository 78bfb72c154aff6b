package property

import "errors"

var (
	// ErrRecursionDetected is raised when a binding reads, directly or not,
	// the property it is computing.
	ErrRecursionDetected = errors.New("recursion detected")
	// ErrUseAfterDispose is raised when a property, binding or tracker is
	// used after Dispose.
	ErrUseAfterDispose = errors.New("use after dispose")
	// ErrConstantChanged is raised when a constant property is written.
	ErrConstantChanged = errors.New("constant property being changed")
	// ErrNotInterpolatable is raised when an animation is requested for a
	// type with no interpolation.
	ErrNotInterpolatable = errors.New("type cannot be interpolated")
	// ErrChangeHandlerLoop is returned by RunChangeHandlers when change
	// handlers keep dirtying each other.
	ErrChangeHandlerLoop = errors.New("change handler loop detected")
)
