// Package tween provides time-based animated values.
//
// Every shape shares the Tween interface: read the current value, advance it
// by a time delta, report completion, force completion and take the final
// value. Time is measured in seconds.
package tween

import "math"

// FinishedTime is the elapsed time a Direct tween jumps to when finished.
// Rules that scale by elapsed time or dt saturate at this value.
const FinishedTime = math.MaxFloat32

// Tween is an animated value of type T.
type Tween[T any] interface {
	// Current returns the current value. The pointer stays valid for the
	// lifetime of the tween.
	Current() *T

	// Update advances the tween by dt seconds.
	Update(dt float64)

	// IsDone reports whether the animation has completed.
	IsDone() bool

	// Finish forces the animation to its completed state.
	Finish()

	// TakeFinal returns the current value. The tween should not be used
	// afterwards.
	TakeFinal() T
}

// Releaser is implemented by values holding resources that must be freed
// when a Transition drops them.
type Releaser interface {
	Release()
}

// progressOf returns min(elapsed/target, 1). A non-positive target is
// complete immediately.
func progressOf(elapsed, target float64) float64 {
	if target <= 0 || elapsed >= target {
		return 1.0
	}
	return elapsed / target
}
