package tween

// DirectRule advances value given the total elapsed time and the last delta.
// It returns true once the animation is complete. Rules must be monotone past
// completion so that Finish snaps the value to its final state.
type DirectRule[T any] func(value *T, elapsed, dt float64) bool

// Direct is a free-running tween whose rule decides when it is done.
type Direct[T any] struct {
	elapsed float64
	current T
	rule    DirectRule[T]
	done    bool
}

// NewDirect creates a Direct tween starting at initial.
func NewDirect[T any](initial T, rule DirectRule[T]) *Direct[T] {
	return &Direct[T]{current: initial, rule: rule}
}

// Current returns the current value.
func (d *Direct[T]) Current() *T {
	return &d.current
}

// Update adds dt to the elapsed time and applies the rule.
func (d *Direct[T]) Update(dt float64) {
	d.elapsed += dt
	d.done = d.rule(&d.current, d.elapsed, dt)
}

// IsDone returns the value most recently returned by the rule.
func (d *Direct[T]) IsDone() bool {
	return d.done
}

// Finish jumps the elapsed time to FinishedTime and applies the rule once
// more so the value settles.
func (d *Direct[T]) Finish() {
	d.elapsed = FinishedTime
	d.rule(&d.current, d.elapsed, FinishedTime)
	d.done = true
}

// Elapsed returns the accumulated time.
func (d *Direct[T]) Elapsed() float64 {
	return d.elapsed
}

// TakeFinal returns the current value.
func (d *Direct[T]) TakeFinal() T {
	return d.current
}
