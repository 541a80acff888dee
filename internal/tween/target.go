package tween

// TargetRule sets value for a normalized progress in [0, 1].
type TargetRule[T any] func(value *T, progress float64)

// Target interpolates over a fixed duration.
//
// Progress is min(elapsed/target, 1); it never decreases and stays at 1 once
// reached.
type Target[T any] struct {
	elapsed  float64
	target   float64
	progress float64
	current  T
	rule     TargetRule[T]
}

// NewTarget creates a Target tween lasting target seconds.
func NewTarget[T any](initial T, target float64, rule TargetRule[T]) *Target[T] {
	return &Target[T]{current: initial, target: target, rule: rule}
}

// Current returns the current value.
func (t *Target[T]) Current() *T {
	return &t.current
}

// Update adds dt to the elapsed time and applies the rule with the new
// progress.
func (t *Target[T]) Update(dt float64) {
	t.elapsed += dt
	t.progress = progressOf(t.elapsed, t.target)
	t.rule(&t.current, t.progress)
}

// IsDone reports whether the elapsed time reached the target.
func (t *Target[T]) IsDone() bool {
	return t.elapsed >= t.target
}

// Finish sets the elapsed time to the target and applies the final state.
// Calling it again has no further effect.
func (t *Target[T]) Finish() {
	if t.elapsed >= t.target && t.progress == 1.0 {
		return
	}
	t.elapsed = t.target
	t.progress = 1.0
	t.rule(&t.current, t.progress)
}

// Progress returns the progress passed to the rule on the last update.
func (t *Target[T]) Progress() float64 {
	return t.progress
}

// Elapsed returns the accumulated time.
func (t *Target[T]) Elapsed() float64 {
	return t.elapsed
}

// Duration returns the target duration.
func (t *Target[T]) Duration() float64 {
	return t.target
}

// TakeFinal returns the current value.
func (t *Target[T]) TakeFinal() T {
	return t.current
}
