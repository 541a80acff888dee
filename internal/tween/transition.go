package tween

// Pair holds the value being faded out (optional) and the value being faded in.
type Pair[P, A any] struct {
	Prev   *P
	Active A
}

// TransitionRule sets both sides of a crossfade for the given progress.
// prev is nil when there is no predecessor or it has been dropped.
type TransitionRule[P, A any] func(prev *P, active *A, progress float64)

// Transition crossfades from an optional predecessor to an active value.
//
// When progress reaches 1 the predecessor is dropped (and released if it
// implements Releaser) before the rule runs, and it stays dropped. With
// SkipIfNoPrev set, a transition that starts without a predecessor completes
// on its first update.
type Transition[P, A any] struct {
	elapsed      float64
	target       float64
	progress     float64
	skipIfNoPrev bool
	current      Pair[P, A]
	rule         TransitionRule[P, A]
}

// NewTransition creates a Transition lasting target seconds. prev may be nil.
func NewTransition[P, A any](prev *P, active A, target float64, skipIfNoPrev bool, rule TransitionRule[P, A]) *Transition[P, A] {
	return &Transition[P, A]{
		target:       target,
		skipIfNoPrev: skipIfNoPrev,
		current:      Pair[P, A]{Prev: prev, Active: active},
		rule:         rule,
	}
}

// Current returns the (predecessor, active) pair.
func (t *Transition[P, A]) Current() *Pair[P, A] {
	return &t.current
}

// Update adds dt to the elapsed time, computes progress and applies the rule.
func (t *Transition[P, A]) Update(dt float64) {
	t.elapsed += dt
	if t.current.Prev == nil && t.skipIfNoPrev {
		t.progress = 1.0
	} else {
		t.progress = progressOf(t.elapsed, t.target)
	}
	if t.progress >= 1.0 {
		t.dropPrev()
	}
	t.rule(t.current.Prev, &t.current.Active, t.progress)
}

// IsDone reports whether progress has reached 1.
func (t *Transition[P, A]) IsDone() bool {
	return t.progress >= 1.0
}

// Finish completes the transition immediately, dropping the predecessor.
func (t *Transition[P, A]) Finish() {
	if t.elapsed < t.target {
		t.elapsed = t.target
	}
	t.progress = 1.0
	t.dropPrev()
	t.rule(nil, &t.current.Active, t.progress)
}

// Progress returns the progress passed to the rule on the last update.
func (t *Transition[P, A]) Progress() float64 {
	return t.progress
}

// Active returns the value being faded in.
func (t *Transition[P, A]) Active() *A {
	return &t.current.Active
}

// Prev returns the value being faded out, or nil.
func (t *Transition[P, A]) Prev() *P {
	return t.current.Prev
}

// Abandon drops the predecessor without completing the transition. Used when
// the transition is replaced mid-flight.
func (t *Transition[P, A]) Abandon() {
	t.dropPrev()
}

// TakeFinal returns the current pair.
func (t *Transition[P, A]) TakeFinal() Pair[P, A] {
	return t.current
}

func (t *Transition[P, A]) dropPrev() {
	if t.current.Prev == nil {
		return
	}
	if r, ok := any(t.current.Prev).(Releaser); ok {
		r.Release()
	}
	t.current.Prev = nil
}
