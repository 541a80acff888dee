package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Eased maps a linear progress in [0, 1] through an easing curve.
func Eased(fn ease.TweenFunc, progress float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	return float64(fn(float32(progress), 0, 1, 1))
}

// Lerp interpolates between a and b.
func Lerp(a, b, progress float64) float64 {
	return a + (b-a)*progress
}

// Gween adapts a gween scalar tween to the Tween interface.
type Gween struct {
	tw      *gween.Tween
	current float32
	done    bool
}

// NewGween animates from begin to end over duration seconds.
func NewGween(begin, end float32, duration float64, fn ease.TweenFunc) *Gween {
	return &Gween{
		tw:      gween.New(begin, end, float32(duration), fn),
		current: begin,
	}
}

// Current returns the current value.
func (g *Gween) Current() *float32 { return &g.current }

// Update advances the underlying gween tween.
func (g *Gween) Update(dt float64) {
	g.current, g.done = g.tw.Update(float32(dt))
}

// IsDone reports whether the gween tween finished.
func (g *Gween) IsDone() bool { return g.done }

// Finish runs the gween tween to its end value.
func (g *Gween) Finish() {
	g.current, g.done = g.tw.Update(FinishedTime)
}

// TakeFinal returns the current value.
func (g *Gween) TakeFinal() float32 { return g.current }
