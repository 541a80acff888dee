// Package splash is the first screen: a pulsing logo that hands over to the
// main menu.
package splash

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/infrastructure/render"
	"github.com/younwookim/novel/internal/tween"
)

// Image is the asset drawn by the splash screen.
const Image = "Splash"

// Phase of the splash animation.
type Phase int

const (
	PhaseEnter Phase = iota
	PhaseExit
)

// String returns the string representation of the phase
func (p Phase) String() string {
	if p == PhaseExit {
		return "Exit"
	}
	return "Enter"
}

// Scene is the splash screen.
type Scene struct {
	scene.Base
	phase Phase
	pulse *tween.Target[float64]
}

// New creates a splash screen animating for seconds.
func New(seconds float64) *Scene {
	return &Scene{
		phase: PhaseEnter,
		pulse: tween.NewTarget(0.8, seconds, pulseScale),
	}
}

// pulseScale overshoots and settles back to 0.8 as progress reaches 1.
func pulseScale(scale *float64, progress float64) {
	*scale = 0.8 + 0.2*math.Sin(2.5*math.Pi*math.Sqrt(progress))
}

// Kind implements scene.Scene.
func (s *Scene) Kind() state.Kind {
	return state.KindSplash
}

// Phase returns the current animation phase.
func (s *Scene) Phase() Phase {
	return s.phase
}

// IsDone reports whether the animation finished.
func (s *Scene) IsDone() bool {
	return s.pulse.IsDone()
}

// Scale returns the current logo scale factor.
func (s *Scene) Scale() float64 {
	return *s.pulse.Current()
}

// Update implements scene.Scene.
func (s *Scene) Update(_ *scene.Context, dt float64) error {
	s.pulse.Update(dt)
	if s.phase == PhaseEnter && s.pulse.IsDone() {
		s.phase = PhaseExit
	}
	return nil
}

// ChangeState requests the main menu once the exit phase is done.
func (s *Scene) ChangeState(*scene.Context) *scene.Request {
	if s.phase == PhaseExit && s.pulse.IsDone() {
		return scene.To(state.KindMainMenu)
	}
	return nil
}

// Draw implements scene.Scene.
func (s *Scene) Draw(ctx *scene.Context, dst *ebiten.Image, opacity float64) error {
	screen := ctx.Screen()
	render.FillRect(dst, screen, color.RGBA{255, 255, 255, 255}, opacity)

	img, err := ctx.Images.Image(Image)
	if err != nil {
		return err
	}
	b := img.Bounds()
	sx := screen.W / float64(b.Dx()) * s.Scale()
	sy := screen.H / float64(b.Dy()) * s.Scale()
	cx, cy := render.Center.In(screen, 0, 0)
	render.DrawImageCentered(dst, img, cx, cy, sx, sy, opacity)
	return nil
}

// KeyDown skips the animation.
func (s *Scene) KeyDown(*scene.Context, scene.KeyDownEvent) {
	s.pulse.Finish()
}

// MouseButtonUp skips the animation.
func (s *Scene) MouseButtonUp(*scene.Context, scene.MouseButtonUpEvent) {
	s.pulse.Finish()
}

// GamepadButtonDown skips the animation.
func (s *Scene) GamepadButtonDown(*scene.Context, scene.GamepadButtonDownEvent) {
	s.pulse.Finish()
}
