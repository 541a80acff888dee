// Package errorscreen is the terminal screen that shows a caught failure.
package errorscreen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/novel/internal/application/failure"
	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/infrastructure/render"
)

// BackgroundImage is the asset drawn behind the message.
const BackgroundImage = "Error"

var (
	fallbackColor = color.RGBA{0x20, 0x10, 0x10, 0xff}
	messageColor  = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

// Scene shows a failure's location and message. It never changes state.
type Scene struct {
	scene.Base
	failure *failure.Failure
}

// New creates the error screen for f.
func New(f *failure.Failure) *Scene {
	return &Scene{failure: f}
}

// Kind implements scene.Scene.
func (s *Scene) Kind() state.Kind {
	return state.KindError
}

// Message returns the text shown on screen.
func (s *Scene) Message() string {
	return s.failure.Error()
}

// Failure returns the failure being displayed.
func (s *Scene) Failure() *failure.Failure {
	return s.failure
}

// Update implements scene.Scene.
func (s *Scene) Update(*scene.Context, float64) error {
	return nil
}

// ChangeState implements scene.Scene. The error screen is terminal.
func (s *Scene) ChangeState(*scene.Context) *scene.Request {
	return nil
}

// Draw implements scene.Scene.
func (s *Scene) Draw(ctx *scene.Context, dst *ebiten.Image, opacity float64) error {
	screen := ctx.Screen()

	bg, err := ctx.Images.Image(BackgroundImage)
	if err != nil {
		render.FillRect(dst, screen, fallbackColor, opacity)
	} else {
		render.DrawImageFit(dst, bg, screen, opacity)
	}

	if ctx.Fonts == nil {
		return nil
	}
	x, y := render.Center.In(screen, 0, 0)
	render.DrawText(dst, s.Message(), x, y, render.TextStyle{
		Face:  ctx.Fonts.Face(24),
		Color: messageColor,
		Align: text.AlignCenter,
	}, opacity)
	return nil
}

// KeyDown closes the application on Escape.
func (s *Scene) KeyDown(ctx *scene.Context, ev scene.KeyDownEvent) {
	if ev.Key == ebiten.KeyEscape {
		ctx.RequestQuit()
	}
}
