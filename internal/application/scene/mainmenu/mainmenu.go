// Package mainmenu is the title screen with Start, Load, Options, Credits and
// Quit.
package mainmenu

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/scene/ui"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/infrastructure/render"
)

// BackgroundImage is the asset drawn behind the menu.
const BackgroundImage = "MainMenu"

// VolumeStep is the change applied by the volume buttons.
const VolumeStep = 0.1

// Layout of the menu.
const (
	buttonWidth  = 240
	buttonHeight = 48
	buttonGap    = 12
)

var (
	clearColor = color.RGBA{0x1a, 0x33, 0x4d, 0xff}
	panelColor = color.RGBA{0x10, 0x10, 0x18, 0xe0}
	white      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Action is what a menu button does.
type Action int

const (
	ActionStart Action = iota
	ActionLoad
	ActionOptions
	ActionCredits
	ActionQuit
)

var actionLabels = []string{"Start", "Load", "Options", "Credits", "Quit"}

// String returns the button label of the action
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionLabels) {
		return "Unknown"
	}
	return actionLabels[a]
}

// Window is the modal window shown over the menu.
type Window int

const (
	WindowNone Window = iota
	WindowOptions
	WindowCredits
)

// Scene is the main menu.
type Scene struct {
	scene.Base

	buttons []*ui.Button
	window  Window
	panel   render.Rect
	back    *ui.Button
	volDown *ui.Button
	volUp   *ui.Button

	request *scene.Request
	err     error
}

// New lays the menu out for the context's screen size.
func New(ctx *scene.Context) *Scene {
	screen := ctx.Screen()
	cx, cy := render.Center.In(screen, 0, 0)
	total := float64(len(actionLabels))*(buttonHeight+buttonGap) - buttonGap

	panel := render.Rect{X: screen.W * 0.2, Y: screen.H * 0.15, W: screen.W * 0.6, H: screen.H * 0.7}
	bx, by := render.BottomRight.In(panel, 20+100, 20+40)

	return &Scene{
		buttons: ui.Stack(actionLabels, cx, cy-total/2+screen.H*0.1, buttonWidth, buttonHeight, buttonGap),
		panel:   panel,
		back:    ui.NewButton("Back", render.Rect{X: bx, Y: by, W: 100, H: 40}),
		volDown: ui.NewButton("-", render.Rect{X: cx - 110, Y: cy - 20, W: 40, H: 40}),
		volUp:   ui.NewButton("+", render.Rect{X: cx + 70, Y: cy - 20, W: 40, H: 40}),
	}
}

// Kind implements scene.Scene.
func (s *Scene) Kind() state.Kind {
	return state.KindMainMenu
}

// Window returns the open modal window.
func (s *Scene) Window() Window {
	return s.window
}

// Button returns the menu button for an action.
func (s *Scene) Button(a Action) *ui.Button {
	return s.buttons[a]
}

// Activate performs a menu action.
func (s *Scene) Activate(ctx *scene.Context, a Action) {
	switch a {
	case ActionStart:
		s.request = scene.To(state.KindGame)
	case ActionLoad:
		if ctx.Saves == nil || !ctx.Saves.Exists() {
			log.Printf("Load: no save file")
			return
		}
		s.request = &scene.Request{Kind: state.KindGame, Resume: true}
	case ActionOptions:
		s.window = WindowOptions
	case ActionCredits:
		s.window = WindowCredits
	case ActionQuit:
		ctx.RequestQuit()
	}
}

// ChangeVolume adjusts the master volume and persists the user config.
func (s *Scene) ChangeVolume(ctx *scene.Context, delta float64) {
	if ctx.User == nil {
		return
	}
	v := math.Round((ctx.User.MasterVolume+delta)*10) / 10
	ctx.User.MasterVolume = math.Max(0, math.Min(1, v))
	if ctx.UserStore == nil {
		return
	}
	if err := ctx.UserStore.Save(ctx.User); err != nil {
		s.err = fmt.Errorf("failed to save user config: %w", err)
	}
}

// Update implements scene.Scene.
func (s *Scene) Update(_ *scene.Context, dt float64) error {
	if err := s.err; err != nil {
		s.err = nil
		return err
	}
	for _, b := range s.activeButtons() {
		b.Update(dt)
	}
	return nil
}

// ChangeState returns the request made by the last activated action.
func (s *Scene) ChangeState(*scene.Context) *scene.Request {
	req := s.request
	s.request = nil
	return req
}

func (s *Scene) activeButtons() []*ui.Button {
	switch s.window {
	case WindowOptions:
		return []*ui.Button{s.volDown, s.volUp, s.back}
	case WindowCredits:
		return []*ui.Button{s.back}
	default:
		return s.buttons
	}
}

// MouseMotion updates hover highlights.
func (s *Scene) MouseMotion(_ *scene.Context, ev scene.MouseMotionEvent) {
	for _, b := range s.activeButtons() {
		b.Hover(ev.X, ev.Y)
	}
}

// MouseButtonDown presses the button under the cursor.
func (s *Scene) MouseButtonDown(_ *scene.Context, ev scene.MouseButtonDownEvent) {
	if ev.Button != ebiten.MouseButtonLeft {
		return
	}
	for _, b := range s.activeButtons() {
		b.Press(ev.X, ev.Y)
	}
}

// MouseButtonUp activates a clicked button.
func (s *Scene) MouseButtonUp(ctx *scene.Context, ev scene.MouseButtonUpEvent) {
	if ev.Button != ebiten.MouseButtonLeft {
		return
	}
	switch s.window {
	case WindowOptions:
		if s.volDown.Release(ev.X, ev.Y) {
			s.ChangeVolume(ctx, -VolumeStep)
		}
		if s.volUp.Release(ev.X, ev.Y) {
			s.ChangeVolume(ctx, VolumeStep)
		}
		if s.back.Release(ev.X, ev.Y) {
			s.window = WindowNone
		}
	case WindowCredits:
		if s.back.Release(ev.X, ev.Y) {
			s.window = WindowNone
		}
	default:
		for i, b := range s.buttons {
			if b.Release(ev.X, ev.Y) {
				s.Activate(ctx, Action(i))
				return
			}
		}
	}
}

// KeyDown closes an open window on Escape.
func (s *Scene) KeyDown(_ *scene.Context, ev scene.KeyDownEvent) {
	if ev.Key == ebiten.KeyEscape {
		s.window = WindowNone
	}
}

// Draw implements scene.Scene.
func (s *Scene) Draw(ctx *scene.Context, dst *ebiten.Image, opacity float64) error {
	screen := ctx.Screen()
	cfg := ctx.Engine().UI

	if bg, err := ctx.Images.Image(BackgroundImage); err == nil {
		render.DrawImageFit(dst, bg, screen, opacity)
	} else {
		render.FillRect(dst, screen, clearColor, opacity)
	}

	title := render.TextStyle{Face: ctx.Fonts.BoldFace(56), Color: white, Align: text.AlignCenter}
	tx, ty := render.Center.In(screen, 0, -screen.H*0.3)
	render.DrawText(dst, cfg.Title, tx, ty, title, opacity)

	face := ctx.Fonts.Face(24)
	for _, b := range s.buttons {
		b.Draw(dst, cfg, face, opacity)
	}

	switch s.window {
	case WindowOptions:
		s.drawPanel(dst, opacity)
		cx, cy := render.Center.In(screen, 0, 0)
		volume := 0.0
		if ctx.User != nil {
			volume = ctx.User.MasterVolume
		}
		label := fmt.Sprintf("Master volume: %d%%", int(math.Round(volume*100)))
		render.DrawText(dst, label, cx, cy-80, render.TextStyle{Face: face, Color: white, Align: text.AlignCenter}, opacity)
		s.volDown.Draw(dst, cfg, face, opacity)
		s.volUp.Draw(dst, cfg, face, opacity)
		s.back.Draw(dst, cfg, face, opacity)
	case WindowCredits:
		s.drawPanel(dst, opacity)
		x, y := render.TopLeft.In(s.panel, 24, 24)
		render.DrawText(dst, ctx.Config.Credits, x, y, render.TextStyle{Face: ctx.Fonts.Face(20), Color: white}, opacity)
		s.back.Draw(dst, cfg, face, opacity)
	}
	return nil
}

func (s *Scene) drawPanel(dst *ebiten.Image, opacity float64) {
	render.FillRect(dst, s.panel, panelColor, opacity)
}
