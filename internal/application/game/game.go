// Package game provides the main loop manager that handles screen transitions.
//
// The manager owns a single transition tween whose predecessor is a snapshot
// of the last rendered frame and whose active value is the live screen. A new
// screen replaces the tween, so the old screen fades out as a static image
// while the new one fades in. Failures raised by a screen are turned into the
// Error screen on the next frame.
package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/novel/internal/application/failure"
	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/tween"
)

// Snapshot is a captured frame of the previous screen.
type Snapshot struct {
	Image   *ebiten.Image
	Opacity float64
}

// Release frees the captured image.
func (s *Snapshot) Release() {
	if s.Image != nil {
		s.Image.Deallocate()
		s.Image = nil
	}
}

// Active is the live screen and the opacity it is drawn with.
type Active struct {
	Scene   scene.Scene
	Opacity float64
}

// crossfade fades the snapshot out as the active screen fades in.
func crossfade(prev *Snapshot, active *Active, progress float64) {
	if prev != nil {
		prev.Opacity = 1 - progress
	}
	active.Opacity = progress
}

// Builder creates screens for state requests.
type Builder interface {
	Build(ctx *scene.Context, req *scene.Request) (scene.Scene, error)
	Error(f *failure.Failure) scene.Scene
}

// EventSource supplies the time step and input events of each frame.
// ok is false when the source is exhausted.
type EventSource interface {
	NextFrame(dt float64) (frameDT float64, events []scene.Event, ok bool)
}

// FrameCapturer produces a snapshot image from the last rendered frame.
// A nil result means there is nothing to fade from.
type FrameCapturer interface {
	Capture(frame *ebiten.Image) *ebiten.Image
}

// CopyCapturer copies the frame into a new image.
type CopyCapturer struct{}

// Capture implements FrameCapturer.
func (CopyCapturer) Capture(frame *ebiten.Image) *ebiten.Image {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	img := ebiten.NewImage(b.Dx(), b.Dy())
	img.DrawImage(frame, nil)
	return img
}

// Game implements ebiten.Game and manages screen transitions.
type Game struct {
	ctx      *scene.Context
	builder  Builder
	events   EventSource
	capturer FrameCapturer

	transition *tween.Transition[Snapshot, Active]
	frame      *ebiten.Image
	drawn      bool

	pending *failure.Failure
	fatal   error
	dt      float64
}

// New creates a Game showing initial. The initial screen is installed as a
// transition with no predecessor, so it appears on the first update without
// a fade.
func New(ctx *scene.Context, initial scene.Scene, builder Builder, events EventSource) *Game {
	g := &Game{
		ctx:      ctx,
		builder:  builder,
		events:   events,
		capturer: CopyCapturer{},
		dt:       1.0 / 60.0, // Default to 60 FPS
	}
	g.install(initial)
	return g
}

// SetCapturer replaces the frame capturer.
func (g *Game) SetCapturer(c FrameCapturer) {
	g.capturer = c
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Active returns the live screen.
func (g *Game) Active() scene.Scene {
	return g.transition.Active().Scene
}

// Progress returns the progress of the current screen transition.
func (g *Game) Progress() float64 {
	return g.transition.Progress()
}

// Snapshot returns the fading predecessor, or nil.
func (g *Game) Snapshot() *Snapshot {
	return g.transition.Prev()
}

// Update advances one frame.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.fatal != nil {
		return g.fatal
	}

	dt, events, ok := g.events.NextFrame(g.dt)
	if !ok {
		log.Printf("Event source exhausted")
		return ebiten.Termination
	}

	for _, ev := range events {
		s := g.Active()
		var quit bool
		if err := g.guard(s, "input", func() error {
			quit = scene.Dispatch(g.ctx, s, ev)
			return nil
		}); err != nil {
			return err
		}
		if quit {
			log.Printf("Quit")
			return ebiten.Termination
		}
	}
	if g.ctx.QuitRequested() {
		log.Printf("Quit requested by %s", g.Active().Kind())
		return ebiten.Termination
	}

	if f := g.pending; f != nil {
		g.pending = nil
		log.Printf("Error: %v", f)
		g.install(g.builder.Error(f))
		// Advance once so this frame already shows the error screen.
		g.transition.Update(dt)
		return nil
	}

	g.transition.Update(dt)

	s := g.Active()
	if err := g.guard(s, "update", func() error { return s.Update(g.ctx, dt) }); err != nil {
		return err
	}
	if g.pending != nil {
		return nil
	}

	var req *scene.Request
	if err := g.guard(s, "change_state", func() error {
		req = s.ChangeState(g.ctx)
		return nil
	}); err != nil {
		return err
	}
	if req == nil {
		return nil
	}
	return g.change(s, req)
}

func (g *Game) change(from scene.Scene, req *scene.Request) error {
	if err := state.CheckTransition(from.Kind(), req.Kind); err != nil {
		if from.Kind() == state.KindError {
			return err
		}
		g.fail(from.Kind().String()+".change_state", err)
		return nil
	}

	var next scene.Scene
	location := req.Kind.String() + ".build"
	err := failure.Protect(location, func() error {
		var err error
		next, err = g.builder.Build(g.ctx, req)
		return err
	})
	if err != nil {
		g.fail(location, err)
		return nil
	}
	g.install(next)
	return nil
}

// Draw renders the active screen at the transition progress and the
// snapshot, if any, at the complementary opacity.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if g.frame == nil || g.frame.Bounds() != b {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.Clear()

	pair := g.transition.Current()
	s := pair.Active.Scene
	if err := g.guard(s, "draw", func() error {
		return s.Draw(g.ctx, g.frame, pair.Active.Opacity)
	}); err != nil && g.fatal == nil {
		g.fatal = err
	}

	if prev := pair.Prev; prev != nil && prev.Image != nil {
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(prev.Opacity))
		g.frame.DrawImage(prev.Image, op)
	}

	screen.DrawImage(g.frame, nil)
	g.drawn = true
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ctx.Width, g.ctx.Height
}

// install replaces the transition with one targeting next. The last frame
// becomes the predecessor once something has been drawn.
func (g *Game) install(next scene.Scene) {
	var prev *Snapshot
	if g.drawn {
		if img := g.capturer.Capture(g.frame); img != nil {
			prev = &Snapshot{Image: img, Opacity: 1}
		}
	}
	if g.transition != nil {
		g.transition.Abandon()
	}
	g.transition = tween.NewTransition(prev, Active{Scene: next},
		g.ctx.Engine().TransitionSeconds, true, crossfade)
	log.Printf("Scene: %s", next.Kind())
}

// guard runs fn for screen s. Errors and panics of ordinary screens become
// the pending failure and nil is returned. The Error screen is not guarded:
// its errors are returned and its panics propagate.
func (g *Game) guard(s scene.Scene, op string, fn func() error) error {
	location := s.Kind().String() + "." + op
	if s.Kind() == state.KindError {
		if err := fn(); err != nil {
			return fmt.Errorf("%s: %w", location, err)
		}
		return nil
	}
	if err := failure.Protect(location, fn); err != nil {
		g.fail(location, err)
	}
	return nil
}

// fail records the first failure of the frame.
func (g *Game) fail(location string, err error) {
	if g.pending == nil {
		g.pending = failure.New(location, err)
	}
}
