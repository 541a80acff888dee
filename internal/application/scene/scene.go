// Package scene defines the Scene interface for game screens.
//
// Each screen (splash, main menu, game, error) implements Scene. The state
// manager delegates Update, Draw and input events to the active scene only,
// and asks it once per frame whether it wants to change state.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/domain/narrative"
	"github.com/younwookim/novel/internal/infrastructure/config"
	"github.com/younwookim/novel/internal/infrastructure/render"
	"github.com/younwookim/novel/internal/infrastructure/save"
)

// Scene represents a full screen of the application.
type Scene interface {
	// Kind identifies the screen within the closed state set.
	Kind() state.Kind

	// Update advances the scene by dt seconds.
	// A returned error is shown on the Error screen.
	Update(ctx *Context, dt float64) error

	// Draw renders the scene to dst. opacity is the crossfade factor the
	// scene must apply to everything it draws.
	Draw(ctx *Context, dst *ebiten.Image, opacity float64) error

	// ChangeState is called after Update. A non-nil request asks the
	// manager to transition to another screen.
	ChangeState(ctx *Context) *Request

	Handler
}

// Handler receives input events. Only the active scene gets them.
type Handler interface {
	MouseMotion(ctx *Context, ev MouseMotionEvent)
	MouseButtonDown(ctx *Context, ev MouseButtonDownEvent)
	MouseButtonUp(ctx *Context, ev MouseButtonUpEvent)
	MouseWheel(ctx *Context, ev MouseWheelEvent)
	KeyDown(ctx *Context, ev KeyDownEvent)
	KeyUp(ctx *Context, ev KeyUpEvent)
	TextInput(ctx *Context, ev TextInputEvent)
	GamepadButtonDown(ctx *Context, ev GamepadButtonDownEvent)
	GamepadButtonUp(ctx *Context, ev GamepadButtonUpEvent)
	GamepadAxis(ctx *Context, ev GamepadAxisEvent)
	Resize(ctx *Context, ev ResizeEvent)
	Focus(ctx *Context, ev FocusEvent)

	// Quit is called when the window is asked to close.
	// Returning true cancels the quit.
	Quit(ctx *Context) bool
}

// Request asks the manager to switch to another screen.
type Request struct {
	Kind state.Kind
	// Resume starts the Game screen from the save record.
	Resume bool
}

// To is shorthand for a plain request.
func To(kind state.Kind) *Request {
	return &Request{Kind: kind}
}

// ImageSource loads images by asset path.
type ImageSource interface {
	Image(path string) (*ebiten.Image, error)
}

// SaveStore persists the single save record.
type SaveStore interface {
	Exists() bool
	Save(data save.Data) error
	Load() (*save.Data, error)
}

// UserConfigStore persists per-user settings.
type UserConfigStore interface {
	Save(cfg *config.UserConfig) error
}

// Context is built once at startup and passed to every scene call.
type Context struct {
	Config    *config.Config
	Images    ImageSource
	Fonts     *render.Fonts
	Saves     SaveStore
	Story     narrative.Source
	User      *config.UserConfig
	UserStore UserConfigStore
	Width     int
	Height    int

	quit bool
}

// Engine returns the engine section of the config.
func (c *Context) Engine() *config.EngineConfig {
	return c.Config.Engine
}

// Screen returns the logical screen rectangle.
func (c *Context) Screen() render.Rect {
	return render.Screen(c.Width, c.Height)
}

// RequestQuit asks the manager to stop after the current frame.
func (c *Context) RequestQuit() {
	c.quit = true
}

// QuitRequested reports whether RequestQuit was called.
func (c *Context) QuitRequested() bool {
	return c.quit
}

// Base implements Handler with no-ops. Screens embed it and override the
// events they care about.
type Base struct{}

func (Base) MouseMotion(*Context, MouseMotionEvent)             {}
func (Base) MouseButtonDown(*Context, MouseButtonDownEvent)     {}
func (Base) MouseButtonUp(*Context, MouseButtonUpEvent)         {}
func (Base) MouseWheel(*Context, MouseWheelEvent)               {}
func (Base) KeyDown(*Context, KeyDownEvent)                     {}
func (Base) KeyUp(*Context, KeyUpEvent)                         {}
func (Base) TextInput(*Context, TextInputEvent)                 {}
func (Base) GamepadButtonDown(*Context, GamepadButtonDownEvent) {}
func (Base) GamepadButtonUp(*Context, GamepadButtonUpEvent)     {}
func (Base) GamepadAxis(*Context, GamepadAxisEvent)             {}
func (Base) Resize(*Context, ResizeEvent)                       {}
func (Base) Focus(*Context, FocusEvent)                         {}
func (Base) Quit(*Context) bool                                 { return false }
