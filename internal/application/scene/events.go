package scene

import "github.com/hajimehoshi/ebiten/v2"

// Event is an input event delivered to the active scene.
type Event interface {
	isEvent()
}

// MouseMotionEvent reports the cursor position and its change since the
// previous frame.
type MouseMotionEvent struct {
	X, Y   float64
	DX, DY float64
}

func (MouseMotionEvent) isEvent() {}

// MouseButtonDownEvent reports a button press at the cursor position.
type MouseButtonDownEvent struct {
	Button ebiten.MouseButton
	X, Y   float64
}

func (MouseButtonDownEvent) isEvent() {}

// MouseButtonUpEvent reports a button release at the cursor position.
type MouseButtonUpEvent struct {
	Button ebiten.MouseButton
	X, Y   float64
}

func (MouseButtonUpEvent) isEvent() {}

// MouseWheelEvent reports wheel movement.
type MouseWheelEvent struct {
	X, Y float64
}

func (MouseWheelEvent) isEvent() {}

// KeyDownEvent reports a key press. Repeat is set for auto-repeat presses.
type KeyDownEvent struct {
	Key    ebiten.Key
	Repeat bool
}

func (KeyDownEvent) isEvent() {}

// KeyUpEvent reports a key release.
type KeyUpEvent struct {
	Key ebiten.Key
}

func (KeyUpEvent) isEvent() {}

// TextInputEvent carries typed characters.
type TextInputEvent struct {
	Text string
}

func (TextInputEvent) isEvent() {}

// GamepadButtonDownEvent reports a standard gamepad button press.
type GamepadButtonDownEvent struct {
	ID     ebiten.GamepadID
	Button ebiten.StandardGamepadButton
}

func (GamepadButtonDownEvent) isEvent() {}

// GamepadButtonUpEvent reports a standard gamepad button release.
type GamepadButtonUpEvent struct {
	ID     ebiten.GamepadID
	Button ebiten.StandardGamepadButton
}

func (GamepadButtonUpEvent) isEvent() {}

// GamepadAxisEvent reports a changed standard axis value.
type GamepadAxisEvent struct {
	ID    ebiten.GamepadID
	Axis  ebiten.StandardGamepadAxis
	Value float64
}

func (GamepadAxisEvent) isEvent() {}

// ResizeEvent reports a new window size.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}

// FocusEvent reports gaining or losing window focus.
type FocusEvent struct {
	Gained bool
}

func (FocusEvent) isEvent() {}

// QuitEvent reports a window close request.
type QuitEvent struct{}

func (QuitEvent) isEvent() {}

// Dispatch routes ev to the matching handler method. It reports whether the
// application should quit, which only a QuitEvent not cancelled by the
// handler can cause.
func Dispatch(ctx *Context, h Handler, ev Event) (quit bool) {
	switch e := ev.(type) {
	case MouseMotionEvent:
		h.MouseMotion(ctx, e)
	case MouseButtonDownEvent:
		h.MouseButtonDown(ctx, e)
	case MouseButtonUpEvent:
		h.MouseButtonUp(ctx, e)
	case MouseWheelEvent:
		h.MouseWheel(ctx, e)
	case KeyDownEvent:
		h.KeyDown(ctx, e)
	case KeyUpEvent:
		h.KeyUp(ctx, e)
	case TextInputEvent:
		h.TextInput(ctx, e)
	case GamepadButtonDownEvent:
		h.GamepadButtonDown(ctx, e)
	case GamepadButtonUpEvent:
		h.GamepadButtonUp(ctx, e)
	case GamepadAxisEvent:
		h.GamepadAxis(ctx, e)
	case ResizeEvent:
		h.Resize(ctx, e)
	case FocusEvent:
		h.Focus(ctx, e)
	case QuitEvent:
		return !h.Quit(ctx)
	}
	return false
}
