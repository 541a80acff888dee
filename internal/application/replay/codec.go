package replay

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/novel/internal/application/scene"
)

// ErrUnknownEvent is returned when a record has an unrecognized type.
var ErrUnknownEvent = errors.New("unknown event type")

// Event type tags.
const (
	tagMotion    = "mm"
	tagMouseDown = "md"
	tagMouseUp   = "mu"
	tagWheel     = "mw"
	tagKeyDown   = "kd"
	tagKeyUp     = "ku"
	tagText      = "ti"
	tagPadDown   = "gd"
	tagPadUp     = "gu"
	tagPadAxis   = "ga"
	tagResize    = "rs"
	tagFocus     = "fo"
	tagQuit      = "q"
)

// Encode converts an event to its record.
func Encode(ev scene.Event) EventRecord {
	switch e := ev.(type) {
	case scene.MouseMotionEvent:
		return EventRecord{T: tagMotion, X: e.X, Y: e.Y, DX: e.DX, DY: e.DY}
	case scene.MouseButtonDownEvent:
		return EventRecord{T: tagMouseDown, B: int(e.Button), X: e.X, Y: e.Y}
	case scene.MouseButtonUpEvent:
		return EventRecord{T: tagMouseUp, B: int(e.Button), X: e.X, Y: e.Y}
	case scene.MouseWheelEvent:
		return EventRecord{T: tagWheel, X: e.X, Y: e.Y}
	case scene.KeyDownEvent:
		return EventRecord{T: tagKeyDown, K: int(e.Key), Rep: e.Repeat}
	case scene.KeyUpEvent:
		return EventRecord{T: tagKeyUp, K: int(e.Key)}
	case scene.TextInputEvent:
		return EventRecord{T: tagText, Text: e.Text}
	case scene.GamepadButtonDownEvent:
		return EventRecord{T: tagPadDown, Pad: int(e.ID), B: int(e.Button)}
	case scene.GamepadButtonUpEvent:
		return EventRecord{T: tagPadUp, Pad: int(e.ID), B: int(e.Button)}
	case scene.GamepadAxisEvent:
		return EventRecord{T: tagPadAxis, Pad: int(e.ID), Axis: int(e.Axis), V: e.Value}
	case scene.ResizeEvent:
		return EventRecord{T: tagResize, W: e.Width, H: e.Height}
	case scene.FocusEvent:
		return EventRecord{T: tagFocus, Gained: e.Gained}
	default:
		return EventRecord{T: tagQuit}
	}
}

// Decode converts a record back to an event.
func Decode(r EventRecord) (scene.Event, error) {
	switch r.T {
	case tagMotion:
		return scene.MouseMotionEvent{X: r.X, Y: r.Y, DX: r.DX, DY: r.DY}, nil
	case tagMouseDown:
		return scene.MouseButtonDownEvent{Button: ebiten.MouseButton(r.B), X: r.X, Y: r.Y}, nil
	case tagMouseUp:
		return scene.MouseButtonUpEvent{Button: ebiten.MouseButton(r.B), X: r.X, Y: r.Y}, nil
	case tagWheel:
		return scene.MouseWheelEvent{X: r.X, Y: r.Y}, nil
	case tagKeyDown:
		return scene.KeyDownEvent{Key: ebiten.Key(r.K), Repeat: r.Rep}, nil
	case tagKeyUp:
		return scene.KeyUpEvent{Key: ebiten.Key(r.K)}, nil
	case tagText:
		return scene.TextInputEvent{Text: r.Text}, nil
	case tagPadDown:
		return scene.GamepadButtonDownEvent{ID: ebiten.GamepadID(r.Pad), Button: ebiten.StandardGamepadButton(r.B)}, nil
	case tagPadUp:
		return scene.GamepadButtonUpEvent{ID: ebiten.GamepadID(r.Pad), Button: ebiten.StandardGamepadButton(r.B)}, nil
	case tagPadAxis:
		return scene.GamepadAxisEvent{ID: ebiten.GamepadID(r.Pad), Axis: ebiten.StandardGamepadAxis(r.Axis), Value: r.V}, nil
	case tagResize:
		return scene.ResizeEvent{Width: r.W, Height: r.H}, nil
	case tagFocus:
		return scene.FocusEvent{Gained: r.Gained}, nil
	case tagQuit:
		return scene.QuitEvent{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, r.T)
	}
}
