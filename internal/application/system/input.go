package system

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/novel/internal/application/scene"
)

// Key repeat timing in ticks, matching typical OS defaults at 60 TPS.
const (
	RepeatDelay    = 30
	RepeatInterval = 4
)

// AxisThreshold is the minimum change that produces a GamepadAxisEvent.
const AxisThreshold = 0.01

// InputState holds everything the poller reads from ebiten in one frame.
type InputState struct {
	Width, Height    int
	Focused          bool
	Closing          bool
	CursorX, CursorY float64
	WheelX, WheelY   float64
	Buttons          []ebiten.MouseButton
	// Keys maps held keys to how many ticks they have been held.
	Keys     map[ebiten.Key]int
	Chars    []rune
	Gamepads map[ebiten.GamepadID]GamepadState
}

// GamepadState holds a standard-layout gamepad.
type GamepadState struct {
	Buttons []ebiten.StandardGamepadButton
	Axes    map[ebiten.StandardGamepadAxis]float64
}

// Poller converts ebiten polling into scene events.
type Poller struct {
	prev InputState
}

// NewPoller creates an input poller
func NewPoller() *Poller {
	return &Poller{}
}

// Poll reads the current input state and returns the events since the
// previous call.
func (p *Poller) Poll() []scene.Event {
	cur := ReadInput()
	events := Diff(p.prev, cur)
	p.prev = cur
	return events
}

// NextFrame polls live input. The frame time is the fixed dt passed in and
// the poller is never exhausted.
func (p *Poller) NextFrame(dt float64) (float64, []scene.Event, bool) {
	return dt, p.Poll(), true
}

// ReadInput reads the current input state
func ReadInput() InputState {
	w, h := ebiten.WindowSize()
	cx, cy := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()

	s := InputState{
		Width:    w,
		Height:   h,
		Focused:  ebiten.IsFocused(),
		Closing:  ebiten.IsWindowBeingClosed(),
		CursorX:  float64(cx),
		CursorY:  float64(cy),
		WheelX:   wx,
		WheelY:   wy,
		Keys:     make(map[ebiten.Key]int),
		Chars:    ebiten.AppendInputChars(nil),
		Gamepads: make(map[ebiten.GamepadID]GamepadState),
	}

	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if ebiten.IsMouseButtonPressed(b) {
			s.Buttons = append(s.Buttons, b)
		}
	}

	for _, k := range inpututil.AppendPressedKeys(nil) {
		s.Keys[k] = inpututil.KeyPressDuration(k)
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		gs := GamepadState{Axes: make(map[ebiten.StandardGamepadAxis]float64)}
		for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				gs.Buttons = append(gs.Buttons, b)
			}
		}
		for a := ebiten.StandardGamepadAxis(0); a <= ebiten.StandardGamepadAxisMax; a++ {
			gs.Axes[a] = ebiten.StandardGamepadAxisValue(id, a)
		}
		s.Gamepads[id] = gs
	}

	return s
}

// Diff returns the events that turn prev into cur, in a fixed order:
// window, mouse, keyboard, text, gamepads, quit.
func Diff(prev, cur InputState) []scene.Event {
	var events []scene.Event

	if cur.Width != prev.Width || cur.Height != prev.Height {
		events = append(events, scene.ResizeEvent{Width: cur.Width, Height: cur.Height})
	}
	if cur.Focused != prev.Focused {
		events = append(events, scene.FocusEvent{Gained: cur.Focused})
	}

	if cur.CursorX != prev.CursorX || cur.CursorY != prev.CursorY {
		events = append(events, scene.MouseMotionEvent{
			X: cur.CursorX, Y: cur.CursorY,
			DX: cur.CursorX - prev.CursorX, DY: cur.CursorY - prev.CursorY,
		})
	}
	for _, b := range cur.Buttons {
		if !slices.Contains(prev.Buttons, b) {
			events = append(events, scene.MouseButtonDownEvent{Button: b, X: cur.CursorX, Y: cur.CursorY})
		}
	}
	for _, b := range prev.Buttons {
		if !slices.Contains(cur.Buttons, b) {
			events = append(events, scene.MouseButtonUpEvent{Button: b, X: cur.CursorX, Y: cur.CursorY})
		}
	}
	if cur.WheelX != 0 || cur.WheelY != 0 {
		events = append(events, scene.MouseWheelEvent{X: cur.WheelX, Y: cur.WheelY})
	}

	for _, k := range sortedKeys(cur.Keys) {
		_, held := prev.Keys[k]
		switch {
		case !held:
			events = append(events, scene.KeyDownEvent{Key: k})
		case isRepeat(cur.Keys[k]):
			events = append(events, scene.KeyDownEvent{Key: k, Repeat: true})
		}
	}
	for _, k := range sortedKeys(prev.Keys) {
		if _, held := cur.Keys[k]; !held {
			events = append(events, scene.KeyUpEvent{Key: k})
		}
	}

	if len(cur.Chars) > 0 {
		events = append(events, scene.TextInputEvent{Text: string(cur.Chars)})
	}

	for _, id := range sortedKeys(cur.Gamepads) {
		events = appendGamepad(events, id, prev.Gamepads[id], cur.Gamepads[id])
	}
	for _, id := range sortedKeys(prev.Gamepads) {
		if _, ok := cur.Gamepads[id]; !ok {
			events = appendGamepad(events, id, prev.Gamepads[id], GamepadState{})
		}
	}

	if cur.Closing && !prev.Closing {
		events = append(events, scene.QuitEvent{})
	}

	return events
}

func appendGamepad(events []scene.Event, id ebiten.GamepadID, prev, cur GamepadState) []scene.Event {
	for _, b := range cur.Buttons {
		if !slices.Contains(prev.Buttons, b) {
			events = append(events, scene.GamepadButtonDownEvent{ID: id, Button: b})
		}
	}
	for _, b := range prev.Buttons {
		if !slices.Contains(cur.Buttons, b) {
			events = append(events, scene.GamepadButtonUpEvent{ID: id, Button: b})
		}
	}
	axes := make(map[ebiten.StandardGamepadAxis]struct{})
	for a := range cur.Axes {
		axes[a] = struct{}{}
	}
	for a := range prev.Axes {
		axes[a] = struct{}{}
	}
	for _, a := range sortedKeys(axes) {
		v := cur.Axes[a]
		if math.Abs(v-prev.Axes[a]) >= AxisThreshold {
			events = append(events, scene.GamepadAxisEvent{ID: id, Axis: a, Value: v})
		}
	}
	return events
}

func isRepeat(ticks int) bool {
	return ticks > RepeatDelay && (ticks-RepeatDelay)%RepeatInterval == 0
}

func sortedKeys[K ~int, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
