// Package ui holds the small widgets the screens share.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/novel/internal/infrastructure/config"
	"github.com/younwookim/novel/internal/infrastructure/render"
	"github.com/younwookim/novel/internal/tween"
)

// HighlightSeconds is how long the hover highlight takes to fade.
const HighlightSeconds = 0.15

// Button is a labelled rectangle with a hover highlight and a pressed look.
type Button struct {
	Label string
	Rect  render.Rect

	hovered   bool
	pressed   bool
	highlight tween.Tween[float32]
}

// NewButton creates a button.
func NewButton(label string, r render.Rect) *Button {
	return &Button{
		Label:     label,
		Rect:      r,
		highlight: tween.NewIdentity[float32](0),
	}
}

// Update advances the highlight animation.
func (b *Button) Update(dt float64) {
	b.highlight.Update(dt)
}

// Highlight returns the current highlight amount in [0, 1].
func (b *Button) Highlight() float64 {
	return float64(*b.highlight.Current())
}

// Hovered reports whether the cursor is over the button.
func (b *Button) Hovered() bool {
	return b.hovered
}

// Hover updates the hover state for a cursor position.
func (b *Button) Hover(x, y float64) {
	over := b.Rect.Contains(x, y)
	if over == b.hovered {
		return
	}
	b.hovered = over
	end := float32(0)
	if over {
		end = 1
	}
	b.highlight = tween.NewGween(*b.highlight.Current(), end, HighlightSeconds, ease.OutQuad)
	if !over {
		b.pressed = false
	}
}

// Press marks the button pressed if (x, y) is inside it.
func (b *Button) Press(x, y float64) bool {
	b.pressed = b.Rect.Contains(x, y)
	return b.pressed
}

// Release reports a click: the button was pressed and the release happened
// inside it.
func (b *Button) Release(x, y float64) bool {
	clicked := b.pressed && b.Rect.Contains(x, y)
	b.pressed = false
	return clicked
}

// Draw renders the button with colors from the [UI] config.
func (b *Button) Draw(dst *ebiten.Image, ui config.UIConfig, face text.Face, alpha float64) {
	fill := ui.ButtonColor
	if b.pressed {
		fill = ui.ButtonPressedColor
	} else {
		fill = Mix(fill, ui.ButtonHighlightColor, b.Highlight())
	}
	render.FillRect(dst, b.Rect, fill, alpha)

	cx, cy := render.Center.In(b.Rect, 0, 0)
	_, h := render.MeasureText(b.Label, face, 0)
	render.DrawText(dst, b.Label, cx, cy-h/2, render.TextStyle{
		Face:  face,
		Color: color.RGBA{255, 255, 255, 255},
		Align: text.AlignCenter,
	}, alpha)
}

// Mix blends a towards b by t.
func Mix(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(tween.Lerp(float64(x), float64(y), t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// Stack lays out n buttons vertically, centered on (cx, top).
func Stack(labels []string, cx, top, w, h, gap float64) []*Button {
	buttons := make([]*Button, len(labels))
	for i, label := range labels {
		y := top + float64(i)*(h+gap)
		buttons[i] = NewButton(label, render.Rect{X: cx - w/2, Y: y, W: w, H: h})
	}
	return buttons
}
