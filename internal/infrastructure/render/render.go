// Package render holds the 2D drawing helpers shared by the screens. Every
// helper takes an alpha that the caller derives from the screen opacity.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies strictly inside r.
func (r Rect) Contains(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// Screen returns the rectangle covering a w×h target.
func Screen(w, h int) Rect {
	return Rect{W: float64(w), H: float64(h)}
}

// FromPoints returns the rectangle spanning two corners.
func FromPoints(ax, ay, bx, by float64) Rect {
	return Rect{X: ax, Y: ay, W: bx - ax, H: by - ay}
}

// Anchor is a reference point of a rectangle.
type Anchor int

const (
	TopLeft Anchor = iota
	TopRight
	BottomLeft
	BottomRight
	Center
)

// In returns the anchor point of r moved inwards by (dx, dy).
func (a Anchor) In(r Rect, dx, dy float64) (float64, float64) {
	switch a {
	case TopRight:
		return r.X + r.W - dx, r.Y + dy
	case BottomLeft:
		return r.X + dx, r.Y + r.H - dy
	case BottomRight:
		return r.X + r.W - dx, r.Y + r.H - dy
	case Center:
		return r.X + r.W/2 + dx, r.Y + r.H/2 + dy
	default:
		return r.X + dx, r.Y + dy
	}
}

// Fade scales a color by alpha (pre-multiplied alpha).
func Fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// FillRect fills r with c at the given alpha.
func FillRect(dst *ebiten.Image, r Rect, c color.RGBA, alpha float64) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), Fade(c, alpha), false)
}

// DrawImageFit stretches img over r.
func DrawImageFit(dst, img *ebiten.Image, r Rect, alpha float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// DrawImageCentered draws img scaled by (sx, sy) with its center at (cx, cy).
func DrawImageCentered(dst, img *ebiten.Image, cx, cy, sx, sy, alpha float64) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// Fonts holds the font sources used for all text.
type Fonts struct {
	Regular *text.GoTextFaceSource
	Bold    *text.GoTextFaceSource
}

// LoadFonts parses the bundled Go fonts.
func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return &Fonts{Regular: regular, Bold: bold}, nil
}

// Face returns a regular face of the given size.
func (f *Fonts) Face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.Regular, Size: size}
}

// BoldFace returns a bold face of the given size.
func (f *Fonts) BoldFace(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.Bold, Size: size}
}

// TextStyle configures DrawText.
type TextStyle struct {
	Face        text.Face
	Color       color.RGBA
	Align       text.Align
	LineSpacing float64
}

// DrawText draws s with its top edge at y. Align selects whether x is the
// left edge, the center or the right edge.
func DrawText(dst *ebiten.Image, s string, x, y float64, style TextStyle, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(style.Color)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.PrimaryAlign = style.Align
	op.LineSpacing = style.LineSpacing
	if op.LineSpacing == 0 {
		op.LineSpacing = style.Face.Metrics().HAscent + style.Face.Metrics().HDescent + 4
	}
	text.Draw(dst, s, style.Face, op)
}

// MeasureText returns the size of s in face.
func MeasureText(s string, face text.Face, lineSpacing float64) (float64, float64) {
	return text.Measure(s, face, lineSpacing)
}

// Wrap inserts line breaks into s so no line is wider than width. Words
// longer than width are kept whole on their own line.
func Wrap(s string, face text.Face, width float64) string {
	var out strings.Builder
	for i, para := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && text.Advance(candidate, face) > width {
				out.WriteString(line)
				out.WriteByte('\n')
				line = word
				continue
			}
			line = candidate
		}
		out.WriteString(line)
	}
	return out.String()
}

// MeasureWidth returns the advance of s in face.
func MeasureWidth(s string, face text.Face) float64 {
	return text.Advance(s, face)
}
