package playing

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/infrastructure/render"
)

// TextBoxImage is the optional asset drawn behind dialogue.
const TextBoxImage = "TextBox"

var (
	clearColor   = color.RGBA{0x1a, 0x33, 0x4d, 0xff}
	textBoxColor = color.RGBA{0x00, 0x00, 0x00, 0xb0}
	textColor    = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func textBoxRect(screen render.Rect) render.Rect {
	return render.Rect{
		X: screen.X + screen.W*0.1,
		Y: screen.Y + screen.H*0.7,
		W: screen.W * 0.8,
		H: screen.H * 0.22,
	}
}

// Draw implements scene.Scene.
func (s *Scene) Draw(ctx *scene.Context, dst *ebiten.Image, opacity float64) error {
	screen := ctx.Screen()
	render.FillRect(dst, screen, clearColor, opacity)

	if s.background != nil {
		pair := s.background.Current()
		if pair.Prev != nil {
			render.DrawImageFit(dst, pair.Prev.Image, screen, pair.Prev.Fade*opacity)
		}
		render.DrawImageFit(dst, pair.Active.Image, screen, pair.Active.Fade*opacity)
	}

	s.drawCharacters(dst, screen, opacity)

	face := ctx.Fonts.Face(22)
	switch s.action.kind {
	case actionText:
		s.drawTextBox(ctx, dst, screen, opacity)
	case actionChoice:
		for _, b := range s.action.choices {
			b.Draw(dst, ctx.Engine().UI, face, opacity)
		}
	}

	small := ctx.Fonts.Face(14)
	for i, b := range s.menu {
		b.Draw(dst, ctx.Engine().UI, small, opacity)
		if (MenuButton(i) == MenuAuto && s.mode == ContinueAuto) || (MenuButton(i) == MenuSkip && s.mode == ContinueSkip) {
			render.FillRect(dst, render.Rect{X: b.Rect.X, Y: b.Rect.Y + b.Rect.H - 3, W: b.Rect.W, H: 3}, textColor, opacity)
		}
	}
	return nil
}

// drawCharacters spreads characters evenly, each four fifths of the screen
// tall and standing on the bottom edge.
func (s *Scene) drawCharacters(dst *ebiten.Image, screen render.Rect, opacity float64) {
	n := len(s.characters)
	for i, tw := range s.characters {
		c := tw.Current()
		b := c.Image.Bounds()
		if b.Dy() == 0 {
			continue
		}
		height := screen.H * 4 / 5
		scale := height / float64(b.Dy())
		cx := screen.X + screen.W/float64(n+1)*float64(i+1)
		cy := screen.Y + screen.H - height/2
		render.DrawImageCentered(dst, c.Image, cx, cy, scale, scale, c.Alpha*opacity)
	}
}

func (s *Scene) drawTextBox(ctx *scene.Context, dst *ebiten.Image, screen render.Rect, opacity float64) {
	box := textBoxRect(screen)
	if img, err := ctx.Images.Image(TextBoxImage); err == nil {
		render.DrawImageFit(dst, img, box, opacity)
	} else {
		render.FillRect(dst, box, textBoxColor, opacity)
	}

	face := ctx.Fonts.Face(22)
	x, y := render.TopLeft.In(box, 24, 16)
	if s.action.speaker != "" {
		render.DrawText(dst, s.action.speaker, x, y, render.TextStyle{
			Face:  ctx.Fonts.BoldFace(24),
			Color: ctx.Config.Character(s.action.speaker).Color,
		}, opacity)
		y += 34
	}
	content := render.Wrap(s.action.reveal.Current().Visible(), face, box.W-48)
	render.DrawText(dst, content, x, y, render.TextStyle{Face: face, Color: textColor}, opacity)
}
