package playing

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/scene/ui"
	"github.com/younwookim/novel/internal/domain/narrative"
	"github.com/younwookim/novel/internal/infrastructure/render"
	"github.com/younwookim/novel/internal/infrastructure/save"
	"github.com/younwookim/novel/internal/tween"
)

// CharacterFadeSeconds is how long a new character takes to appear.
const CharacterFadeSeconds = 0.5

// BackgroundPath returns the asset path of a background.
func BackgroundPath(name string) string {
	return "bg/" + name
}

// CharacterPath returns the asset path of a character expression.
func CharacterPath(name, expression string) string {
	return "char/" + name + "/" + expression
}

// Background is a background image and its crossfade opacity.
type Background struct {
	Name  string
	Image *ebiten.Image
	Fade  float64
}

// Character is a character on stage.
type Character struct {
	Name       string
	Expression string
	Placement  string
	Image      *ebiten.Image
	Alpha      float64
}

// Reveal tracks how much of a line is visible.
type Reveal struct {
	Runes []rune
	CPS   float64
	Shown int
}

// Visible returns the revealed prefix of the line.
func (r *Reveal) Visible() string {
	return string(r.Runes[:r.Shown])
}

// revealText shows CPS characters per second of elapsed time. A
// non-positive CPS shows the line at once.
func revealText(r *Reveal, elapsed, _ float64) bool {
	total := float64(len(r.Runes))
	n := total
	if r.CPS > 0 {
		n = math.Min(elapsed*r.CPS, total)
	}
	r.Shown = int(n)
	return r.Shown >= len(r.Runes)
}

// fadeInCharacter eases the character's alpha in.
func fadeInCharacter(c *Character, progress float64) {
	c.Alpha = tween.Eased(ease.OutQuad, progress)
}

// crossfadeBackground fades the previous background out as the new one
// fades in.
func crossfadeBackground(prev, active *Background, progress float64) {
	if prev != nil {
		prev.Fade = 1 - progress
	}
	active.Fade = progress
}

// continueStory reads nodes until one needs the player.
func (s *Scene) continueStory(ctx *scene.Context) error {
	for {
		before := s.cursor
		node, ok := s.story.Next(&s.cursor)
		if !ok {
			s.ended = true
			s.action = action{}
			return nil
		}

		switch node.Kind() {
		case narrative.NodeText:
			s.shown = before
			s.showText(ctx, *node.Text)
			return nil
		case narrative.NodeChoice:
			s.shown = before
			s.showChoice(ctx, node.Choice)
			return nil
		case narrative.NodeCharacter:
			if err := s.addCharacter(ctx, *node.Character, false); err != nil {
				return err
			}
		case narrative.NodeBackground:
			if err := s.setBackground(ctx, node.Background, false); err != nil {
				return err
			}
		}
	}
}

func (s *Scene) showText(ctx *scene.Context, t narrative.Text) {
	reveal := Reveal{Runes: []rune(t.Content), CPS: ctx.Engine().TextCPS}
	s.action = action{
		kind:    actionText,
		speaker: t.Speaker,
		reveal:  tween.NewDirect(reveal, revealText),
	}
	s.autoTimer = 0
}

func (s *Scene) showChoice(ctx *scene.Context, options []narrative.Option) {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = fmt.Sprintf("%d. %s", i+1, o.Text)
	}
	screen := ctx.Screen()
	cx, cy := render.Center.In(screen, 0, 0)
	const h, gap = 48, 12
	total := float64(len(labels))*(h+gap) - gap
	s.action = action{
		kind:    actionChoice,
		choices: ui.Stack(labels, cx, cy-total/2-screen.H*0.1, screen.W*0.5, h, gap),
	}
}

// addCharacter puts a character on stage. Left goes first, everything else
// is appended. settled skips the fade.
func (s *Scene) addCharacter(ctx *scene.Context, c narrative.Character, settled bool) error {
	img, err := ctx.Images.Image(CharacterPath(c.Name, c.Expression))
	if err != nil {
		return fmt.Errorf("failed to load character %s/%s: %w", c.Name, c.Expression, err)
	}

	tw := tween.NewTarget(Character{
		Name:       c.Name,
		Expression: c.Expression,
		Placement:  c.Placement,
		Image:      img,
	}, CharacterFadeSeconds, fadeInCharacter)
	if settled {
		tw.Finish()
	}

	if c.Placement == "Left" {
		s.characters = append([]tween.Tween[Character]{tw}, s.characters...)
	} else {
		s.characters = append(s.characters, tw)
	}
	return nil
}

// setBackground starts a crossfade from the current background. settled
// shows the new one at once with no predecessor.
func (s *Scene) setBackground(ctx *scene.Context, name string, settled bool) error {
	img, err := ctx.Images.Image(BackgroundPath(name))
	if err != nil {
		return fmt.Errorf("failed to load background %s: %w", name, err)
	}

	var prev *Background
	if s.background != nil && !settled {
		current := *s.background.Active()
		prev = &current
	}
	s.background = tween.NewTransition(prev, Background{Name: name, Image: img},
		ctx.Engine().TransitionSeconds, true, crossfadeBackground)
	if settled {
		s.background.Finish()
	}
	return nil
}

// snapshot builds the save record of the session.
func (s *Scene) snapshot() save.Data {
	data := save.Data{Cursor: s.shown}
	if bg := s.Background(); bg != nil {
		name := bg.Name
		data.Background = &name
	}
	for _, c := range s.characters {
		cur := c.Current()
		data.Characters = append(data.Characters, save.Character{Name: cur.Name, Expression: cur.Expression})
	}
	return data
}

// restore rebuilds the stage from a save record with every fade settled,
// then continues the story from the saved cursor.
func (s *Scene) restore(ctx *scene.Context, data *save.Data) error {
	s.cursor = data.Cursor
	s.characters = nil
	for _, c := range data.Characters {
		if err := s.addCharacter(ctx, narrative.Character{Name: c.Name, Expression: c.Expression}, true); err != nil {
			return err
		}
	}
	s.background = nil
	if data.Background != nil {
		if err := s.setBackground(ctx, *data.Background, true); err != nil {
			return err
		}
	}
	s.ended = false
	return s.continueStory(ctx)
}
