// Package playing provides the narrative session screen.
//
// The screen reads nodes from a narrative.Source. Background and character
// nodes change what is on stage and are consumed immediately; text and
// choice nodes stop the reader until the player continues.
package playing

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/scene/ui"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/domain/narrative"
	"github.com/younwookim/novel/internal/infrastructure/render"
	"github.com/younwookim/novel/internal/infrastructure/save"
	"github.com/younwookim/novel/internal/tween"
)

// ContinueMode is how the story advances past text.
type ContinueMode int

const (
	ContinueNormal ContinueMode = iota
	ContinueAuto
	ContinueSkip
)

// String returns the string representation of the mode
func (m ContinueMode) String() string {
	switch m {
	case ContinueAuto:
		return "Auto"
	case ContinueSkip:
		return "Skip"
	default:
		return "Normal"
	}
}

// MenuButton identifies a button of the bottom bar.
type MenuButton int

const (
	MenuSave MenuButton = iota
	MenuLoad
	MenuAuto
	MenuSkip
)

var menuLabels = []string{"Save", "Load", "Auto", "Skip"}

// Bottom bar layout.
const (
	menuCellW   = 60
	menuCellH   = 30
	menuSpacing = 5
)

type actionKind int

const (
	actionNone actionKind = iota
	actionText
	actionChoice
)

// action is what the reader is currently waiting on.
type action struct {
	kind    actionKind
	speaker string
	reveal  *tween.Direct[Reveal]
	choices []*ui.Button
}

// Scene is the narrative session screen
type Scene struct {
	scene.Base

	story  narrative.Source
	cursor narrative.Cursor
	// shown is the cursor of the node on screen; saving stores it so a load
	// shows the same line again.
	shown narrative.Cursor

	background *tween.Transition[Background, Background]
	characters []tween.Tween[Character]
	action     action
	menu       []*ui.Button

	mode      ContinueMode
	autoTimer float64

	ended bool
	leave bool
	err   error
}

// New starts a session at the beginning of the story.
func New(ctx *scene.Context) (*Scene, error) {
	s := newScene(ctx)
	s.cursor = s.story.Start()
	if err := s.continueStory(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Resume starts a session from the save record.
func Resume(ctx *scene.Context) (*Scene, error) {
	s := newScene(ctx)
	data, err := ctx.Saves.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to resume: %w", err)
	}
	if err := s.restore(ctx, data); err != nil {
		return nil, err
	}
	return s, nil
}

func newScene(ctx *scene.Context) *Scene {
	x, y := render.BottomLeft.In(ctx.Screen(), 10, 40)
	menu := make([]*ui.Button, len(menuLabels))
	for i, label := range menuLabels {
		r := render.Rect{X: x + float64(i)*(menuCellW+menuSpacing), Y: y, W: menuCellW, H: menuCellH}
		menu[i] = ui.NewButton(label, r)
	}
	return &Scene{story: ctx.Story, menu: menu}
}

// Kind implements scene.Scene.
func (s *Scene) Kind() state.Kind {
	return state.KindGame
}

// Mode returns the continue mode.
func (s *Scene) Mode() ContinueMode {
	return s.mode
}

// Cursor returns the position of the node on screen.
func (s *Scene) Cursor() narrative.Cursor {
	return s.shown
}

// Ended reports whether the story ran out of nodes.
func (s *Scene) Ended() bool {
	return s.ended
}

// MenuButton returns a bottom bar button.
func (s *Scene) MenuButton(b MenuButton) *ui.Button {
	return s.menu[b]
}

// Text returns the speaker and the revealed part of the current line.
// ok is false when no line is shown.
func (s *Scene) Text() (speaker, visible string, ok bool) {
	if s.action.kind != actionText {
		return "", "", false
	}
	return s.action.speaker, s.action.reveal.Current().Visible(), true
}

// TextDone reports whether the current line is fully revealed.
func (s *Scene) TextDone() bool {
	return s.action.kind == actionText && s.action.reveal.IsDone()
}

// Choices returns the labels of the current choice, if any.
func (s *Scene) Choices() []string {
	if s.action.kind != actionChoice {
		return nil
	}
	labels := make([]string, len(s.action.choices))
	for i, b := range s.action.choices {
		labels[i] = b.Label
	}
	return labels
}

// Choice returns the button of the n-th (1-based) option.
func (s *Scene) Choice(n int) *ui.Button {
	return s.action.choices[n-1]
}

// Characters returns the characters on stage, left to right.
func (s *Scene) Characters() []Character {
	out := make([]Character, len(s.characters))
	for i, c := range s.characters {
		out[i] = *c.Current()
	}
	return out
}

// CharactersSettled reports whether every character finished fading in.
func (s *Scene) CharactersSettled() bool {
	for _, c := range s.characters {
		if !c.IsDone() {
			return false
		}
	}
	return true
}

// Background returns the active background, or nil.
func (s *Scene) Background() *Background {
	if s.background == nil {
		return nil
	}
	return s.background.Active()
}

// BackgroundTransition returns the background tween, or nil.
func (s *Scene) BackgroundTransition() *tween.Transition[Background, Background] {
	return s.background
}

// Update implements scene.Scene.
func (s *Scene) Update(ctx *scene.Context, dt float64) error {
	if err := s.err; err != nil {
		s.err = nil
		return err
	}

	if s.action.kind == actionText {
		switch s.mode {
		case ContinueSkip:
			if err := s.continueStory(ctx); err != nil {
				return err
			}
		case ContinueAuto:
			if s.action.reveal.IsDone() {
				s.autoTimer += dt
				if s.autoTimer >= ctx.Engine().AutoAdvanceSeconds {
					s.autoTimer = 0
					if err := s.continueStory(ctx); err != nil {
						return err
					}
				}
			}
		}
	}

	if s.background != nil {
		s.background.Update(dt)
	}
	for _, c := range s.characters {
		c.Update(dt)
	}
	if s.action.kind == actionText {
		s.action.reveal.Update(dt)
	}
	for _, b := range s.buttons() {
		b.Update(dt)
	}
	return nil
}

// ChangeState returns to the main menu when the story ends or the player
// leaves.
func (s *Scene) ChangeState(*scene.Context) *scene.Request {
	if s.ended || s.leave {
		return scene.To(state.KindMainMenu)
	}
	return nil
}

func (s *Scene) buttons() []*ui.Button {
	if s.action.kind == actionChoice {
		return append(append([]*ui.Button{}, s.menu...), s.action.choices...)
	}
	return s.menu
}

// Advance continues past the current line. A line still being revealed is
// shown in full first.
func (s *Scene) Advance(ctx *scene.Context) {
	if s.action.kind != actionText {
		return
	}
	if !s.action.reveal.IsDone() {
		s.action.reveal.Finish()
		return
	}
	s.fail(s.continueStory(ctx))
}

// Choose picks the n-th (1-based) option of the current choice.
func (s *Scene) Choose(ctx *scene.Context, n int) {
	if s.action.kind != actionChoice || n < 1 || n > len(s.action.choices) {
		return
	}
	s.story.SetChoice(&s.cursor, n)
	s.fail(s.continueStory(ctx))
}

// SetMode switches the continue mode. Selecting the active mode returns to
// normal.
func (s *Scene) SetMode(m ContinueMode) {
	if s.mode == m {
		m = ContinueNormal
	}
	s.mode = m
	s.autoTimer = 0
}

// Save writes the save record.
func (s *Scene) Save(ctx *scene.Context) {
	if err := ctx.Saves.Save(s.snapshot()); err != nil {
		s.fail(fmt.Errorf("failed to save: %w", err))
		return
	}
	log.Printf("Saved game")
}

// Load replaces the session with the save record. A missing save is ignored.
func (s *Scene) Load(ctx *scene.Context) {
	data, err := ctx.Saves.Load()
	if errors.Is(err, save.ErrNoSave) {
		log.Printf("Load: no save file")
		return
	}
	if err != nil {
		s.fail(fmt.Errorf("failed to load: %w", err))
		return
	}
	if err := s.restore(ctx, data); err != nil {
		s.fail(err)
		return
	}
	log.Printf("Loaded game")
}

// fail keeps err to be returned from the next Update.
func (s *Scene) fail(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// KeyDown handles continue, leave and choice shortcuts.
func (s *Scene) KeyDown(ctx *scene.Context, ev scene.KeyDownEvent) {
	switch ev.Key {
	case ebiten.KeySpace, ebiten.KeyEnter:
		if !ev.Repeat && s.mode == ContinueNormal {
			s.Advance(ctx)
		}
	case ebiten.KeyEscape:
		s.leave = true
	}
}

// TextInput selects a choice by its number.
func (s *Scene) TextInput(ctx *scene.Context, ev scene.TextInputEvent) {
	for _, r := range ev.Text {
		if r >= '1' && r <= '9' {
			s.Choose(ctx, int(r-'0'))
			return
		}
	}
}

// MouseMotion updates hover highlights.
func (s *Scene) MouseMotion(_ *scene.Context, ev scene.MouseMotionEvent) {
	for _, b := range s.buttons() {
		b.Hover(ev.X, ev.Y)
	}
}

// MouseButtonDown presses the button under the cursor.
func (s *Scene) MouseButtonDown(_ *scene.Context, ev scene.MouseButtonDownEvent) {
	if ev.Button != ebiten.MouseButtonLeft {
		return
	}
	for _, b := range s.buttons() {
		b.Press(ev.X, ev.Y)
	}
}

// MouseButtonUp handles bottom bar, choice and text box clicks.
func (s *Scene) MouseButtonUp(ctx *scene.Context, ev scene.MouseButtonUpEvent) {
	if ev.Button != ebiten.MouseButtonLeft {
		return
	}
	for i, b := range s.menu {
		if b.Release(ev.X, ev.Y) {
			s.activate(ctx, MenuButton(i))
			return
		}
	}
	switch s.action.kind {
	case actionChoice:
		for i, b := range s.action.choices {
			if b.Release(ev.X, ev.Y) {
				s.Choose(ctx, i+1)
				return
			}
		}
	case actionText:
		if s.mode == ContinueNormal && textBoxRect(ctx.Screen()).Contains(ev.X, ev.Y) {
			s.Advance(ctx)
		}
	}
}

// GamepadButtonDown continues with the bottom face button.
func (s *Scene) GamepadButtonDown(ctx *scene.Context, ev scene.GamepadButtonDownEvent) {
	switch ev.Button {
	case ebiten.StandardGamepadButtonRightBottom:
		if s.mode == ContinueNormal {
			s.Advance(ctx)
		}
	case ebiten.StandardGamepadButtonCenterRight:
		s.leave = true
	}
}

func (s *Scene) activate(ctx *scene.Context, b MenuButton) {
	switch b {
	case MenuSave:
		s.Save(ctx)
	case MenuLoad:
		s.Load(ctx)
	case MenuAuto:
		s.SetMode(ContinueAuto)
	case MenuSkip:
		s.SetMode(ContinueSkip)
	}
}
