package playing

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/domain/narrative"
	"github.com/younwookim/novel/internal/infrastructure/config"
	"github.com/younwookim/novel/internal/infrastructure/render"
	"github.com/younwookim/novel/internal/infrastructure/save"
)

const storyYAML = `
start: intro
scenes:
  intro:
    - background: forest
    - character: {name: bob, expression: neutral, placement: Right}
    - character: {name: alice, expression: happy, placement: Left}
    - text: {speaker: alice, content: "Hello there"}
    - choice:
        - {text: Stay, goto: stay}
        - {text: Leave}
    - text: {content: "You left."}
  stay:
    - background: beach
    - text: {content: "You stayed."}
`

// fakeImages returns blank images and records the requested paths.
type fakeImages struct {
	requested []string
	missing   map[string]bool
}

func (f *fakeImages) Image(path string) (*ebiten.Image, error) {
	f.requested = append(f.requested, path)
	if f.missing[path] {
		return nil, errors.New("missing " + path)
	}
	return ebiten.NewImage(10, 20), nil
}

func newContext(t *testing.T) *scene.Context {
	t.Helper()
	story, err := narrative.ParseScript([]byte(storyYAML))
	require.NoError(t, err)

	return &scene.Context{
		Config: &config.Config{
			Engine: &config.EngineConfig{
				TransitionSeconds:  1.0,
				TextCPS:            10,
				AutoAdvanceSeconds: 1.0,
			},
		},
		Images: &fakeImages{missing: map[string]bool{TextBoxImage: true}},
		Saves:  save.NewStore(filepath.Join(t.TempDir(), "save.json")),
		Story:  story,
		Width:  1280,
		Height: 720,
	}
}

func click(ctx *scene.Context, s *Scene, r render.Rect) {
	x, y := render.Center.In(r, 0, 0)
	scene.Dispatch(ctx, s, scene.MouseButtonDownEvent{Button: ebiten.MouseButtonLeft, X: x, Y: y})
	scene.Dispatch(ctx, s, scene.MouseButtonUpEvent{Button: ebiten.MouseButtonLeft, X: x, Y: y})
}

type visible struct {
	Name, Expression string
}

func onStage(s *Scene) []visible {
	var out []visible
	for _, c := range s.Characters() {
		out = append(out, visible{c.Name, c.Expression})
	}
	return out
}

func TestNew_StagesUntilFirstLine(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)

	assert.Equal(t, state.KindGame, s.Kind())
	assert.Equal(t, []visible{{"alice", "happy"}, {"bob", "neutral"}}, onStage(s), "Left is inserted first")
	assert.False(t, s.CharactersSettled())
	require.NotNil(t, s.Background())
	assert.Equal(t, "forest", s.Background().Name)

	speaker, text, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "alice", speaker)
	assert.Equal(t, "", text)

	images := ctx.Images.(*fakeImages)
	assert.Equal(t, []string{"bg/forest", "char/bob/neutral", "char/alice/happy"}, images.requested)
}

func TestUpdate_FadesAndReveal(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, 0.25))
	assert.True(t, s.BackgroundTransition().IsDone(), "first background has no predecessor")
	assert.Equal(t, 1.0, s.Background().Fade)
	alpha := s.Characters()[0].Alpha
	assert.Greater(t, alpha, 0.5, "OutQuad is past linear at half time")
	assert.Less(t, alpha, 1.0)

	require.NoError(t, s.Update(ctx, 0.25))
	assert.True(t, s.CharactersSettled())
	assert.Equal(t, 1.0, s.Characters()[1].Alpha)

	_, text, _ := s.Text()
	assert.Equal(t, "Hello", text, "10 chars per second for 0.5s")
	assert.False(t, s.TextDone())
}

func TestAdvance_FinishesRevealFirst(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)

	scene.Dispatch(ctx, s, scene.KeyDownEvent{Key: ebiten.KeySpace})
	_, text, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "Hello there", text)
	assert.True(t, s.TextDone())

	scene.Dispatch(ctx, s, scene.KeyDownEvent{Key: ebiten.KeySpace, Repeat: true})
	assert.True(t, s.TextDone(), "repeats are ignored")

	x, y := render.Center.In(textBoxRect(ctx.Screen()), 0, 0)
	scene.Dispatch(ctx, s, scene.MouseButtonDownEvent{Button: ebiten.MouseButtonLeft, X: x, Y: y})
	scene.Dispatch(ctx, s, scene.MouseButtonUpEvent{Button: ebiten.MouseButtonLeft, X: x, Y: y})

	assert.Equal(t, []string{"1. Stay", "2. Leave"}, s.Choices())
	_, _, ok = s.Text()
	assert.False(t, ok)
}

func toChoice(t *testing.T, ctx *scene.Context) *Scene {
	t.Helper()
	s, err := New(ctx)
	require.NoError(t, err)
	s.Advance(ctx)
	s.Advance(ctx)
	require.NotEmpty(t, s.Choices())
	return s
}

func TestChoice_GotoScene(t *testing.T) {
	ctx := newContext(t)
	s := toChoice(t, ctx)
	require.NoError(t, s.Update(ctx, 1))

	click(ctx, s, s.Choice(1).Rect)

	_, text, ok := s.Text()
	require.True(t, ok)
	s.Advance(ctx)
	_, text, _ = s.Text()
	assert.Equal(t, "You stayed.", text)

	tr := s.BackgroundTransition()
	require.NotNil(t, tr.Prev(), "beach crossfades from forest")
	assert.Equal(t, "forest", tr.Prev().Name)
	assert.Equal(t, "beach", s.Background().Name)

	require.NoError(t, s.Update(ctx, 0.5))
	assert.InDelta(t, 0.5, tr.Prev().Fade, 1e-9)
	assert.InDelta(t, 0.5, s.Background().Fade, 1e-9)

	require.NoError(t, s.Update(ctx, 0.5))
	assert.Nil(t, tr.Prev())
	assert.Equal(t, 1.0, s.Background().Fade)
}

func TestChoice_ByDigitAndEnd(t *testing.T) {
	ctx := newContext(t)
	s := toChoice(t, ctx)

	scene.Dispatch(ctx, s, scene.TextInputEvent{Text: "7"})
	assert.NotEmpty(t, s.Choices(), "out of range digit is ignored")

	scene.Dispatch(ctx, s, scene.TextInputEvent{Text: "2"})
	_, text, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "", text)
	s.Advance(ctx)
	_, text, _ = s.Text()
	assert.Equal(t, "You left.", text)
	assert.Nil(t, s.ChangeState(ctx))

	s.Advance(ctx)
	assert.True(t, s.Ended())
	req := s.ChangeState(ctx)
	require.NotNil(t, req)
	assert.Equal(t, state.KindMainMenu, req.Kind)
}

func TestEscape_ReturnsToMenu(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)

	scene.Dispatch(ctx, s, scene.KeyDownEvent{Key: ebiten.KeyEscape})
	req := s.ChangeState(ctx)
	require.NotNil(t, req)
	assert.Equal(t, state.KindMainMenu, req.Kind)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, 0.1), "characters are mid-fade when saving")
	require.False(t, s.CharactersSettled())

	click(ctx, s, s.MenuButton(MenuSave).Rect)
	require.NoError(t, s.Update(ctx, 0.1))

	data, err := ctx.Saves.Load()
	require.NoError(t, err)
	require.NotNil(t, data.Background)
	assert.Equal(t, "forest", *data.Background)
	assert.Equal(t, []save.Character{{Name: "alice", Expression: "happy"}, {Name: "bob", Expression: "neutral"}}, data.Characters)

	restored, err := Resume(ctx)
	require.NoError(t, err)

	assert.Equal(t, []visible{{"alice", "happy"}, {"bob", "neutral"}}, onStage(restored))
	assert.True(t, restored.CharactersSettled())
	for _, c := range restored.Characters() {
		assert.Equal(t, 1.0, c.Alpha, c.Name)
	}

	require.NotNil(t, restored.Background())
	assert.Equal(t, "forest", restored.Background().Name)
	assert.Equal(t, 1.0, restored.Background().Fade)
	assert.True(t, restored.BackgroundTransition().IsDone())
	assert.Nil(t, restored.BackgroundTransition().Prev())

	speaker, _, ok := restored.Text()
	require.True(t, ok)
	assert.Equal(t, "alice", speaker, "the saved line is shown again")
	assert.Equal(t, s.Cursor(), restored.Cursor())
}

func TestLoad_FromMenuReplacesStage(t *testing.T) {
	ctx := newContext(t)
	first, err := New(ctx)
	require.NoError(t, err)
	first.Save(ctx)

	s := toChoice(t, ctx)
	scene.Dispatch(ctx, s, scene.TextInputEvent{Text: "1"})
	s.Advance(ctx)
	require.Equal(t, "beach", s.Background().Name)

	click(ctx, s, s.MenuButton(MenuLoad).Rect)
	require.NoError(t, s.Update(ctx, 0))

	assert.Equal(t, "forest", s.Background().Name)
	assert.Nil(t, s.BackgroundTransition().Prev())
	assert.Equal(t, []visible{{"alice", "happy"}, {"bob", "neutral"}}, onStage(s))
	speaker, _, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "alice", speaker)
}

func TestLoad_NoSaveIsIgnored(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)

	s.Load(ctx)
	assert.NoError(t, s.Update(ctx, 0.1))
}

func TestLoad_MalformedSaveFails(t *testing.T) {
	ctx := newContext(t)
	store := ctx.Saves.(*save.Store)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	s, err := New(ctx)
	require.NoError(t, err)

	s.Load(ctx)
	assert.Error(t, s.Update(ctx, 0.1))

	_, err = Resume(ctx)
	assert.Error(t, err)
}

func TestLoad_LogsOnlyWhenRestored(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)
	s.Save(ctx)

	s.Load(ctx)
	require.NoError(t, s.Update(ctx, 0.1))
	assert.Contains(t, buf.String(), "Loaded game")

	buf.Reset()
	ctx.Images.(*fakeImages).missing[BackgroundPath("forest")] = true
	s.Load(ctx)
	err = s.Update(ctx, 0.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load background forest")
	assert.NotContains(t, buf.String(), "Loaded game")
}

func TestAutoMode(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)

	click(ctx, s, s.MenuButton(MenuAuto).Rect)
	assert.Equal(t, ContinueAuto, s.Mode())

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Update(ctx, 0.5))
	}
	assert.True(t, s.TextDone())
	assert.Empty(t, s.Choices())

	require.NoError(t, s.Update(ctx, 0.5))
	assert.Equal(t, []string{"1. Stay", "2. Leave"}, s.Choices(), "advances after the auto delay")

	click(ctx, s, s.MenuButton(MenuAuto).Rect)
	assert.Equal(t, ContinueNormal, s.Mode(), "second click turns auto off")
}

func TestSkipMode(t *testing.T) {
	ctx := newContext(t)
	s, err := New(ctx)
	require.NoError(t, err)

	s.SetMode(ContinueSkip)
	scene.Dispatch(ctx, s, scene.KeyDownEvent{Key: ebiten.KeySpace})
	assert.False(t, s.TextDone(), "space does nothing outside normal mode")

	require.NoError(t, s.Update(ctx, 1.0/60))
	assert.NotEmpty(t, s.Choices(), "skip stops at choices")
}

func TestNew_MissingImage(t *testing.T) {
	ctx := newContext(t)
	ctx.Images = &fakeImages{missing: map[string]bool{"char/alice/happy": true}}

	_, err := New(ctx)
	assert.ErrorContains(t, err, "alice/happy")
}

func TestDraw(t *testing.T) {
	ctx := newContext(t)
	fonts, err := render.LoadFonts()
	require.NoError(t, err)
	ctx.Fonts = fonts

	s, err := New(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, 0.3))

	dst := ebiten.NewImage(ctx.Width, ctx.Height)
	assert.NoError(t, s.Draw(ctx, dst, 0.5))
}

func TestContinueMode_String(t *testing.T) {
	assert.Equal(t, "Normal", ContinueNormal.String())
	assert.Equal(t, "Auto", ContinueAuto.String())
	assert.Equal(t, "Skip", ContinueSkip.String())
}
