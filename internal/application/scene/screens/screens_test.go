package screens_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/novel/internal/application/failure"
	"github.com/younwookim/novel/internal/application/game"
	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/scene/errorscreen"
	"github.com/younwookim/novel/internal/application/scene/screens"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/domain/narrative"
	"github.com/younwookim/novel/internal/infrastructure/config"
	"github.com/younwookim/novel/internal/infrastructure/save"
)

var _ game.Builder = screens.Builder{}

type blankImages struct{}

func (blankImages) Image(string) (*ebiten.Image, error) {
	return ebiten.NewImage(4, 4), nil
}

func newContext(t *testing.T) *scene.Context {
	t.Helper()
	story, err := narrative.ParseScript([]byte(`
start: main
scenes:
  main:
    - text: {content: "Once upon a time"}
`))
	require.NoError(t, err)

	return &scene.Context{
		Config: &config.Config{Engine: &config.EngineConfig{SplashSeconds: 3, TransitionSeconds: 1}},
		Images: blankImages{},
		Saves:  save.NewStore(filepath.Join(t.TempDir(), "save.json")),
		Story:  story,
		Width:  640,
		Height: 480,
	}
}

func TestBuilder_Build(t *testing.T) {
	ctx := newContext(t)
	b := screens.Builder{}

	for _, kind := range []state.Kind{state.KindSplash, state.KindMainMenu, state.KindGame} {
		t.Run(kind.String(), func(t *testing.T) {
			s, err := b.Build(ctx, scene.To(kind))
			require.NoError(t, err)
			assert.Equal(t, kind, s.Kind())
		})
	}
}

func TestBuilder_Initial(t *testing.T) {
	s := screens.Builder{}.Initial(newContext(t))
	assert.Equal(t, state.KindSplash, s.Kind())
}

func TestBuilder_Resume(t *testing.T) {
	ctx := newContext(t)
	b := screens.Builder{}

	_, err := b.Build(ctx, &scene.Request{Kind: state.KindGame, Resume: true})
	assert.ErrorIs(t, err, save.ErrNoSave)

	bg := "hall"
	require.NoError(t, ctx.Saves.Save(save.Data{Cursor: ctx.Story.Start(), Background: &bg}))

	s, err := b.Build(ctx, &scene.Request{Kind: state.KindGame, Resume: true})
	require.NoError(t, err)
	assert.Equal(t, state.KindGame, s.Kind())
}

func TestBuilder_ErrorNeedsFailure(t *testing.T) {
	b := screens.Builder{}

	_, err := b.Build(newContext(t), scene.To(state.KindError))
	assert.Error(t, err)

	_, err = b.Build(newContext(t), scene.To(state.Kind(42)))
	assert.Error(t, err)

	s := b.Error(failure.New("Game.update", errors.New("boom")))
	require.IsType(t, &errorscreen.Scene{}, s)
	assert.Equal(t, "Game.update: boom", s.(*errorscreen.Scene).Message())
}
