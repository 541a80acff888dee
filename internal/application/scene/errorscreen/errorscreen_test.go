package errorscreen

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/novel/internal/application/failure"
	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/state"
	"github.com/younwookim/novel/internal/infrastructure/render"
)

type missingImages struct{}

func (missingImages) Image(path string) (*ebiten.Image, error) {
	return nil, errors.New("no " + path)
}

func TestScene_Message(t *testing.T) {
	f := failure.New("playing.Update", errors.New("boom"))
	s := New(f)

	assert.Equal(t, state.KindError, s.Kind())
	assert.Equal(t, "playing.Update: boom", s.Message())
	assert.Same(t, f, s.Failure())
}

func TestScene_Terminal(t *testing.T) {
	ctx := &scene.Context{}
	s := New(failure.New("x", errors.New("y")))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Update(ctx, 1))
		assert.Nil(t, s.ChangeState(ctx))
	}
}

func TestScene_EscapeQuits(t *testing.T) {
	ctx := &scene.Context{}
	s := New(failure.New("x", errors.New("y")))

	scene.Dispatch(ctx, s, scene.KeyDownEvent{Key: ebiten.KeySpace})
	assert.False(t, ctx.QuitRequested())

	scene.Dispatch(ctx, s, scene.KeyDownEvent{Key: ebiten.KeyEscape})
	assert.True(t, ctx.QuitRequested())
}

func TestScene_DrawWithoutAssets(t *testing.T) {
	ctx := &scene.Context{Images: missingImages{}, Width: 320, Height: 240}
	s := New(failure.New("x", errors.New("y")))
	dst := ebiten.NewImage(320, 240)

	assert.NoError(t, s.Draw(ctx, dst, 1), "no fonts")

	fonts, err := render.LoadFonts()
	require.NoError(t, err)
	ctx.Fonts = fonts
	assert.NoError(t, s.Draw(ctx, dst, 0.5))
}
