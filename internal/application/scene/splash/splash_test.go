package splash

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/state"
)

type fakeImages struct {
	err error
}

func (f fakeImages) Image(string) (*ebiten.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return ebiten.NewImage(64, 32), nil
}

func TestSplash_Timing(t *testing.T) {
	s := New(3.0)
	ctx := &scene.Context{}

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Update(ctx, 0.5))
		assert.False(t, s.IsDone(), "update %d", i)
		assert.Equal(t, PhaseEnter, s.Phase())
		assert.Nil(t, s.ChangeState(ctx))
	}

	require.NoError(t, s.Update(ctx, 0.5))
	assert.True(t, s.IsDone(), "done after exactly 3.0s")
	assert.Equal(t, PhaseExit, s.Phase())

	req := s.ChangeState(ctx)
	require.NotNil(t, req)
	assert.Equal(t, state.KindMainMenu, req.Kind)
	assert.False(t, req.Resume)
}

func TestSplash_PulseSettles(t *testing.T) {
	s := New(3.0)
	assert.Equal(t, 0.8, s.Scale())

	require.NoError(t, s.Update(&scene.Context{}, 3.0))
	assert.InDelta(t, 0.8+0.2*1.0, s.Scale(), 1e-9, "sin(2.5π) = 1")
}

func TestSplash_SkipOnInput(t *testing.T) {
	tests := []struct {
		name string
		ev   scene.Event
	}{
		{"key", scene.KeyDownEvent{Key: ebiten.KeySpace}},
		{"click", scene.MouseButtonUpEvent{Button: ebiten.MouseButtonLeft}},
		{"gamepad", scene.GamepadButtonDownEvent{Button: ebiten.StandardGamepadButtonRightBottom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(3.0)
			ctx := &scene.Context{}

			scene.Dispatch(ctx, s, tt.ev)
			assert.True(t, s.IsDone())

			require.NoError(t, s.Update(ctx, 1.0/60))
			req := s.ChangeState(ctx)
			require.NotNil(t, req)
			assert.Equal(t, state.KindMainMenu, req.Kind)
		})
	}
}

func TestSplash_Draw(t *testing.T) {
	s := New(3.0)
	dst := ebiten.NewImage(320, 240)

	ctx := &scene.Context{Images: fakeImages{}, Width: 320, Height: 240}
	assert.NoError(t, s.Draw(ctx, dst, 1))

	ctx.Images = fakeImages{err: errors.New("missing Splash")}
	assert.Error(t, s.Draw(ctx, dst, 1))
}

func TestSplash_Kind(t *testing.T) {
	assert.Equal(t, state.KindSplash, New(1).Kind())
	assert.Equal(t, "Enter", PhaseEnter.String())
	assert.Equal(t, "Exit", PhaseExit.String())
}
