package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindSplash, "Splash"},
		{KindMainMenu, "MainMenu"},
		{KindGame, "Game"},
		{KindError, "Error"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestKindConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, Kind(0), KindSplash)
	assert.Equal(t, Kind(1), KindMainMenu)
	assert.Equal(t, Kind(2), KindGame)
	assert.Equal(t, Kind(3), KindError)
	assert.False(t, Kind(-1).Valid())
	assert.False(t, Kind(4).Valid())
}

func TestCanTransition(t *testing.T) {
	all := []Kind{KindSplash, KindMainMenu, KindGame, KindError}
	allowed := map[[2]Kind]bool{
		{KindSplash, KindMainMenu}: true,
		{KindMainMenu, KindGame}:   true,
		{KindGame, KindMainMenu}:   true,
		{KindSplash, KindError}:    true,
		{KindMainMenu, KindError}:  true,
		{KindGame, KindError}:      true,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				want := allowed[[2]Kind{from, to}]
				assert.Equal(t, want, CanTransition(from, to))

				err := CheckTransition(from, to)
				if want {
					assert.NoError(t, err)
				} else {
					assert.True(t, errors.Is(err, ErrInvalidTransition))
				}
			})
		}
	}
}

func TestCanTransition_UnknownKinds(t *testing.T) {
	assert.False(t, CanTransition(Kind(42), KindError))
	assert.False(t, CanTransition(KindGame, Kind(42)))
}
