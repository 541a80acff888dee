package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/novel/internal/domain/narrative"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "demo", "save.json"))
	assert.False(t, store.Exists())

	bg := "forest"
	in := Data{
		Cursor:     narrative.Cursor{Scene: "intro", Index: 3},
		Background: &bg,
		Characters: []Character{
			{Name: "alice", Expression: "happy"},
			{Name: "bob", Expression: "neutral"},
		},
	}
	require.NoError(t, store.Save(in))
	assert.True(t, store.Exists())

	out, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, Version, out.Version)
	assert.Equal(t, in.Cursor, out.Cursor)
	require.NotNil(t, out.Background)
	assert.Equal(t, "forest", *out.Background)
	assert.Equal(t, in.Characters, out.Characters)
}

func TestStore_NoBackground(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "save.json"))
	require.NoError(t, store.Save(Data{Cursor: narrative.Cursor{Scene: "a"}}))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, out.Background)
	assert.Empty(t, out.Characters)
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "save.json"))

	_, err := store.Load()
	assert.True(t, errors.Is(err, ErrNoSave))
}

func TestStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		is      error
	}{
		{"garbage", "{not json", nil},
		{"wrong version", `{"version":"0.1","cursor":{"scene":"a","index":0},"characters":[]}`, ErrVersion},
		{"missing version", `{"cursor":{"scene":"a","index":0}}`, ErrVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := NewStore(path).Load()
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}
