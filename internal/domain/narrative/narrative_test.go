package narrative

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
start: intro
scenes:
  intro:
    - background: forest
    - character: {name: alice, expression: happy, placement: Left}
    - text: {speaker: alice, content: "Which way?"}
    - choice:
        - {text: "Left", goto: left}
        - {text: "Right", goto: right}
        - {text: "Stay"}
    - text: {content: "You stay."}
  left:
    - text: {content: "You went left."}
    - jump: right
  right:
    - text: {content: "The road ends."}
`

func loadTestScript(t *testing.T) *Script {
	t.Helper()
	fsys := fstest.MapFS{"story.yaml": {Data: []byte(testScript)}}
	s, err := LoadScript(fsys, "story.yaml")
	require.NoError(t, err)
	return s
}

func TestLoadScript(t *testing.T) {
	s := loadTestScript(t)

	assert.Equal(t, "intro", s.StartScene)
	assert.Len(t, s.Scenes, 3)
	assert.Equal(t, NodeBackground, s.Scenes["intro"][0].Kind())
	assert.Equal(t, NodeCharacter, s.Scenes["intro"][1].Kind())
	assert.Equal(t, NodeText, s.Scenes["intro"][2].Kind())
	assert.Equal(t, NodeChoice, s.Scenes["intro"][3].Kind())
	assert.Equal(t, NodeJump, s.Scenes["left"][1].Kind())
}

func TestLoadScript_Missing(t *testing.T) {
	_, err := LoadScript(fstest.MapFS{}, "story.yaml")
	assert.Error(t, err)
}

func TestParseScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing start", "start: nope\nscenes:\n  a:\n    - text: {content: x}\n"},
		{"empty node", "start: a\nscenes:\n  a:\n    - {}\n"},
		{"two payloads", "start: a\nscenes:\n  a:\n    - {background: x, jump: a}\n"},
		{"unknown goto", "start: a\nscenes:\n  a:\n    - choice: [{text: x, goto: b}]\n"},
		{"unknown jump", "start: a\nscenes:\n  a:\n    - jump: b\n"},
		{"self jump", "start: a\nscenes:\n  a:\n    - jump: a\n"},
		{"jump cycle", "start: a\nscenes:\n  a:\n    - jump: b\n  b:\n    - jump: a\n"},
		{"unreachable jump cycle", "start: a\nscenes:\n  a:\n    - text: {content: x}\n  b:\n    - jump: c\n  c:\n    - jump: b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrInvalidScript), "got %v", err)
		})
	}
}

func TestParseScript_LoopThroughTextIsValid(t *testing.T) {
	s, err := ParseScript([]byte("start: a\nscenes:\n  a:\n    - jump: b\n  b:\n    - text: {content: x}\n    - jump: a\n"))
	require.NoError(t, err)

	c := s.Start()
	nodes := walk(s, &c, 3)
	require.Len(t, nodes, 3)
	for _, n := range nodes {
		assert.Equal(t, "x", n.Text.Content)
	}
}

func TestParseScript_BadYAML(t *testing.T) {
	_, err := ParseScript([]byte("start: [unterminated"))
	assert.Error(t, err)
}

func walk(s *Script, c *Cursor, n int) []Node {
	var out []Node
	for i := 0; i < n; i++ {
		node, ok := s.Next(c)
		if !ok {
			break
		}
		out = append(out, node)
	}
	return out
}

func TestScript_LinearAndChoice(t *testing.T) {
	tests := []struct {
		name   string
		choice int
		want   []string
	}{
		{"left follows jump", 1, []string{"You went left.", "The road ends."}},
		{"right", 2, []string{"The road ends."}},
		{"empty goto continues", 3, []string{"You stay."}},
		{"out of range continues", 9, []string{"You stay."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadTestScript(t)
			c := s.Start()

			nodes := walk(s, &c, 4)
			require.Len(t, nodes, 4)
			require.Equal(t, NodeChoice, nodes[3].Kind())

			s.SetChoice(&c, tt.choice)
			var got []string
			for _, n := range walk(s, &c, 10) {
				got = append(got, n.Text.Content)
			}
			assert.Equal(t, tt.want, got)

			_, ok := s.Next(&c)
			assert.False(t, ok, "narrative has ended")
		})
	}
}

func TestScript_CursorResumes(t *testing.T) {
	s := loadTestScript(t)
	c := s.Start()
	walk(s, &c, 3)

	saved := c
	node, ok := s.Next(&saved)
	require.True(t, ok)
	assert.Equal(t, NodeChoice, node.Kind())
}

func TestNodeKind_String(t *testing.T) {
	assert.Equal(t, "Text", NodeText.String())
	assert.Equal(t, "Choice", NodeChoice.String())
	assert.Equal(t, "Character", NodeCharacter.String())
	assert.Equal(t, "Background", NodeBackground.String())
	assert.Equal(t, "Jump", NodeJump.String())
	assert.Equal(t, "None", NodeNone.String())
}
