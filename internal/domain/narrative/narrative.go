// Package narrative provides the node source a narrative session reads from.
//
// A Script is a set of named scenes, each a list of nodes. A Cursor marks the
// position in the script and is small enough to be written into a save file.
package narrative

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// NodeKind identifies the payload of a Node.
type NodeKind int

const (
	NodeNone NodeKind = iota
	NodeText
	NodeChoice
	NodeCharacter
	NodeBackground
	NodeJump
)

// String returns the string representation of the node kind
func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "Text"
	case NodeChoice:
		return "Choice"
	case NodeCharacter:
		return "Character"
	case NodeBackground:
		return "Background"
	case NodeJump:
		return "Jump"
	default:
		return "None"
	}
}

// Text is a line of dialogue. Speaker may be empty for narration.
type Text struct {
	Speaker string `yaml:"speaker,omitempty"`
	Content string `yaml:"content"`
}

// Option is one entry of a choice. Goto names the scene to continue in; an
// empty Goto continues after the choice.
type Option struct {
	Text string `yaml:"text"`
	Goto string `yaml:"goto,omitempty"`
}

// Character shows a character with an expression. Placement is "Left",
// "Right" or empty.
type Character struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`
	Placement  string `yaml:"placement,omitempty"`
}

// Node is a single step of a scene. Exactly one field is set.
type Node struct {
	Text       *Text      `yaml:"text,omitempty"`
	Choice     []Option   `yaml:"choice,omitempty"`
	Character  *Character `yaml:"character,omitempty"`
	Background string     `yaml:"background,omitempty"`
	Jump       string     `yaml:"jump,omitempty"`
}

// Kind returns which payload the node carries.
func (n Node) Kind() NodeKind {
	switch {
	case n.Text != nil:
		return NodeText
	case len(n.Choice) > 0:
		return NodeChoice
	case n.Character != nil:
		return NodeCharacter
	case n.Background != "":
		return NodeBackground
	case n.Jump != "":
		return NodeJump
	default:
		return NodeNone
	}
}

func (n Node) payloads() int {
	count := 0
	if n.Text != nil {
		count++
	}
	if len(n.Choice) > 0 {
		count++
	}
	if n.Character != nil {
		count++
	}
	if n.Background != "" {
		count++
	}
	if n.Jump != "" {
		count++
	}
	return count
}

// Cursor is a position in a script.
type Cursor struct {
	Scene  string `json:"scene"`
	Index  int    `json:"index"`
	Choice int    `json:"choice,omitempty"` // 1-based pending choice, 0 = none
}

// Source yields nodes for a narrative session.
type Source interface {
	// Start returns the cursor a new session begins at.
	Start() Cursor

	// Next returns the node at the cursor and advances it. It returns false
	// once the narrative has ended.
	Next(c *Cursor) (Node, bool)

	// SetChoice records the 1-based option picked for the last choice node.
	SetChoice(c *Cursor, n int)
}

// ErrInvalidScript is returned when a script fails validation.
var ErrInvalidScript = errors.New("invalid script")

// Script is a Source backed by named scenes.
type Script struct {
	StartScene string            `yaml:"start"`
	Scenes     map[string][]Node `yaml:"scenes"`
}

// LoadScript reads and validates a YAML script from fsys.
func LoadScript(fsys fs.FS, path string) (*Script, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the start scene and every jump target exist and that
// each node carries exactly one payload.
func (s *Script) Validate() error {
	if _, ok := s.Scenes[s.StartScene]; !ok {
		return fmt.Errorf("%w: start scene %q not found", ErrInvalidScript, s.StartScene)
	}
	for name, nodes := range s.Scenes {
		for i, n := range nodes {
			if n.payloads() != 1 {
				return fmt.Errorf("%w: %s[%d] must have exactly one payload", ErrInvalidScript, name, i)
			}
			targets := []string{n.Jump}
			for _, o := range n.Choice {
				targets = append(targets, o.Goto)
			}
			for _, target := range targets {
				if target == "" {
					continue
				}
				if _, ok := s.Scenes[target]; !ok {
					return fmt.Errorf("%w: %s[%d] targets unknown scene %q", ErrInvalidScript, name, i, target)
				}
			}
		}
	}
	for _, name := range slices.Sorted(maps.Keys(s.Scenes)) {
		if err := s.checkJumpChain(name); err != nil {
			return err
		}
	}
	return nil
}

// checkJumpChain follows the scenes entered from name that open with a jump.
// Next would never return if that chain came back to a scene already seen.
func (s *Script) checkJumpChain(name string) error {
	seen := map[string]bool{}
	for {
		nodes := s.Scenes[name]
		if len(nodes) == 0 || nodes[0].Kind() != NodeJump {
			return nil
		}
		if seen[name] {
			return fmt.Errorf("%w: scene %q jumps in a cycle", ErrInvalidScript, name)
		}
		seen[name] = true
		name = nodes[0].Jump
	}
}

// Start returns the cursor at the beginning of the start scene.
func (s *Script) Start() Cursor {
	return Cursor{Scene: s.StartScene}
}

// Next returns the node at c and advances c. A pending choice is applied
// first; jump nodes are followed without being returned.
func (s *Script) Next(c *Cursor) (Node, bool) {
	s.applyChoice(c)
	for {
		nodes, ok := s.Scenes[c.Scene]
		if !ok || c.Index < 0 || c.Index >= len(nodes) {
			return Node{}, false
		}
		n := nodes[c.Index]
		c.Index++
		if n.Kind() == NodeJump {
			c.Scene = n.Jump
			c.Index = 0
			continue
		}
		return n, true
	}
}

// SetChoice records the 1-based option picked for the last choice node.
func (s *Script) SetChoice(c *Cursor, n int) {
	c.Choice = n
}

func (s *Script) applyChoice(c *Cursor) {
	if c.Choice == 0 {
		return
	}
	pick := c.Choice
	c.Choice = 0
	nodes := s.Scenes[c.Scene]
	last := c.Index - 1
	if last < 0 || last >= len(nodes) {
		return
	}
	options := nodes[last].Choice
	if pick < 1 || pick > len(options) {
		return
	}
	if target := options[pick-1].Goto; target != "" {
		c.Scene = target
		c.Index = 0
	}
}
