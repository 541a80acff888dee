// Package state defines the closed set of screen kinds and the transitions
// allowed between them.
package state

import (
	"errors"
	"fmt"
)

// Kind identifies one of the application screens.
type Kind int

const (
	KindSplash Kind = iota
	KindMainMenu
	KindGame
	KindError
)

// ErrInvalidTransition is returned when a screen requests a transition the
// graph does not allow.
var ErrInvalidTransition = errors.New("invalid state transition")

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindSplash:
		return "Splash"
	case KindMainMenu:
		return "MainMenu"
	case KindGame:
		return "Game"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is a member of the closed set.
func (k Kind) Valid() bool {
	return k >= KindSplash && k <= KindError
}

// CanTransition reports whether a screen of kind from may hand over to a
// screen of kind to. Any valid screen may fall into Error; Error is terminal.
func CanTransition(from, to Kind) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == KindError {
		return false
	}
	if to == KindError {
		return true
	}
	switch from {
	case KindSplash:
		return to == KindMainMenu
	case KindMainMenu:
		return to == KindGame
	case KindGame:
		return to == KindMainMenu
	}
	return false
}

// CheckTransition returns ErrInvalidTransition wrapped with both kinds when
// the transition is not allowed.
func CheckTransition(from, to Kind) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
