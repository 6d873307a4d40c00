// Package screen defines the contract between the app and its screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/aleksandri0/mathpower/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for the text shown on the right
// of the header, such as the current level and progress.
type StatusProvider interface {
	Status() string
}

// FatalMsg stops the program with Err. Screens send it when the quiz flow
// reports that it was driven out of contract.
type FatalMsg struct {
	Err error
}

// Fatal returns a command that emits FatalMsg.
func Fatal(err error) tea.Cmd {
	return func() tea.Msg { return FatalMsg{Err: err} }
}
