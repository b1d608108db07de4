// Package models holds the state rendered by the connection picker.
package models

import (
	"github.com/Cyclone1070/p4bridge/internal/p4/catalog"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/charmbracelet/bubbles/spinner"
)

// State is the picker's view state.
type State struct {
	Snapshot catalog.Snapshot
	// ShowAll lists workspaces bound to other machines as well.
	ShowAll bool
	Index   int
	Loading bool
	Err     error

	Selected *connection.Connection
	Canceled bool

	Spinner spinner.Model
	Width   int
	Height  int
}

// Connections returns the list currently on screen.
func (s State) Connections() []connection.Connection {
	if s.ShowAll {
		return s.Snapshot.PossibleClients
	}
	return s.Snapshot.Known
}

// Highlighted returns the connection under the cursor.
func (s State) Highlighted() (connection.Connection, bool) {
	conns := s.Connections()
	if s.Index < 0 || s.Index >= len(conns) {
		return connection.Connection{}, false
	}
	return conns[s.Index], true
}
