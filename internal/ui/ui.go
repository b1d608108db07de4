// Package ui provides an interactive connection picker.
package ui

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	tea "github.com/charmbracelet/bubbletea"
)

// Selection is the outcome of a picker session.
type Selection struct {
	Connection connection.Connection
	// Current is the connection state after the selection was applied.
	Current connection.Config
	OK      bool
}

// Picker lets the user choose among discovered connections.
type Picker struct {
	program *tea.Program
}

// NewPicker creates a Picker. Discovery starts immediately and runs again
// whenever changes fires; changes may be nil.
func NewPicker(ctx context.Context, loader Loader, applier Applier, changes <-chan struct{}, spinnerFactory SpinnerFactory, opts ...tea.ProgramOption) *Picker {
	if loader == nil {
		panic("loader is required")
	}
	if applier == nil {
		panic("applier is required")
	}
	if spinnerFactory == nil {
		panic("spinnerFactory is required")
	}

	model := newBubbleTeaModel(ctx, loader, applier, spinnerFactory)
	model.pending = loader.LoadAsync(ctx)
	model.changes = changes

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	return &Picker{
		program: tea.NewProgram(model, opts...),
	}
}

// Run blocks until the user selects a connection or cancels.
func (p *Picker) Run() (Selection, error) {
	final, err := p.program.Run()
	if err != nil {
		return Selection{}, fmt.Errorf("connection picker failed: %w", err)
	}
	m, ok := final.(BubbleTeaModel)
	if !ok || m.state.Selected == nil {
		return Selection{}, nil
	}
	return Selection{
		Connection: *m.state.Selected,
		Current:    m.applied,
		OK:         true,
	}, nil
}
