package ui

import (
	"context"

	"github.com/Cyclone1070/p4bridge/internal/p4/catalog"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/ui/models"
	"github.com/Cyclone1070/p4bridge/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	ctx     context.Context
	loader  Loader
	applier Applier

	// pending is the discovery whose result is still wanted.
	pending *catalog.Pending
	applied connection.Config

	// changes signals that the saved connections changed on disk.
	changes <-chan struct{}
}

func newBubbleTeaModel(ctx context.Context, loader Loader, applier Applier, spinnerFactory SpinnerFactory) BubbleTeaModel {
	return BubbleTeaModel{
		state: models.State{
			Spinner: spinnerFactory(),
			Loading: true,
		},
		ctx:     ctx,
		loader:  loader,
		applier: applier,
	}
}

// Internal messages
type snapshotMsg struct {
	pending *catalog.Pending
	snap    catalog.Snapshot
}

type loadFailedMsg struct {
	pending *catalog.Pending
	err     error
}

type sourcesChangedMsg struct{}

// Init starts the first discovery.
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(m.state.Spinner.Tick, waitForSnapshot(m.ctx, m.pending), listenForChanges(m.changes))
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		if msg.pending != m.pending {
			return m, nil
		}
		m.state.Loading = false
		m.state.Err = nil
		m.state.Snapshot = msg.snap
		m.state.Index = m.selectedIndex()

	case loadFailedMsg:
		if msg.pending != m.pending {
			return m, nil
		}
		m.state.Loading = false
		m.state.Err = msg.err

	case sourcesChangedMsg:
		next, cmd := m.refresh()
		return next, tea.Batch(cmd, listenForChanges(m.changes))
	}

	return m, nil
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.state.Canceled = true
		return m, tea.Quit

	case "up", "k":
		if m.state.Index > 0 {
			m.state.Index--
		}

	case "down", "j":
		if m.state.Index < len(m.state.Connections())-1 {
			m.state.Index++
		}

	case "a":
		if m.state.Loading {
			return m, nil
		}
		m.state.ShowAll = !m.state.ShowAll
		m.state.Index = m.selectedIndex()

	case "r":
		return m.refresh()

	case "enter":
		if m.state.Loading {
			return m, nil
		}
		sel, ok := m.state.Highlighted()
		if !ok {
			return m, nil
		}
		m.applied = m.applier.Apply(sel.Config())
		m.state.Selected = &sel
		return m, tea.Quit
	}

	return m, nil
}

// refresh abandons any discovery in flight and starts a new one.
func (m BubbleTeaModel) refresh() (tea.Model, tea.Cmd) {
	m.pending = m.loader.LoadAsync(m.ctx)
	m.state.Loading = true
	m.state.Err = nil
	return m, tea.Batch(m.state.Spinner.Tick, waitForSnapshot(m.ctx, m.pending))
}

// selectedIndex puts the cursor on the best match for the current
// connection, or the top of the list.
func (m BubbleTeaModel) selectedIndex() int {
	best, ok := catalog.FindBestMatch(m.state.Snapshot.Current, m.state.Connections())
	if !ok {
		return 0
	}
	for i, c := range m.state.Connections() {
		if c == best {
			return i
		}
	}
	return 0
}

func waitForSnapshot(ctx context.Context, p *catalog.Pending) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := p.Wait(ctx)
		if err != nil {
			return loadFailedMsg{pending: p, err: err}
		}
		return snapshotMsg{pending: p, snap: snap}
	}
}

func listenForChanges(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sourcesChangedMsg{}
	}
}
