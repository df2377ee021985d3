package models

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-gsend/internal/tui/components"
	"github.com/allbin/go-gsend/internal/tui/keys"
	"github.com/allbin/go-gsend/internal/tui/styles"
	"github.com/allbin/go-gsend/stream"
)

// EventMsg carries a controller event into the program.
type EventMsg struct {
	Event stream.Event
}

// DoneMsg is sent once the controller has returned.
type DoneMsg struct {
	Summary stream.Summary
	Err     error
}

// StreamModel is the live view of a streaming run. The controller runs on
// its own goroutine and only talks to the model through messages.
type StreamModel struct {
	journal   *components.Journal
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.StreamKeys

	stop     context.CancelFunc
	running  bool
	stopping bool
	quitting bool
	ready    bool

	state   stream.State
	summary stream.Summary
	err     error

	now func() time.Time
}

// NewStreamModel creates the view. stop is called when the operator asks
// the run to end; the controller finishes the command in flight first.
func NewStreamModel(portPath string, baudRate int, stop context.CancelFunc) *StreamModel {
	return &StreamModel{
		journal:   components.NewJournal(0, 0),
		statusBar: components.NewStatusBar(portPath, baudRate),
		help:      help.New(),
		keys:      keys.NewStreamKeys(),
		stop:      stop,
		running:   true,
		now:       time.Now,
	}
}

// Result returns the final summary and error once DoneMsg has arrived.
func (m *StreamModel) Result() (stream.Summary, error) {
	return m.summary, m.err
}

func (m *StreamModel) Running() bool { return m.running }

func (m *StreamModel) Journal() *components.Journal { return m.journal }

func (m *StreamModel) requestStop() {
	if m.stopping || m.stop == nil {
		return
	}
	m.stopping = true
	m.stop()
}

func (m *StreamModel) Init() tea.Cmd {
	return nil
}

func (m *StreamModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// status bar and help line
		m.journal.SetSize(msg.Width, msg.Height-3)
		m.statusBar.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case EventMsg:
		m.apply(msg.Event)
		return m, nil

	case DoneMsg:
		m.running = false
		m.summary = msg.Summary
		m.err = msg.Err
		m.statusBar.SetSummary(msg.Summary)
		m.statusBar.SetError(msg.Err)
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			if !m.running {
				return m, tea.Quit
			}
			m.requestStop()
			return m, nil

		case key.Matches(msg, m.keys.Quit):
			if !m.running {
				return m, tea.Quit
			}
			m.quitting = true
			m.requestStop()
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Follow):
			m.journal.ToggleViewMode()
			return m, nil

		case key.Matches(msg, m.keys.GotoTop):
			m.journal.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.GotoBottom):
			m.journal.GotoBottom()
			return m, nil
		}
	}

	return m, m.journal.Update(msg)
}

// apply mirrors the controller's counters so the status bar is live before
// the final summary arrives.
func (m *StreamModel) apply(e stream.Event) {
	switch e.Kind {
	case stream.EventState:
		m.state = e.State
		m.statusBar.SetState(e.State)
		return
	case stream.EventWritten:
		m.summary.Sent++
	case stream.EventAck:
		if e.Ack.OK() {
			m.summary.OK++
		} else {
			m.summary.Rejected++
		}
	case stream.EventSkipped:
		m.summary.Skipped++
	}
	m.statusBar.SetSummary(m.summary)
	m.journal.Record(e, m.now())
}

func (m *StreamModel) View() string {
	content := "Initializing..."
	if m.ready {
		content = m.journal.View()
	}

	footer := m.help.View(m.keys)
	if !m.running {
		if m.err != nil {
			footer = styles.ErrorStyle.Render(m.err.Error()) + "  " + footer
		} else {
			footer = styles.OKStyle.Render("done") + "  " + footer
		}
	} else if m.stopping {
		footer = styles.InfoStyle.Render("stopping after current command...") + "  " + footer
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ContentBorderStyle.Render(content),
		footer,
		m.statusBar.View(m.journal.ViewMode(), m.now().Format("15:04:05")),
	)
}
