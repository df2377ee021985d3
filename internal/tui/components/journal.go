package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-gsend/internal/tui/colors"
	"github.com/allbin/go-gsend/stream"
)

type ViewMode int

const (
	ViewModeFollow ViewMode = iota
	ViewModeBrowse
)

func (m ViewMode) String() string {
	if m == ViewModeBrowse {
		return "BROWSE"
	}
	return "FOLLOW"
}

// EntryStatus is the round trip state of a journal row
type EntryStatus int

const (
	EntryPending EntryStatus = iota
	EntryOK
	EntryRejected
	EntrySkipped
)

func (s EntryStatus) symbol() string {
	switch s {
	case EntryOK:
		return "✓"
	case EntryRejected:
		return "✗"
	case EntrySkipped:
		return "·"
	default:
		return "…"
	}
}

// Entry is one source line as it went over the wire
type Entry struct {
	Time    time.Time
	Line    int
	Command string
	Reply   string
	Status  EntryStatus
}

// Journal lists every command sent during a run with its reply.
type Journal struct {
	table    table.Model
	viewMode ViewMode
	entries  []Entry
}

func NewJournal(width, height int) *Journal {
	if width < 60 {
		width = 60
	}
	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(journalColumns(width)),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colors.Subtext0).
		BorderBottom(true).
		Bold(true).
		Foreground(colors.Text)
	s.Selected = s.Selected.
		Foreground(colors.Text).
		Background(colors.Surface1).
		Bold(false)
	t.SetStyles(s)

	return &Journal{table: t, viewMode: ViewModeFollow}
}

func journalColumns(width int) []table.Column {
	timeWidth := 12
	lineWidth := 6
	statusWidth := 3

	// borders and cell padding
	remaining := width - timeWidth - lineWidth - statusWidth - 10
	if remaining < 30 {
		remaining = 30
	}
	commandWidth := (remaining * 6) / 10
	replyWidth := remaining - commandWidth

	return []table.Column{
		{Title: "Time", Width: timeWidth},
		{Title: "Line", Width: lineWidth},
		{Title: "", Width: statusWidth},
		{Title: "Command", Width: commandWidth},
		{Title: "Reply", Width: replyWidth},
	}
}

func (j *Journal) SetSize(width, height int) {
	j.table.SetColumns(journalColumns(width))
	j.table.SetHeight(height)
	j.table.SetWidth(width)
	j.table.UpdateViewport()
}

// Record applies a run event to the journal. State changes are ignored.
func (j *Journal) Record(e stream.Event, at time.Time) {
	switch e.Kind {
	case stream.EventSent:
		j.entries = append(j.entries, Entry{Time: at, Line: e.Command.Line, Command: e.Command.Text})
	case stream.EventAck:
		if n := len(j.entries); n > 0 && j.entries[n-1].Line == e.Command.Line {
			j.entries[n-1].Reply = e.Ack.Text()
			if e.Ack.OK() {
				j.entries[n-1].Status = EntryOK
			} else {
				j.entries[n-1].Status = EntryRejected
			}
		}
	case stream.EventSkipped:
		j.entries = append(j.entries, Entry{Time: at, Line: e.Command.Line, Status: EntrySkipped})
	default:
		return
	}

	j.refresh()
	if j.viewMode == ViewModeFollow {
		j.table.GotoBottom()
	}
}

func (j *Journal) Entries() []Entry {
	return j.entries
}

func (j *Journal) refresh() {
	rows := make([]table.Row, len(j.entries))
	for i, e := range j.entries {
		rows[i] = table.Row{
			e.Time.Format("15:04:05.000"),
			strconv.Itoa(e.Line),
			e.Status.symbol(),
			e.Command,
			e.Reply,
		}
	}
	j.table.SetRows(rows)
	j.table.UpdateViewport()
}

func (j *Journal) ViewMode() ViewMode {
	return j.viewMode
}

func (j *Journal) ToggleViewMode() {
	if j.viewMode == ViewModeFollow {
		j.viewMode = ViewModeBrowse
		j.table.Focus()
	} else {
		j.viewMode = ViewModeFollow
		j.table.GotoBottom()
		j.table.Blur()
	}
	j.table.UpdateViewport()
}

func (j *Journal) GotoTop()    { j.table.GotoTop() }
func (j *Journal) GotoBottom() { j.table.GotoBottom() }

func (j *Journal) Update(msg tea.Msg) tea.Cmd {
	// navigation only while browsing
	if j.viewMode != ViewModeBrowse {
		return nil
	}
	var cmd tea.Cmd
	j.table, cmd = j.table.Update(msg)
	return cmd
}

func (j *Journal) View() string {
	return j.table.View()
}
