package models

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allbin/go-gsend/internal/tui/components"
	"github.com/allbin/go-gsend/stream"
)

func newTestModel(stops *int) *StreamModel {
	m := NewStreamModel("/dev/ttyUSB0", 115200, func() { *stops++ })
	m.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func sent(line int, text string) EventMsg {
	return EventMsg{Event: stream.Event{Kind: stream.EventSent, Command: stream.NewCommand(line, text)}}
}

func written(line int, text string) EventMsg {
	return EventMsg{Event: stream.Event{Kind: stream.EventWritten, Command: stream.NewCommand(line, text)}}
}

func acked(line int, text, reply string) EventMsg {
	return EventMsg{Event: stream.Event{Kind: stream.EventAck, Command: stream.NewCommand(line, text), Ack: stream.Classify(reply)}}
}

func TestStreamModelJournal(t *testing.T) {
	var stops int
	m := newTestModel(&stops)

	m.Update(EventMsg{Event: stream.Event{Kind: stream.EventState, State: stream.StateStreaming}})
	m.Update(sent(1, "G28"))
	m.Update(written(1, "G28"))
	m.Update(acked(1, "G28", "ok"))
	m.Update(EventMsg{Event: stream.Event{Kind: stream.EventSkipped, Command: stream.NewCommand(2, "")}})
	m.Update(sent(3, "G99"))
	m.Update(written(3, "G99"))
	m.Update(acked(3, "G99", "error: unknown command"))

	entries := m.Journal().Entries()
	if len(entries) != 3 {
		t.Fatalf("journal has %d entries, want 3", len(entries))
	}
	if entries[0].Status != components.EntryOK || entries[0].Reply != "ok" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Status != components.EntrySkipped {
		t.Errorf("entry 1 = %+v, want skipped", entries[1])
	}
	if entries[2].Status != components.EntryRejected || entries[2].Reply != "error: unknown command" {
		t.Errorf("entry 2 = %+v", entries[2])
	}

	summary, _ := m.Result()
	if summary.Sent != 2 || summary.OK != 1 || summary.Rejected != 1 || summary.Skipped != 1 {
		t.Errorf("live summary = %+v", summary)
	}
	if m.View() == "" {
		t.Error("View() is empty")
	}
}

func TestStreamModelCountsOnlyWrittenCommands(t *testing.T) {
	var stops int
	m := newTestModel(&stops)

	m.Update(sent(1, "G28"))
	m.Update(written(1, "G28"))
	m.Update(acked(1, "G28", "ok"))
	// The second write fails, so the controller never reports it written
	m.Update(sent(2, "G1 X10"))

	summary, _ := m.Result()
	if summary.Sent != 1 {
		t.Errorf("live Sent = %d, want 1", summary.Sent)
	}
	if n := len(m.Journal().Entries()); n != 2 {
		t.Errorf("journal has %d entries, want 2", n)
	}
}

func TestStreamModelStopWhileRunning(t *testing.T) {
	var stops int
	m := newTestModel(&stops)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if isQuit(cmd) {
		t.Fatal("stop quit the program while the run is active")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if stops != 1 {
		t.Errorf("stop called %d times, want 1", stops)
	}

	_, cmd = m.Update(DoneMsg{Summary: stream.Summary{Sent: 4, OK: 4, Cancelled: true}})
	if isQuit(cmd) {
		t.Error("program quit on completion without a quit request")
	}
	if m.Running() {
		t.Error("Running() = true after DoneMsg")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if !isQuit(cmd) {
		t.Error("stop after completion did not quit")
	}
}

func TestStreamModelQuitWaitsForRun(t *testing.T) {
	var stops int
	m := newTestModel(&stops)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if isQuit(cmd) {
		t.Fatal("quit did not wait for the run to finish")
	}
	if stops != 1 {
		t.Errorf("stop called %d times, want 1", stops)
	}

	runErr := errors.New("read failed")
	_, cmd = m.Update(DoneMsg{Err: runErr})
	if !isQuit(cmd) {
		t.Error("program did not quit once the run finished")
	}
	if _, err := m.Result(); !errors.Is(err, runErr) {
		t.Errorf("Result() error = %v, want %v", err, runErr)
	}
}

func TestStreamModelFollowToggle(t *testing.T) {
	var stops int
	m := newTestModel(&stops)

	if m.Journal().ViewMode() != components.ViewModeFollow {
		t.Fatal("journal does not start in follow mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if m.Journal().ViewMode() != components.ViewModeBrowse {
		t.Error("f did not switch to browse mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if m.Journal().ViewMode() != components.ViewModeFollow {
		t.Error("f did not switch back to follow mode")
	}
}
