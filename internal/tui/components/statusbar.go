package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-gsend/internal/tui/colors"
	"github.com/allbin/go-gsend/internal/tui/styles"
	"github.com/allbin/go-gsend/stream"
)

type StatusBar struct {
	portPath string
	baudRate int
	state    stream.State
	summary  stream.Summary
	err      error
	width    int
}

func NewStatusBar(portPath string, baudRate int) *StatusBar {
	return &StatusBar{
		portPath: portPath,
		baudRate: baudRate,
		state:    stream.StateIdle,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetState(s stream.State) {
	sb.state = s
}

func (sb *StatusBar) SetSummary(s stream.Summary) {
	sb.summary = s
}

func (sb *StatusBar) SetError(err error) {
	sb.err = err
}

func (sb *StatusBar) indicator() string {
	switch {
	case sb.err != nil:
		return styles.ErrorStyle.Render("✗")
	case sb.state == stream.StateStreaming:
		return styles.StateStyle(sb.state).Render("●")
	default:
		return styles.StateStyle(sb.state).Render("○")
	}
}

// View renders the bar: view mode, port and state on the left, counters,
// line settings and clock on the right.
func (sb *StatusBar) View(mode ViewMode, timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	modeBackground := colors.Blue
	if mode == ViewModeBrowse {
		modeBackground = colors.Peach
	}
	modeSection := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(modeBackground).
		Bold(true).
		Padding(0, 1).
		Render(mode.String())

	port := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(sb.portPath)

	state := lipgloss.NewStyle().
		Padding(0, 1).
		Render(sb.indicator() + " " + sb.state.String())

	counters := fmt.Sprintf("sent %d  ok %d  err %d", sb.summary.Sent, sb.summary.OK, sb.summary.Rejected)
	if sb.summary.Cancelled {
		counters += "  stopped"
	}
	countersSection := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(counters)

	line := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(fmt.Sprintf("⚡ %d baud", sb.baudRate))

	clock := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1).
		Render(timestamp)

	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1).
		Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, modeSection, port, state, divider)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, countersSection, divider, line, divider, clock)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
