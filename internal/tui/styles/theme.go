package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-gsend/internal/tui/colors"
	"github.com/allbin/go-gsend/stream"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Line prefixes for plain output: "> G1 X0", "< ok"
	CommandStyle = lipgloss.NewStyle().Bold(true)
	OKStyle      = lipgloss.NewStyle().Foreground(colors.Green)
	RejectStyle  = lipgloss.NewStyle().Foreground(colors.Red)
	SkippedStyle = lipgloss.NewStyle().Foreground(colors.Overlay0)
	InfoStyle    = lipgloss.NewStyle().Foreground(colors.Mauve)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)

	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	activeStyle = lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true)

	stoppedStyle = lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true)
)

// StateStyle colors a run state: green while streaming, yellow while
// setting up or draining, red once closed.
func StateStyle(s stream.State) lipgloss.Style {
	switch s {
	case stream.StateStreaming:
		return activeStyle
	case stream.StateConnecting, stream.StateHandshaking, stream.StateDraining:
		return pendingStyle
	default:
		return stoppedStyle
	}
}

// AckStyle colors a reply.
func AckStyle(a stream.Ack) lipgloss.Style {
	if a.OK() {
		return OKStyle
	}
	return RejectStyle
}
