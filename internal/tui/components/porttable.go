package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/allbin/go-gsend"
	"github.com/allbin/go-gsend/internal/tui/colors"
)

const (
	columnKeyPort = "port"
	columnKeyType = "type"
	columnKeyUSB  = "usb"
	columnKeyDesc = "description"
)

// PortTable renders the attached ports as a static table.
func PortTable(ports []*gsend.PortInfo, width int) string {
	if width < 60 {
		width = 60
	}

	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 16),
		table.NewColumn(columnKeyType, "Type", 16),
		table.NewColumn(columnKeyUSB, "VID:PID", 11),
		table.NewFlexColumn(columnKeyDesc, "Description", 1),
	}

	rows := make([]table.Row, 0, len(ports))
	for _, info := range ports {
		usb := ""
		if info.IsUSB() {
			usb = info.VendorID + ":" + info.ProductID
		}
		desc := info.Description
		if info.Product != "" {
			desc = info.Product
			if info.Manufacturer != "" {
				desc = info.Manufacturer + " " + info.Product
			}
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPort: info.Name,
			columnKeyType: PortType(info.Name),
			columnKeyUSB:  usb,
			columnKeyDesc: desc,
		}))
	}

	return table.New(columns).
		WithRows(rows).
		BorderRounded().
		HeaderStyle(lipgloss.NewStyle().Bold(true).Foreground(colors.Mauve)).
		WithTargetWidth(width).
		View()
}

// PortType classifies a port by its device name.
func PortType(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "ttyusb"), strings.HasPrefix(name, "tty.usb"), strings.HasPrefix(name, "cu.usb"):
		return "USB Serial"
	case strings.HasPrefix(name, "ttyacm"):
		return "USB CDC/ACM"
	case strings.HasPrefix(name, "ttyama"):
		return "ARM Serial"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial"
	case strings.HasPrefix(name, "ttys"):
		return "Standard Serial"
	default:
		return "Serial Port"
	}
}
