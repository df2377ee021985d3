/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allbin/go-gsend"
	"github.com/allbin/go-gsend/internal/tui/components"
	"github.com/allbin/go-gsend/internal/tui/styles"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List the serial ports a plotter could be attached to.

USB serial adapters (ttyUSB*, tty.usb*), USB CDC/ACM devices (ttyACM*) and
on-board UARTs are listed. Virtual terminals and pseudo-terminals are not.
The port gsend would pick when --device is not given is marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := gsend.ListPorts()
		if err != nil {
			return fmt.Errorf("listing ports: %w", err)
		}

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		ports = filterPorts(ports, filterType)
		if len(ports) == 0 {
			if filterType != "" {
				fmt.Printf("No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Println("No serial ports found")
			}
			return nil
		}

		if tableFormat {
			renderTable(ports)
			return nil
		}

		guess, _ := gsend.GuessResolver{List: func() ([]string, error) { return ports, nil }}.Resolve()
		for _, port := range ports {
			if port == guess {
				fmt.Println(styles.CommandStyle.Render(port + " *"))
			} else {
				fmt.Println(port)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, arm, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a table with USB details")
}

// filterPorts keeps the ports of the requested type
func filterPorts(ports []string, filterType string) []string {
	if filterType == "" || filterType == "all" {
		return ports
	}

	var filtered []string
	for _, port := range ports {
		name := strings.ToLower(filepath.Base(port))
		var keep bool
		switch strings.ToLower(filterType) {
		case "usb":
			keep = strings.HasPrefix(name, "ttyusb") || strings.HasPrefix(name, "ttyacm") ||
				strings.HasPrefix(name, "tty.usb") || strings.HasPrefix(name, "cu.usb")
		case "standard":
			keep = strings.HasPrefix(name, "ttys")
		case "arm":
			keep = strings.HasPrefix(name, "ttyama")
		}
		if keep {
			filtered = append(filtered, port)
		}
	}
	return filtered
}

func renderTable(ports []string) {
	fmt.Printf("Found %d serial port(s):\n", len(ports))

	infos := make([]*gsend.PortInfo, 0, len(ports))
	for _, port := range ports {
		info, err := gsend.GetPortInfo(port)
		if err != nil {
			logger.Debug().Err(err).Str("port", port).Msg("skipping port")
			continue
		}
		infos = append(infos, info)
	}
	fmt.Println(components.PortTable(infos, 100))
}
