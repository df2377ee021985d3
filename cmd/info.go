/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allbin/go-gsend"
	"github.com/allbin/go-gsend/internal/tui/components"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [port]",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Without an argument the configured device, or the one gsend would pick, is
shown.

Examples:
  gsend info /dev/ttyUSB0
  gsend info

For USB devices, this displays vendor/product IDs, serial numbers, interface
numbers, and other USB-specific metadata extracted from sysfs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var portPath string
		if len(args) == 1 {
			portPath = args[0]
		} else {
			var err error
			if portPath, err = resolveDevice(); err != nil {
				return err
			}
		}

		info, err := gsend.GetPortInfo(portPath)
		if err != nil {
			return fmt.Errorf("getting port info for %s: %w", portPath, err)
		}

		fmt.Printf("Port Information: %s\n\n", info.Path)
		fmt.Printf("  Name:        %s\n", info.Name)
		fmt.Printf("  Type:        %s\n", components.PortType(info.Name))
		fmt.Printf("  Description: %s\n", info.Description)

		if info.IsUSB() {
			fmt.Println("\nUSB Device Information:")
			printField("Vendor ID", info.VendorID)
			printField("Product ID", info.ProductID)
			printField("Serial", info.SerialNumber)
			printField("Interface", info.InterfaceNumber)
			printField("Bus", info.BusNumber)
			printField("Device", info.DeviceNumber)
			printField("Manufacturer", info.Manufacturer)
			printField("Product", info.Product)
		}
		return nil
	},
}

func printField(label, value string) {
	if value != "" {
		fmt.Printf("  %-13s %s\n", label+":", value)
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
