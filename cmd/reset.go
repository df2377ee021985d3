/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allbin/go-gsend"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset [port]",
	Short: "Reset the USB serial adapter of a plotter",
	Long: `Perform a USB-level reset on a serial device. This can recover a plotter
whose USB bridge stopped answering without unplugging it.

The device will re-enumerate after reset, which may cause the port path
to change (e.g., /dev/ttyUSB0 might become /dev/ttyUSB1).

Requirements:
- usbreset utility must be installed (from usbutils package)
- Root/sudo permissions required for USB operations

Examples:
  sudo gsend reset /dev/ttyUSB0
  sudo gsend reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !gsend.IsUSBResetAvailable() {
			return fmt.Errorf("%w: install with sudo apt-get install usbutils", gsend.ErrUSBResetNotAvailable)
		}

		var portPath string
		if len(args) == 1 {
			portPath = args[0]
		} else {
			var err error
			if portPath, err = resolveDevice(); err != nil {
				return err
			}
		}

		fmt.Printf("Resetting USB device: %s\n", portPath)
		if err := gsend.ResetUSBDevice(portPath); err != nil {
			if errors.Is(err, gsend.ErrUSBInfoNotAvailable) {
				return fmt.Errorf("%s does not appear to be a USB device: %w", portPath, err)
			}
			return err
		}

		fmt.Println("USB device reset successfully")
		fmt.Println("Device will re-enumerate (port path may change)")
		fmt.Println("\nUse 'gsend list' to see updated device list")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
