/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-gsend/dimension"
	"github.com/allbin/go-gsend/internal/tui/styles"
	"github.com/allbin/go-gsend/vpype"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <svg>...",
	Short: "Convert SVG artwork to G-code with vpype",
	Long: `Convert SVG files to G-code next to the input (art.svg becomes
art.gcode) using vpype and the vpype-gcode plugin.

Paths are read with a 0.1px quantization and merged with a 0.1 tolerance. When
--dimensions is given the artwork is scaled to fit that size. With
--split-layers every layer is written to its own file.

Requirements:
- vpype and vpype-gcode installed (pip install vpype vpype-gcode)
- a vpype config with the gwrite profile, mcgraw-config.toml by default

Examples:
  gsend convert art.svg
  gsend convert art.svg -D a4-landscape
  gsend convert art.svg --send -d /dev/ttyUSB0`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		send, _ := cmd.Flags().GetBool("send")

		opts := vpype.DefaultOptions()
		opts.Config = viper.GetString("vpype-config")
		opts.Profile = viper.GetString("profile")
		opts.SplitLayers = viper.GetBool("split-layers")

		if send && (opts.SplitLayers || len(args) > 1) {
			return errors.New("--send needs a single input without --split-layers")
		}

		// Only scale when a size was asked for; the default keeps the
		// document's own page size.
		if viper.IsSet("dimensions") {
			size, err := dimension.Resolve(viper.GetString("dimensions"))
			if err != nil {
				return err
			}
			opts.Size = &size
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		converter := vpype.NewConverter(opts)
		converter.Logger = logger
		if !converter.IsAvailable() {
			return fmt.Errorf("%w: install with pip install vpype vpype-gcode", vpype.ErrVpypeNotAvailable)
		}

		var outputs []string
		for _, input := range args {
			fmt.Println(styles.InfoStyle.Render("# Converting " + input))
			out, err := converter.Convert(ctx, input)
			if err != nil {
				return err
			}
			fmt.Println(styles.OKStyle.Render("# Wrote " + out))
			outputs = append(outputs, out)
		}

		if send {
			return streamFile(ctx, outputs[0], false)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Bool("split-layers", false, "write one G-code file per layer")
	convertCmd.Flags().String("vpype-config", vpype.DefaultConfig, "vpype config file with the gwrite profile")
	convertCmd.Flags().String("profile", vpype.DefaultProfile, "gwrite profile")
	convertCmd.Flags().Bool("send", false, "stream the result to the device once converted")

	_ = viper.BindPFlag("split-layers", convertCmd.Flags().Lookup("split-layers"))
	_ = viper.BindPFlag("vpype-config", convertCmd.Flags().Lookup("vpype-config"))
	_ = viper.BindPFlag("profile", convertCmd.Flags().Lookup("profile"))
}
