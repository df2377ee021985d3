/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-gsend"
	"github.com/allbin/go-gsend/internal/tui/styles"
)

// errInterrupted marks a run the operator stopped; the process exits 130.
var errInterrupted = errors.New("interrupted")

var (
	cfgFile string
	logger  = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gsend",
	Short: "Stream G-code to a plotter over a serial port",
	Long: `gsend streams G-code to a pen plotter or other line-oriented motion
controller over a serial port, one command at a time, waiting for the device's
"ok" before sending the next line.

It can also convert SVG artwork to G-code through vpype and resolve paper
sizes such as "a4-landscape" to physical dimensions.

Configuration is read from flags, GSEND_* environment variables and an
optional gsend.yaml in the current directory or $HOME/.config/gsend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		logger = newLogger(viper.GetBool("verbose"))
		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInterrupted):
		return 130
	default:
		fmt.Fprintf(os.Stderr, "%s %v\n", styles.ErrorStyle.Render("Error:"), err)
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./gsend.yaml or $HOME/.config/gsend/gsend.yaml)")
	rootCmd.PersistentFlags().StringP("device", "d", "", "serial device (default: first USB serial adapter found)")
	rootCmd.PersistentFlags().IntP("speed", "s", gsend.DefaultBaudRate, "baud rate")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics to stderr")

	_ = viper.BindPFlag("device", rootCmd.PersistentFlags().Lookup("device"))
	_ = viper.BindPFlag("baud", rootCmd.PersistentFlags().Lookup("speed"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gsend")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gsend"))
		}
	}

	viper.SetEnvPrefix("GSEND")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// resolveDevice returns the configured device, or guesses one when none is
// set.
func resolveDevice() (string, error) {
	var r gsend.Resolver = gsend.GuessResolver{}
	if device := viper.GetString("device"); device != "" {
		r = gsend.StaticResolver(device)
	}

	path, err := r.Resolve()
	if err != nil {
		return "", fmt.Errorf("no serial device: %w (set one with --device)", err)
	}
	logger.Debug().Str("device", path).Msg("resolved device")
	return path, nil
}
