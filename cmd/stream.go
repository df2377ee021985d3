/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-gsend"
	"github.com/allbin/go-gsend/internal/tui/models"
	"github.com/allbin/go-gsend/internal/tui/styles"
	"github.com/allbin/go-gsend/stream"
)

// streamCmd represents the stream command
var streamCmd = &cobra.Command{
	Use:   "stream [file]",
	Short: "Stream a G-code file to the device",
	Long: `Stream G-code to the device one line at a time.

Each non-empty line is trimmed and sent, and the next line is only sent once
the device has answered. A reply of "ok" counts as accepted; anything else is
reported as an error and streaming continues.

Press Ctrl+C to stop. The command currently in flight is always allowed to
finish before the port is closed.

Example usage:
  gsend stream plot.gcode
  gsend stream plot.gcode -d /dev/ttyUSB0 -s 250000
  cat plot.gcode | gsend stream
  gsend stream plot.gcode --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		tui, _ := cmd.Flags().GetBool("tui")
		if tui && (path == "" || path == "-") {
			return errors.New("--tui needs a file argument, standard input is the terminal")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return streamFile(ctx, path, tui)
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)

	streamCmd.Flags().Duration("settle", stream.DefaultSettleDelay, "time the firmware gets to start after the handshake")
	streamCmd.Flags().Duration("ack-timeout", 0, "give up when the device does not answer within this time (0 waits forever)")
	streamCmd.Flags().Bool("tui", false, "show a live view of the run")
	streamCmd.Flags().Bool("sync-writes", false, "open the device with synchronous writes (O_SYNC)")

	_ = viper.BindPFlag("settle", streamCmd.Flags().Lookup("settle"))
	_ = viper.BindPFlag("ack-timeout", streamCmd.Flags().Lookup("ack-timeout"))
	_ = viper.BindPFlag("sync-writes", streamCmd.Flags().Lookup("sync-writes"))
}

// serialOptions are the port settings applied on top of the baud rate.
func serialOptions() []gsend.Option {
	mode := gsend.WriteModeBuffered
	if viper.GetBool("sync-writes") {
		mode = gsend.WriteModeSynced
	}
	return []gsend.Option{gsend.WithWriteMode(mode)}
}

func streamConfig() (stream.Config, error) {
	device, err := resolveDevice()
	if err != nil {
		return stream.Config{}, err
	}

	config := stream.DefaultConfig()
	config.Port = device
	config.BaudRate = viper.GetInt("baud")
	config.SettleDelay = viper.GetDuration("settle")
	config.AckTimeout = viper.GetDuration("ack-timeout")
	return config, nil
}

// streamFile streams path ("" or "-" for stdin) and maps a stopped run to
// errInterrupted.
func streamFile(ctx context.Context, path string, tui bool) error {
	config, err := streamConfig()
	if err != nil {
		return err
	}

	src, err := stream.OpenSource(path)
	if err != nil {
		return err
	}

	var summary stream.Summary
	if tui {
		summary, err = runStreamTUI(ctx, config, src)
	} else {
		summary, err = runStreamPlain(ctx, config, src)
	}
	if err != nil {
		return err
	}
	if summary.Cancelled {
		return errInterrupted
	}
	return nil
}

// printObserver writes the run as it happens: "> cmd" for each line sent and
// "< reply" in green or red for each answer.
func printObserver(config stream.Config) stream.Observer {
	return stream.ObserverFunc(func(e stream.Event) {
		switch e.Kind {
		case stream.EventState:
			switch e.State {
			case stream.StateConnecting:
				fmt.Println(styles.InfoStyle.Render(fmt.Sprintf("# Connecting to %s at %d baud...", config.Port, config.BaudRate)))
			case stream.StateHandshaking:
				fmt.Println(styles.InfoStyle.Render("# Waking up device..."))
			case stream.StateStreaming:
				fmt.Println(styles.InfoStyle.Render("# Streaming"))
			}
		case stream.EventSent:
			fmt.Println(styles.CommandStyle.Render("> " + e.Command.Text))
		case stream.EventAck:
			fmt.Println(styles.AckStyle(e.Ack).Render("< " + e.Ack.Text()))
		}
	})
}

func runStreamPlain(ctx context.Context, config stream.Config, src stream.Source) (stream.Summary, error) {
	controller := stream.New(config, stream.SerialDialer(serialOptions()...),
		stream.WithObserver(printObserver(config)),
		stream.WithLogger(logger),
	)

	start := time.Now()
	summary, err := controller.Run(ctx, src)
	if err != nil {
		return summary, err
	}

	line := fmt.Sprintf("# Done: %d sent, %d ok, %d rejected in %s",
		summary.Sent, summary.OK, summary.Rejected, time.Since(start).Round(time.Second))
	if summary.Cancelled {
		line = fmt.Sprintf("# Stopped: %d sent, %d ok, %d rejected", summary.Sent, summary.OK, summary.Rejected)
	}
	if summary.Rejected > 0 {
		fmt.Println(styles.RejectStyle.Render(line))
	} else {
		fmt.Println(styles.OKStyle.Render(line))
	}
	return summary, nil
}

type streamResult struct {
	summary stream.Summary
	err     error
}

func runStreamTUI(ctx context.Context, config stream.Config, src stream.Source) (stream.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := models.NewStreamModel(config.Port, config.BaudRate, cancel)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// stderr would draw over the alternate screen
	controller := stream.New(config, stream.SerialDialer(serialOptions()...),
		stream.WithObserver(stream.ObserverFunc(func(e stream.Event) {
			p.Send(models.EventMsg{Event: e})
		})),
		stream.WithLogger(zerolog.Nop()),
	)

	done := make(chan streamResult, 1)
	go func() {
		summary, err := controller.Run(ctx, src)
		done <- streamResult{summary: summary, err: err}
		p.Send(models.DoneMsg{Summary: summary, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return stream.Summary{}, err
	}

	res := <-done
	return res.summary, res.err
}
