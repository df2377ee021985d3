// Package vpype turns SVG artwork into G-code by driving the vpype command
// line tool with the vpype-gcode plugin.
package vpype

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/allbin/go-gsend/dimension"
)

// Binary is the executable looked up in PATH.
const Binary = "vpype"

const (
	DefaultConfig         = "mcgraw-config.toml"
	DefaultProfile        = "mcgraw"
	DefaultQuantization   = 0.1
	DefaultMergeTolerance = 0.1
)

// ErrVpypeNotAvailable is returned when the vpype executable is not in PATH.
var ErrVpypeNotAvailable = errors.New("vpype not found in PATH")

// Options controls the generated pipeline.
type Options struct {
	// Config is a vpype config file holding the gwrite profile. Empty
	// uses vpype's own configuration.
	Config  string
	Profile string

	Quantization   float64
	MergeTolerance float64

	// Size scales the artwork to fit, keeping its aspect ratio. Nil keeps
	// the document size.
	Size *dimension.Size

	// SplitLayers writes one file per layer instead of a single file.
	SplitLayers bool
}

// DefaultOptions returns the pipeline used for the reference plotter.
func DefaultOptions() Options {
	return Options{
		Config:         DefaultConfig,
		Profile:        DefaultProfile,
		Quantization:   DefaultQuantization,
		MergeTolerance: DefaultMergeTolerance,
	}
}

// OutputPath returns the G-code path for input: same directory and base
// name, ".gcode" extension.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".gcode"
}

// layerOutputPath is the forlayer template; vpype substitutes the layer id.
func layerOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "-%_lid%.gcode"
}

// Args builds the vpype argument vector for converting input.
func Args(input string, opts Options) ([]string, error) {
	var args []string
	if opts.Config != "" {
		args = append(args, "-c", opts.Config)
	}

	args = append(args,
		"read", "--quantization", formatFloat(opts.Quantization), input,
		"linemerge", "--tolerance", formatFloat(opts.MergeTolerance),
	)

	if opts.Size != nil {
		size, err := opts.Size.To(dimension.Millimeter)
		if err != nil {
			return nil, err
		}
		args = append(args, "scaleto", millimeters(size.Width.Value), millimeters(size.Height.Value))
	}

	gwrite := []string{"gwrite"}
	if opts.Profile != "" {
		gwrite = append(gwrite, "-p", opts.Profile)
	}

	if opts.SplitLayers {
		args = append(args, "forlayer")
		args = append(args, gwrite...)
		args = append(args, layerOutputPath(input), "end")
	} else {
		args = append(args, gwrite...)
		args = append(args, OutputPath(input))
	}
	return args, nil
}

// millimeters rounds to a micrometer so unit conversion noise stays off the
// command line.
func millimeters(v float64) string {
	return formatFloat(math.Round(v*1000)/1000) + "mm"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Runner runs an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs commands with os/exec.
var ExecRunner Runner = RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
})

// Converter converts SVG files to G-code.
type Converter struct {
	Options Options
	Runner  Runner
	Logger  zerolog.Logger

	// LookPath locates the vpype binary; exec.LookPath when nil.
	LookPath func(file string) (string, error)
}

// NewConverter returns a Converter using the real vpype binary.
func NewConverter(opts Options) *Converter {
	return &Converter{Options: opts, Runner: ExecRunner, Logger: zerolog.Nop()}
}

// IsAvailable reports whether the vpype binary can be found.
func (c *Converter) IsAvailable() bool {
	_, err := c.binary()
	return err == nil
}

func (c *Converter) binary() (string, error) {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(Binary)
	if err != nil {
		return "", ErrVpypeNotAvailable
	}
	return bin, nil
}

// Convert writes the G-code for input and returns the path written. With
// SplitLayers the returned path is the per-layer template.
func (c *Converter) Convert(ctx context.Context, input string) (string, error) {
	bin, err := c.binary()
	if err != nil {
		return "", err
	}

	args, err := Args(input, c.Options)
	if err != nil {
		return "", err
	}

	runner := c.Runner
	if runner == nil {
		runner = ExecRunner
	}

	c.Logger.Debug().Str("bin", bin).Strs("args", args).Msg("running vpype")
	output, err := runner.Run(ctx, bin, args...)
	if err != nil {
		return "", fmt.Errorf("vpype failed on %s: %w (output: %s)", input, err, strings.TrimSpace(string(output)))
	}

	out := OutputPath(input)
	if c.Options.SplitLayers {
		out = layerOutputPath(input)
	}
	c.Logger.Info().Str("input", input).Str("output", out).Msg("converted")
	return out, nil
}
