package vpype

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/allbin/go-gsend/dimension"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"art.svg", "art.gcode"},
		{"/tmp/plots/cat.SVG", "/tmp/plots/cat.gcode"},
		{"noext", "noext.gcode"},
		{"dir.v2/flower.svg", "dir.v2/flower.gcode"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.input); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestArgs(t *testing.T) {
	a4, err := dimension.Resolve("21cm 29.7cm")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "defaults",
			opts: DefaultOptions(),
			want: "-c mcgraw-config.toml read --quantization 0.1 art.svg linemerge --tolerance 0.1 gwrite -p mcgraw art.gcode",
		},
		{
			name: "no config no profile",
			opts: Options{Quantization: 0.05, MergeTolerance: 0.2},
			want: "read --quantization 0.05 art.svg linemerge --tolerance 0.2 gwrite art.gcode",
		},
		{
			name: "scaled",
			opts: Options{Profile: "mcgraw", Quantization: 0.1, MergeTolerance: 0.1, Size: &a4},
			want: "read --quantization 0.1 art.svg linemerge --tolerance 0.1 scaleto 210mm 297mm gwrite -p mcgraw art.gcode",
		},
		{
			name: "split layers",
			opts: Options{Profile: "mcgraw", Quantization: 0.1, MergeTolerance: 0.1, SplitLayers: true},
			want: "read --quantization 0.1 art.svg linemerge --tolerance 0.1 forlayer gwrite -p mcgraw art-%_lid%.gcode end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Args("art.svg", tt.opts)
			if err != nil {
				t.Fatalf("Args() error = %v", err)
			}
			if got := strings.Join(args, " "); got != tt.want {
				t.Errorf("Args() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestArgsBadUnit(t *testing.T) {
	bad := dimension.Size{Width: dimension.Dimension{Value: 1, Unit: "ft"}, Height: dimension.Dimension{Value: 1, Unit: "ft"}}
	if _, err := Args("art.svg", Options{Size: &bad}); !errors.Is(err, dimension.ErrUnsupportedUnit) {
		t.Errorf("Args() error = %v, want ErrUnsupportedUnit", err)
	}
}

func found(string) (string, error)   { return "/usr/bin/vpype", nil }
func missing(string) (string, error) { return "", exec.ErrNotFound }

func TestConvert(t *testing.T) {
	var gotName string
	var gotArgs []string
	runner := RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return nil, nil
	})

	c := NewConverter(DefaultOptions())
	c.Runner = runner
	c.LookPath = found

	out, err := c.Convert(context.Background(), "/plots/art.svg")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out != "/plots/art.gcode" {
		t.Errorf("Convert() = %q, want /plots/art.gcode", out)
	}
	if gotName != "/usr/bin/vpype" {
		t.Errorf("ran %q, want the looked up binary", gotName)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "/plots/art.gcode" {
		t.Errorf("args = %v", gotArgs)
	}
}

func TestConvertSplitLayers(t *testing.T) {
	opts := DefaultOptions()
	opts.SplitLayers = true

	c := NewConverter(opts)
	c.Runner = RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) { return nil, nil })
	c.LookPath = found

	out, err := c.Convert(context.Background(), "art.svg")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out != "art-%_lid%.gcode" {
		t.Errorf("Convert() = %q, want the layer template", out)
	}
}

func TestConvertNotAvailable(t *testing.T) {
	ran := false
	c := NewConverter(DefaultOptions())
	c.LookPath = missing
	c.Runner = RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		ran = true
		return nil, nil
	})

	if _, err := c.Convert(context.Background(), "art.svg"); !errors.Is(err, ErrVpypeNotAvailable) {
		t.Errorf("Convert() error = %v, want ErrVpypeNotAvailable", err)
	}
	if ran {
		t.Error("runner called without a vpype binary")
	}
}

func TestIsAvailable(t *testing.T) {
	c := NewConverter(DefaultOptions())

	c.LookPath = found
	if !c.IsAvailable() {
		t.Error("IsAvailable() = false with vpype in PATH")
	}
	c.LookPath = missing
	if c.IsAvailable() {
		t.Error("IsAvailable() = true without vpype in PATH")
	}
}

func TestConvertFailureCarriesOutput(t *testing.T) {
	exitErr := errors.New("exit status 2")
	c := NewConverter(DefaultOptions())
	c.LookPath = found
	c.Runner = RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("Error: no such profile 'mcgraw'\n"), exitErr
	})

	_, err := c.Convert(context.Background(), "art.svg")
	if !errors.Is(err, exitErr) {
		t.Fatalf("Convert() error = %v, want the run error", err)
	}
	if !strings.Contains(err.Error(), "no such profile") {
		t.Errorf("Convert() error = %q, want vpype output included", err.Error())
	}
}
