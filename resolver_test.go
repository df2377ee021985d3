package gsend

import (
	"errors"
	"testing"
)

func TestGuessResolver(t *testing.T) {
	tests := []struct {
		name  string
		ports []string
		want  string
	}{
		{"macOS adapter first", []string{"/dev/cu.usbmodem1", "/dev/tty.usbserial-1420", "/dev/ttyUSB0"}, "/dev/tty.usbserial-1420"},
		{"linux usb adapter", []string{"/dev/ttyS0", "/dev/ttyUSB1"}, "/dev/ttyUSB1"},
		{"cdc acm", []string{"/dev/ttyAMA0", "/dev/ttyACM0"}, "/dev/ttyACM0"},
		{"fallback to first", []string{"/dev/ttyS0", "/dev/ttyS1"}, "/dev/ttyS0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := GuessResolver{List: func() ([]string, error) { return tt.ports, nil }}
			got, err := r.Resolve()
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGuessResolverNoPorts(t *testing.T) {
	r := GuessResolver{List: func() ([]string, error) { return nil, nil }}
	if _, err := r.Resolve(); err != ErrDeviceNotFound {
		t.Errorf("Resolve() error = %v, want ErrDeviceNotFound", err)
	}
}

func TestGuessResolverListError(t *testing.T) {
	failure := errors.New("permission denied")
	r := GuessResolver{List: func() ([]string, error) { return nil, failure }}
	if _, err := r.Resolve(); !errors.Is(err, failure) {
		t.Errorf("Resolve() error = %v, want %v", err, failure)
	}
}

func TestStaticResolver(t *testing.T) {
	got, err := StaticResolver("/dev/ttyUSB3").Resolve()
	if err != nil || got != "/dev/ttyUSB3" {
		t.Errorf("StaticResolver.Resolve() = %q, %v", got, err)
	}
	if _, err := StaticResolver("").Resolve(); err != ErrDeviceNotFound {
		t.Errorf("empty StaticResolver error = %v, want ErrDeviceNotFound", err)
	}
}
