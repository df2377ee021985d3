package gsend

import (
	"path/filepath"
	"strings"
)

// Resolver picks the device path to connect to when the operator has not
// named one. The streaming core never calls a Resolver itself; callers run it
// once at startup and pass the result on as plain configuration.
type Resolver interface {
	Resolve() (string, error)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func() (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve() (string, error) { return f() }

// StaticResolver always resolves to path.
func StaticResolver(path string) Resolver {
	return ResolverFunc(func() (string, error) {
		if path == "" {
			return "", ErrDeviceNotFound
		}
		return path, nil
	})
}

// usbPrefixes are tried in order before falling back to any listed port
var usbPrefixes = []string{"tty.usb", "ttyUSB", "ttyACM", "cu.usb"}

// GuessResolver prefers USB serial adapters and falls back to the first port
// returned by list. A nil list uses ListPorts.
type GuessResolver struct {
	List func() ([]string, error)
}

// Resolve returns the best candidate port, or ErrDeviceNotFound.
func (g GuessResolver) Resolve() (string, error) {
	list := g.List
	if list == nil {
		list = ListPorts
	}

	ports, err := list()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", ErrDeviceNotFound
	}

	for _, prefix := range usbPrefixes {
		for _, p := range ports {
			if strings.HasPrefix(filepath.Base(p), prefix) {
				return p, nil
			}
		}
	}
	return ports[0], nil
}
