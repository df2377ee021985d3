// Package dimension parses artwork sizes such as "a4-landscape" or
// "21cm, 29.7cm" into physical measurements.
package dimension

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a length unit.
type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Meter      Unit = "m"
	Inch       Unit = "in"
)

// Length of one unit in meters.
var ratios = map[Unit]float64{
	Millimeter: 0.001,
	Centimeter: 0.01,
	Inch:       0.0254,
	Meter:      1.0,
}

var (
	// ErrUnsupportedUnit is wrapped by a ParseError naming a unit outside
	// mm, cm, m and in.
	ErrUnsupportedUnit = errors.New("unsupported unit")

	// ErrMalformed is wrapped by a ParseError for input that is neither a
	// page size nor two "<number><unit>" values.
	ErrMalformed = errors.New("expected a page size or two values like \"210mm 297mm\"")
)

// ParseError reports input that could not be resolved.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dimensions %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseUnit validates a unit name. Matching is case-insensitive.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ratios[u]; !ok {
		return "", &ParseError{Input: s, Err: fmt.Errorf("%w %q", ErrUnsupportedUnit, s)}
	}
	return u, nil
}

// Convert expresses value in unit from as a value in unit to.
func Convert(value float64, from, to Unit) (float64, error) {
	rf, ok := ratios[from]
	if !ok {
		return 0, &ParseError{Input: string(from), Err: fmt.Errorf("%w %q", ErrUnsupportedUnit, from)}
	}
	rt, ok := ratios[to]
	if !ok {
		return 0, &ParseError{Input: string(to), Err: fmt.Errorf("%w %q", ErrUnsupportedUnit, to)}
	}
	if from == to {
		return value, nil
	}
	return value * rf / rt, nil
}

// Dimension is a non-negative length.
type Dimension struct {
	Value float64
	Unit  Unit
}

// To converts d to unit u.
func (d Dimension) To(u Unit) (Dimension, error) {
	v, err := Convert(d.Value, d.Unit, u)
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{Value: v, Unit: u}, nil
}

// String formats d the way Resolve accepts it, e.g. "210mm".
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + string(d.Unit)
}

// Size is a width and height pair.
type Size struct {
	Width  Dimension
	Height Dimension
}

// To converts both sides to unit u.
func (s Size) To(u Unit) (Size, error) {
	w, err := s.Width.To(u)
	if err != nil {
		return Size{}, err
	}
	h, err := s.Height.To(u)
	if err != nil {
		return Size{}, err
	}
	return Size{Width: w, Height: h}, nil
}

// Equal reports whether s and other describe the same physical size within
// tol millimeters on each side.
func (s Size) Equal(other Size, tol float64) bool {
	a, err := s.To(Millimeter)
	if err != nil {
		return false
	}
	b, err := other.To(Millimeter)
	if err != nil {
		return false
	}
	return math.Abs(a.Width.Value-b.Width.Value) <= tol &&
		math.Abs(a.Height.Value-b.Height.Value) <= tol
}

// String formats s as "<width> <height>".
func (s Size) String() string {
	return s.Width.String() + " " + s.Height.String()
}

var sizePattern = regexp.MustCompile(`^([0-9.]+)([a-z]+)(?:\s*,\s*|\s+)([0-9.]+)([a-z]+)$`)

// Resolve turns a page size name or an explicit "<w><unit> <h><unit>" pair
// into a Size. Input is case-insensitive and page size names take precedence
// over literal parsing. Bare "a3", "a4" and "a5" mean portrait.
func Resolve(input string) (Size, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if _, ok := bareSizes[s]; ok {
		s += "-portrait"
	}
	if literal, ok := PageSize(s); ok {
		s = literal
	}

	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return Size{}, &ParseError{Input: input, Err: ErrMalformed}
	}

	w, err := parseDimension(m[1], m[2])
	if err != nil {
		return Size{}, &ParseError{Input: input, Err: err}
	}
	h, err := parseDimension(m[3], m[4])
	if err != nil {
		return Size{}, &ParseError{Input: input, Err: err}
	}
	return Size{Width: w, Height: h}, nil
}

func parseDimension(number, unit string) (Dimension, error) {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Dimension{}, fmt.Errorf("invalid number %q", number)
	}
	u := Unit(unit)
	if _, ok := ratios[u]; !ok {
		return Dimension{}, fmt.Errorf("%w %q", ErrUnsupportedUnit, unit)
	}
	return Dimension{Value: v, Unit: u}, nil
}
