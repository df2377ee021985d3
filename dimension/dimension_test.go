package dimension

import (
	"errors"
	"math"
	"testing"
)

func mm(w, h float64) Size {
	return Size{Width: Dimension{w, Millimeter}, Height: Dimension{h, Millimeter}}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  Size
	}{
		{"a4", mm(210, 297)},
		{"A4", mm(210, 297)},
		{"  a4-portrait ", mm(210, 297)},
		{"a4-landscape", mm(297, 210)},
		{"A3-Landscape", mm(420, 297)},
		{"a3", mm(297, 420)},
		{"a5", mm(148, 210)},
		{"a5-landscape", mm(210, 148)},
		{"210mm 297mm", mm(210, 297)},
		{"210mm, 297mm", mm(210, 297)},
		{"210mm,297mm", mm(210, 297)},
		{"210MM   297MM", mm(210, 297)},
		{"8.5in 11in", Size{Dimension{8.5, Inch}, Dimension{11, Inch}}},
		{"1m 0.5m", Size{Dimension{1, Meter}, Dimension{0.5, Meter}}},
		{"21cm 29.7cm", Size{Dimension{21, Centimeter}, Dimension{29.7, Centimeter}}},
		{DefaultDimensions, mm(297, 420)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		input       string
		unsupported bool
	}{
		{"", false},
		{"a6", false},
		{"a4-sideways", false},
		{"210mm", false},
		{"210 297", false},
		{"210mm 297mm 10mm", false},
		{"mm 297mm", false},
		{"1.2.3mm 4mm", false},
		{"-5mm 10mm", false},
		{"10xx 10cm", true},
		{"10cm 10pt", true},
		{"10ft 3ft", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Resolve(tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Resolve(%q) error = %v, want *ParseError", tt.input, err)
			}
			if perr.Input != tt.input {
				t.Errorf("ParseError.Input = %q, want %q", perr.Input, tt.input)
			}
			if got := errors.Is(err, ErrUnsupportedUnit); got != tt.unsupported {
				t.Errorf("errors.Is(err, ErrUnsupportedUnit) = %v, want %v", got, tt.unsupported)
			}
		})
	}
}

func TestResolveEquivalentForms(t *testing.T) {
	pairs := [][2]string{
		{"a4", "a4-portrait"},
		{"a4-portrait", "210mm 297mm"},
		{"21cm 29.7cm", "210mm 297mm"},
		{"0.21m 0.297m", "210mm 297mm"},
		{"11.6929in 16.5354in", "a3"},
	}

	for _, p := range pairs {
		a, err := Resolve(p[0])
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", p[0], err)
		}
		b, err := Resolve(p[1])
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", p[1], err)
		}
		if !a.Equal(b, 0.01) {
			t.Errorf("%q = %v, %q = %v, want equal", p[0], a, p[1], b)
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		value    float64
		from, to Unit
		want     float64
	}{
		{1, Inch, Millimeter, 25.4},
		{25.4, Millimeter, Inch, 1},
		{1, Meter, Centimeter, 100},
		{29.7, Centimeter, Millimeter, 297},
		{420, Millimeter, Meter, 0.42},
		{0, Inch, Meter, 0},
		{12, Millimeter, Millimeter, 12},
	}

	for _, tt := range tests {
		got, err := Convert(tt.value, tt.from, tt.to)
		if err != nil {
			t.Fatalf("Convert(%v, %s, %s) error = %v", tt.value, tt.from, tt.to, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConvertUnsupportedUnit(t *testing.T) {
	for _, units := range [][2]Unit{{"ft", Millimeter}, {Millimeter, "pt"}} {
		_, err := Convert(1, units[0], units[1])
		if !errors.Is(err, ErrUnsupportedUnit) {
			t.Errorf("Convert(1, %s, %s) error = %v, want ErrUnsupportedUnit", units[0], units[1], err)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Convert error %T is not *ParseError", err)
		}
	}
}

func TestParseUnit(t *testing.T) {
	for _, s := range []string{"mm", "CM", " m ", "In"} {
		if _, err := ParseUnit(s); err != nil {
			t.Errorf("ParseUnit(%q) error = %v", s, err)
		}
	}
	if _, err := ParseUnit("yd"); !errors.Is(err, ErrUnsupportedUnit) {
		t.Errorf("ParseUnit(yd) error = %v, want ErrUnsupportedUnit", err)
	}
}

func TestSizeTo(t *testing.T) {
	got, err := mm(210, 297).To(Centimeter)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width.Unit != Centimeter || math.Abs(got.Width.Value-21) > 1e-9 || math.Abs(got.Height.Value-29.7) > 1e-9 {
		t.Errorf("To(cm) = %v, want 21cm 29.7cm", got)
	}
}

func TestDimensionString(t *testing.T) {
	tests := []struct {
		d    Dimension
		want string
	}{
		{Dimension{210, Millimeter}, "210mm"},
		{Dimension{29.7, Centimeter}, "29.7cm"},
		{Dimension{8.5, Inch}, "8.5in"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if got := mm(210, 297).String(); got != "210mm 297mm" {
		t.Errorf("Size.String() = %q", got)
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"a4-landscape", "297mm 210mm", true},
		{"a3-portrait", "297mm 420mm", true},
		{"a4", "", false},
		{"letter", "", false},
	}

	for _, tt := range tests {
		got, ok := PageSize(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("PageSize(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}

	// The returned names are a copy; editing them leaves the table intact
	names := PageSizeNames()
	names[0] = "tabloid"
	if _, ok := PageSize("tabloid"); ok {
		t.Error("PageSizeNames() result aliases the page table")
	}
}

func TestPageSizeTable(t *testing.T) {
	names := PageSizeNames()
	if len(names) != 6 {
		t.Fatalf("PageSizeNames() = %v, want 6 names", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("PageSizeNames() not sorted: %v", names)
		}
	}

	// Every entry must resolve and its landscape twin must be the transpose.
	for _, name := range names {
		size, err := Resolve(name)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", name, err)
			continue
		}
		if len(name) > 9 && name[len(name)-9:] == "-portrait" {
			land, err := Resolve(name[:len(name)-9] + "-landscape")
			if err != nil {
				t.Errorf("landscape of %q: %v", name, err)
				continue
			}
			if land.Width != size.Height || land.Height != size.Width {
				t.Errorf("%q = %v, landscape = %v, want transposed", name, size, land)
			}
		}
	}
}
