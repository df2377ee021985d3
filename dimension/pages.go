package dimension

import "sort"

// DefaultDimensions is the artwork size used when none is given (A3
// portrait).
const DefaultDimensions = "297mm 420mm"

// pageSizes maps page size names to their literal dimensions.
var pageSizes = map[string]string{
	"a3-portrait":  "297mm 420mm",
	"a3-landscape": "420mm 297mm",
	"a4-portrait":  "210mm 297mm",
	"a4-landscape": "297mm 210mm",
	"a5-portrait":  "148mm 210mm",
	"a5-landscape": "210mm 148mm",
}

var bareSizes = map[string]struct{}{
	"a3": {},
	"a4": {},
	"a5": {},
}

// PageSize returns the literal dimensions of a named page size, such as
// "297mm 210mm" for "a4-landscape".
func PageSize(name string) (string, bool) {
	literal, ok := pageSizes[name]
	return literal, ok
}

// PageSizeNames returns the known page size names in sorted order.
func PageSizeNames() []string {
	names := make([]string, 0, len(pageSizes))
	for name := range pageSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
