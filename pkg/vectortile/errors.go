package vectortile

import "fmt"

// FormatError reports malformed wire bytes: truncated messages, varint
// overflow, or an unknown wire type in a field that cannot be skipped.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

func formatErrorf(format string, args ...interface{}) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// GeometryError reports a command stream that violates MVT spec 4.3.
// Messages about a malformed command name the spec section they violate,
// in the reference implementation's wording so that fixture comparisons
// still match; "command parameters exhausted" and the unknown geometry
// type message carry no section.
type GeometryError struct {
	Msg string
}

func (e *GeometryError) Error() string { return e.Msg }

func geometryErrorf(format string, args ...interface{}) error {
	return &GeometryError{Msg: fmt.Sprintf(format, args...)}
}

// TypeError reports that an attribute value was read as the wrong scalar
// kind.
type TypeError struct{}

func (e *TypeError) Error() string { return "wrong property value type" }

// VersionError reports a layer version outside {1, 2, 3}, or a v3 tile
// coordinate outside the valid zoom range.
type VersionError struct {
	Version uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unknown vector tile version %d", e.Version)
}

// OutOfRangeError reports a table index at or beyond the table size. Its
// LayerNum field is not set by this package's readers and stays 0.
type OutOfRangeError struct {
	Index    uint32
	LayerNum int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("Index out of range: %d", e.Index)
}
