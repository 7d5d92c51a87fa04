package vectortile

import "math"

// IndexValue identifies an entry in one of a layer's tables. The reserved
// sentinel NotSetIndex means "not set"; validity against a concrete table
// is only checked when the index is actually dereferenced, not at parse
// time.
type IndexValue uint32

// NotSetIndex is the sentinel IndexValue meaning "no entry".
const NotSetIndex IndexValue = math.MaxUint32

// Valid reports whether the index is anything other than the sentinel.
// It does not check against any particular table's size.
func (i IndexValue) Valid() bool {
	return i != NotSetIndex
}
