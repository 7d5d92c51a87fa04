package vectortile

// structuredValueKind distinguishes a scalar StructuredValue from the
// three v3 container kinds (attribute_decode.go's svKindList/svKindMap/
// svKindNumberList).
type structuredValueKind uint8

const (
	structuredScalar structuredValueKind = iota
	structuredList
	structuredMap
	structuredNumberList
)

// StructuredValue is a v3 attribute value tree: a scalar Value, or a
// recursive list/map/number-list container mirroring the grammar
// decodeStructuredValue (attribute_decode.go) walks. Construct one with
// ScalarStructuredValue, ListStructuredValue, MapStructuredValue, or
// NumberListStructuredValue; the zero value is an empty scalar (kind
// ValueKindString, the zero ValueKind).
type StructuredValue struct {
	kind         structuredValueKind
	scalar       Value
	items        []StructuredValue
	entries      []StructuredMapEntry
	numbers      []NumberListEntry
	scalingIndex IndexValue
}

// StructuredMapEntry is one key/value pair of a map-kind StructuredValue.
type StructuredMapEntry struct {
	Key   string
	Value StructuredValue
}

// NumberListEntry is one entry of a number-list-kind StructuredValue: an
// absolute value, or a null. The builder computes the delta against the
// running accumulator itself, matching decodeStructuredValue's own acc.
type NumberListEntry struct {
	Null  bool
	Value int64
}

// ScalarStructuredValue wraps a plain attribute Value for use as a
// StructuredValue, e.g. as a list element or map value.
func ScalarStructuredValue(v Value) StructuredValue {
	return StructuredValue{kind: structuredScalar, scalar: v}
}

// ListStructuredValue builds a structured list of items, encoded as
// svKindList with items written in order, no keys.
func ListStructuredValue(items ...StructuredValue) StructuredValue {
	return StructuredValue{kind: structuredList, items: items}
}

// MapStructuredValue builds a structured map from key/value entries,
// encoded as svKindMap with each entry's key interned into the layer's
// string table.
func MapStructuredValue(entries ...StructuredMapEntry) StructuredValue {
	return StructuredValue{kind: structuredMap, entries: entries}
}

// NumberListStructuredValue builds a structured number-list: a run of
// scaled numeric samples (or nulls) sharing one scaling table entry,
// encoded as svKindNumberList with delta-zigzag values and the reserved
// all-ones sentinel for a null entry.
func NumberListStructuredValue(scalingIndex IndexValue, entries ...NumberListEntry) StructuredValue {
	return StructuredValue{kind: structuredNumberList, scalingIndex: scalingIndex, numbers: entries}
}
