package vectortile

// ValueKind tags the scalar type carried by a Value. Kinds null,
// InlineSint and InlineUint are only legal in v3 layers.
type ValueKind uint8

const (
	ValueKindString ValueKind = iota
	ValueKindFloat
	ValueKindDouble
	ValueKindInt
	ValueKindUint
	ValueKindSint
	ValueKindBool
	ValueKindNull
	ValueKindInlineSint
	ValueKindInlineUint
)

// Value is a tagged union over the scalar kinds a layer's value table (v2)
// or type-specific tables (v3) can hold. It is a sum type, not a class
// hierarchy: callers switch on Kind.
type Value struct {
	Kind       ValueKind
	StringVal  string
	FloatVal   float32
	DoubleVal  float64
	IntVal     int64
	UintVal    uint64
	BoolVal    bool
}

// StringValue returns (StringVal, true) when Kind is ValueKindString.
func (v Value) StringValue() (string, bool) {
	return v.StringVal, v.Kind == ValueKindString
}

// FloatValue returns (FloatVal, true) when Kind is ValueKindFloat.
func (v Value) FloatValue() (float32, bool) {
	return v.FloatVal, v.Kind == ValueKindFloat
}

// DoubleValue returns (DoubleVal, true) when Kind is ValueKindDouble.
func (v Value) DoubleValue() (float64, bool) {
	return v.DoubleVal, v.Kind == ValueKindDouble
}

// IntValue returns (IntVal, true) when Kind is ValueKindInt.
func (v Value) IntValue() (int64, bool) {
	return v.IntVal, v.Kind == ValueKindInt
}

// UintValue returns (UintVal, true) when Kind is ValueKindUint.
func (v Value) UintValue() (uint64, bool) {
	return v.UintVal, v.Kind == ValueKindUint
}

// SintValue returns (IntVal, true) when Kind is ValueKindSint.
func (v Value) SintValue() (int64, bool) {
	return v.IntVal, v.Kind == ValueKindSint
}

// BoolValue returns (BoolVal, true) when Kind is ValueKindBool.
func (v Value) BoolValue() (bool, bool) {
	return v.BoolVal, v.Kind == ValueKindBool
}

// IsNull reports whether this is the v3 null kind.
func (v Value) IsNull() bool {
	return v.Kind == ValueKindNull
}

func stringValue(s string) Value  { return Value{Kind: ValueKindString, StringVal: s} }
func floatValue(f float32) Value  { return Value{Kind: ValueKindFloat, FloatVal: f} }
func doubleValue(d float64) Value { return Value{Kind: ValueKindDouble, DoubleVal: d} }
func intValue(i int64) Value      { return Value{Kind: ValueKindInt, IntVal: i} }
func uintValue(u uint64) Value    { return Value{Kind: ValueKindUint, UintVal: u} }
func sintValue(i int64) Value     { return Value{Kind: ValueKindSint, IntVal: i} }
func boolValue(b bool) Value      { return Value{Kind: ValueKindBool, BoolVal: b} }
func nullValue() Value            { return Value{Kind: ValueKindNull} }
func inlineSintValue(i int64) Value { return Value{Kind: ValueKindInlineSint, IntVal: i} }
func inlineUintValue(u uint64) Value { return Value{Kind: ValueKindInlineUint, UintVal: u} }
