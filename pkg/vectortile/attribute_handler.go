package vectortile

// AttributeHandler receives callbacks while decoding a feature's
// attributes. In a v2 layer only AttributeKey/AttributeValue* fire, always
// at depth 0. In a v3 layer the full structured grammar (lists, maps,
// number-lists) can nest, incrementing depth at each level.
type AttributeHandler interface {
	AttributeKey(key string, depth int) bool
	AttributeValueString(v string, depth int) bool
	AttributeValueBool(v bool, depth int) bool
	AttributeValueNull(depth int) bool
	AttributeValueDouble(v float64, depth int) bool
	AttributeValueFloat(v float32, depth int) bool
	AttributeValueInt(v int64, depth int) bool
	AttributeValueUint(v uint64, depth int) bool

	StartListAttribute(count uint32, depth int) bool
	EndListAttribute(depth int) bool

	StartMapAttribute(count uint32, depth int) bool
	EndMapAttribute(depth int) bool

	StartNumberList(count uint32, scalingIndex IndexValue, depth int) bool
	NumberListValue(v int64, depth int) bool
	NumberListNullValue(depth int) bool
	EndNumberList(depth int) bool
}

// AttributeIndexTap is an optional interface a handler may implement to
// also observe the raw table indices behind each key/value, rather than
// only their resolved content.
type AttributeIndexTap interface {
	KeyIndex(i IndexValue, depth int) bool
	ValueIndex(i IndexValue, depth int) bool
}

func tapKeyIndex(h AttributeHandler, i IndexValue, depth int) bool {
	if tap, ok := h.(AttributeIndexTap); ok {
		return tap.KeyIndex(i, depth)
	}
	return true
}

func tapValueIndex(h AttributeHandler, i IndexValue, depth int) bool {
	if tap, ok := h.(AttributeIndexTap); ok {
		return tap.ValueIndex(i, depth)
	}
	return true
}

// NopAttributeHandler is an embeddable no-op AttributeHandler; embed it and
// override only the callbacks a concrete handler cares about.
type NopAttributeHandler struct{}

func (NopAttributeHandler) AttributeKey(string, int) bool          { return true }
func (NopAttributeHandler) AttributeValueString(string, int) bool  { return true }
func (NopAttributeHandler) AttributeValueBool(bool, int) bool      { return true }
func (NopAttributeHandler) AttributeValueNull(int) bool            { return true }
func (NopAttributeHandler) AttributeValueDouble(float64, int) bool { return true }
func (NopAttributeHandler) AttributeValueFloat(float32, int) bool  { return true }
func (NopAttributeHandler) AttributeValueInt(int64, int) bool      { return true }
func (NopAttributeHandler) AttributeValueUint(uint64, int) bool    { return true }
func (NopAttributeHandler) StartListAttribute(uint32, int) bool    { return true }
func (NopAttributeHandler) EndListAttribute(int) bool              { return true }
func (NopAttributeHandler) StartMapAttribute(uint32, int) bool     { return true }
func (NopAttributeHandler) EndMapAttribute(int) bool               { return true }
func (NopAttributeHandler) StartNumberList(uint32, IndexValue, int) bool {
	return true
}
func (NopAttributeHandler) NumberListValue(int64, int) bool     { return true }
func (NopAttributeHandler) NumberListNullValue(int) bool        { return true }
func (NopAttributeHandler) EndNumberList(int) bool              { return true }
