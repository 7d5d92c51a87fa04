package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// ValueIndexer is the external value-index collaborator a LayerBuilder
// may delegate string/value interning to, instead of its own built-in
// content-keyed dictionary. Implementations may be ordered, unordered,
// or content-hash-free, as the caller prefers; LayerBuilder only needs
// the lookup-or-insert contract.
type ValueIndexer interface {
	LookupOrInsert(v Value) IndexValue
}

// LayerBuilder accumulates one layer's dictionaries, scaling tables,
// and committed features. Obtain one from TileBuilder.AddLayer.
type LayerBuilder struct {
	name    string
	version uint32
	extent  uint32

	hasTileCoord bool
	tileCoord    TileCoord

	keyDict   map[string]IndexValue
	keys      []string

	valueDict map[Value]IndexValue
	values    []Value
	extValues ValueIndexer

	doubleDict map[float64]IndexValue
	doubles    []float64
	floatDict  map[float32]IndexValue
	floats     []float32
	intDict    map[int64]IndexValue
	ints       []int64
	uintDict   map[uint64]IndexValue
	uints      []uint64

	hasElevScaling bool
	elevScaling    Scaling
	attrScalings   []Scaling

	features [][]byte
}

func newLayerBuilder(name string, version, extent uint32) *LayerBuilder {
	return &LayerBuilder{
		name:       name,
		version:    version,
		extent:     extent,
		keyDict:    make(map[string]IndexValue),
		valueDict:  make(map[Value]IndexValue),
		doubleDict: make(map[float64]IndexValue),
		floatDict:  make(map[float32]IndexValue),
		intDict:    make(map[int64]IndexValue),
		uintDict:   make(map[uint64]IndexValue),
	}
}

// SetTileCoord attaches a v3 tile address to this layer.
func (l *LayerBuilder) SetTileCoord(z, x, y uint32) {
	l.hasTileCoord = true
	l.tileCoord = TileCoord{Z: z, X: x, Y: y}
}

// SetElevationScaling sets the layer's default elevation scaling.
func (l *LayerBuilder) SetElevationScaling(s Scaling) {
	l.hasElevScaling = true
	l.elevScaling = s
}

// AddAttributeScaling appends an entry to the layer's attribute-scaling
// table and returns its index for features to reference.
func (l *LayerBuilder) AddAttributeScaling(s Scaling) IndexValue {
	l.attrScalings = append(l.attrScalings, s)
	return IndexValue(len(l.attrScalings) - 1)
}

// SetExternalValueIndexer installs a collaborator that takes over value
// interning from the builder's own content-keyed dictionary.
func (l *LayerBuilder) SetExternalValueIndexer(vi ValueIndexer) {
	l.extValues = vi
}

func (l *LayerBuilder) internKey(s string) IndexValue {
	if i, ok := l.keyDict[s]; ok {
		return i
	}
	i := IndexValue(len(l.keys))
	l.keys = append(l.keys, s)
	l.keyDict[s] = i
	return i
}

func (l *LayerBuilder) internValue(v Value) IndexValue {
	if l.extValues != nil {
		return l.extValues.LookupOrInsert(v)
	}
	if i, ok := l.valueDict[v]; ok {
		return i
	}
	i := IndexValue(len(l.values))
	l.values = append(l.values, v)
	l.valueDict[v] = i
	return i
}

func (l *LayerBuilder) internDouble(d float64) IndexValue {
	if i, ok := l.doubleDict[d]; ok {
		return i
	}
	i := IndexValue(len(l.doubles))
	l.doubles = append(l.doubles, d)
	l.doubleDict[d] = i
	return i
}

func (l *LayerBuilder) internFloat(f float32) IndexValue {
	if i, ok := l.floatDict[f]; ok {
		return i
	}
	i := IndexValue(len(l.floats))
	l.floats = append(l.floats, f)
	l.floatDict[f] = i
	return i
}

func (l *LayerBuilder) internInt(v int64) IndexValue {
	if i, ok := l.intDict[v]; ok {
		return i
	}
	i := IndexValue(len(l.ints))
	l.ints = append(l.ints, v)
	l.intDict[v] = i
	return i
}

func (l *LayerBuilder) internUint(v uint64) IndexValue {
	if i, ok := l.uintDict[v]; ok {
		return i
	}
	i := IndexValue(len(l.uints))
	l.uints = append(l.uints, v)
	l.uintDict[v] = i
	return i
}

// AddFeature starts a new feature of the given geometry kind. The
// feature is invisible to this layer builder until its Commit is
// called.
func (l *LayerBuilder) AddFeature(gt GeomType) *FeatureBuilder {
	return newFeatureBuilder(l, gt)
}

func (l *LayerBuilder) serialize() []byte {
	w := wire.NewWriter()
	w.AppendTag(layerFieldName, wire.LengthDelimited)
	w.AppendLengthDelimited([]byte(l.name))

	for _, k := range l.keys {
		w.AppendTag(layerFieldKeys, wire.LengthDelimited)
		w.AppendLengthDelimited([]byte(k))
	}
	for _, v := range l.values {
		w.AppendTag(layerFieldValues, wire.LengthDelimited)
		w.AppendLengthDelimited(serializeValue(v))
	}
	for _, buf := range l.features {
		w.AppendTag(layerFieldFeatures, wire.LengthDelimited)
		w.AppendLengthDelimited(buf)
	}
	w.AppendTag(layerFieldExtent, wire.Varint)
	w.AppendVarint(uint64(l.extent))
	w.AppendTag(layerFieldVersion, wire.Varint)
	w.AppendVarint(uint64(l.version))

	if l.hasTileCoord {
		w.AppendTag(layerFieldTileCoord, wire.LengthDelimited)
		w.AppendLengthDelimited(serializeTileCoord(l.tileCoord))
	}
	for _, d := range l.doubles {
		w.AppendTag(layerFieldDoubleValues, wire.Fixed64)
		w.AppendFixed64(float64ToBits(d))
	}
	for _, f := range l.floats {
		w.AppendTag(layerFieldFloatValues, wire.Fixed32)
		w.AppendFixed32(float32ToBits(f))
	}
	for _, v := range l.ints {
		w.AppendTag(layerFieldIntValues, wire.Varint)
		w.AppendZigzag64(v)
	}
	for _, v := range l.uints {
		w.AppendTag(layerFieldUintValues, wire.Varint)
		w.AppendVarint(v)
	}
	if l.hasElevScaling {
		w.AppendTag(layerFieldElevScaling, wire.LengthDelimited)
		w.AppendLengthDelimited(serializeScaling(l.elevScaling))
	}
	for _, s := range l.attrScalings {
		w.AppendTag(layerFieldAttrScalings, wire.LengthDelimited)
		w.AppendLengthDelimited(serializeScaling(s))
	}
	return w.Bytes()
}

func serializeValue(v Value) []byte {
	w := wire.NewWriter()
	switch v.Kind {
	case ValueKindString:
		w.AppendTag(valueFieldString, wire.LengthDelimited)
		w.AppendLengthDelimited([]byte(v.StringVal))
	case ValueKindFloat:
		w.AppendTag(valueFieldFloat, wire.Fixed32)
		w.AppendFixed32(float32ToBits(v.FloatVal))
	case ValueKindDouble:
		w.AppendTag(valueFieldDouble, wire.Fixed64)
		w.AppendFixed64(float64ToBits(v.DoubleVal))
	case ValueKindInt:
		w.AppendTag(valueFieldInt, wire.Varint)
		w.AppendVarint(uint64(v.IntVal))
	case ValueKindUint:
		w.AppendTag(valueFieldUint, wire.Varint)
		w.AppendVarint(v.UintVal)
	case ValueKindSint:
		w.AppendTag(valueFieldSint, wire.Varint)
		w.AppendZigzag64(v.IntVal)
	case ValueKindBool:
		w.AppendTag(valueFieldBool, wire.Varint)
		b := uint64(0)
		if v.BoolVal {
			b = 1
		}
		w.AppendVarint(b)
	}
	return w.Bytes()
}

func serializeTileCoord(tc TileCoord) []byte {
	w := wire.NewWriter()
	w.AppendTag(tileCoordFieldZ, wire.Varint)
	w.AppendVarint(uint64(tc.Z))
	w.AppendTag(tileCoordFieldX, wire.Varint)
	w.AppendVarint(uint64(tc.X))
	w.AppendTag(tileCoordFieldY, wire.Varint)
	w.AppendVarint(uint64(tc.Y))
	return w.Bytes()
}

func serializeScaling(s Scaling) []byte {
	w := wire.NewWriter()
	w.AppendTag(scalingFieldOffset, wire.Varint)
	w.AppendZigzag64(s.Offset)
	w.AppendTag(scalingFieldMultiplier, wire.Fixed64)
	w.AppendFixed64(float64ToBits(s.Multiplier))
	w.AppendTag(scalingFieldBase, wire.Fixed64)
	w.AppendFixed64(float64ToBits(s.Base))
	return w.Bytes()
}
