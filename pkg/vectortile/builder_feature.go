package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// FeatureBuilder accumulates one feature's header, geometry, and
// attributes. The feature record is not added to the owning LayerBuilder
// until Commit is called; Rollback discards it. A feature that fails an
// invariant mid-way (e.g. a zero-area ring) therefore never appears in
// the serialized tile. Keys and values passed to AddProperty or
// AddStructuredProperty are interned into the layer's tables at once and
// stay there after Rollback.
type FeatureBuilder struct {
	layer *LayerBuilder

	hasIntID bool
	intID    uint64
	hasStrID bool
	strID    string

	geomType GeomType
	has3D    bool

	cx, cy int32
	cz     int64

	geom  wire.Writer
	zgeom wire.Writer
	tags  wire.Writer // v2
	attrs wire.Writer // v3
	knots wire.Writer

	elevScalingIndex IndexValue

	committed bool
	rolledBack bool
}

func newFeatureBuilder(l *LayerBuilder, gt GeomType) *FeatureBuilder {
	return &FeatureBuilder{layer: l, geomType: gt, elevScalingIndex: NotSetIndex}
}

// SetID sets the feature's integer id.
func (b *FeatureBuilder) SetID(id uint64) { b.hasIntID = true; b.intID = id }

// SetStringID sets the feature's v3 string id.
func (b *FeatureBuilder) SetStringID(s string) { b.hasStrID = true; b.strID = s }

// Use3D marks this feature as carrying a z-coordinate alongside x/y.
func (b *FeatureBuilder) Use3D() { b.has3D = true }

// SetElevationScalingIndex selects which layer attribute-scaling entry
// this feature's z-deltas are interpreted against.
func (b *FeatureBuilder) SetElevationScalingIndex(i IndexValue) { b.elevScalingIndex = i }

func (b *FeatureBuilder) emitDelta(p Point) {
	dx := p.X() - b.cx
	dy := p.Y() - b.cy
	b.geom.AppendZigzag32(dx)
	b.geom.AppendZigzag32(dy)
	b.cx, b.cy = p.X(), p.Y()
	if b.has3D {
		dz := p.Z() - b.cz
		b.zgeom.AppendZigzag64(dz)
		b.cz = p.Z()
	}
}

// AddPoints writes a MultiPoint/Point command: one MoveTo(len(points))
// followed by each point's delta.
func (b *FeatureBuilder) AddPoints(points []Point) error {
	if len(points) == 0 {
		return formatErrorf("vectortile: AddPoints requires at least one point")
	}
	b.geom.AppendVarint(uint64(commandInteger(cmdMoveTo, uint32(len(points)))))
	for _, p := range points {
		b.emitDelta(p)
	}
	return nil
}

// AddLineString writes one MoveTo(1)+LineTo(n-1) segment.
func (b *FeatureBuilder) AddLineString(points []Point) error {
	if len(points) < 2 {
		return formatErrorf("vectortile: AddLineString requires at least 2 points")
	}
	b.geom.AppendVarint(uint64(commandInteger(cmdMoveTo, 1)))
	b.emitDelta(points[0])
	b.geom.AppendVarint(uint64(commandInteger(cmdLineTo, uint32(len(points)-1))))
	for _, p := range points[1:] {
		b.emitDelta(p)
	}
	return nil
}

// AddRing writes one MoveTo(1)+LineTo(n-1)+ClosePath ring. points must
// be given open (no duplicated closing vertex); the ring is rejected if
// its signed area is zero, since a degenerate ring must never reach the
// wire on the write side even though a reader tolerates and classifies
// one as RingInvalid.
func (b *FeatureBuilder) AddRing(points []Point) error {
	if len(points) < 3 {
		return formatErrorf("vectortile: AddRing requires at least 3 points")
	}
	if signedArea2(points) == 0 {
		return formatErrorf("vectortile: ring has zero area")
	}
	b.geom.AppendVarint(uint64(commandInteger(cmdMoveTo, 1)))
	b.emitDelta(points[0])
	b.geom.AppendVarint(uint64(commandInteger(cmdLineTo, uint32(len(points)-1))))
	for _, p := range points[1:] {
		b.emitDelta(p)
	}
	b.geom.AppendVarint(uint64(commandInteger(cmdClosePath, 1)))
	return nil
}

// AddSpline writes a v3 control-point segment plus its knot vector.
func (b *FeatureBuilder) AddSpline(controlPoints []Point, knots []int64, scalingIndex IndexValue) error {
	if err := b.AddLineString(controlPoints); err != nil {
		return err
	}
	b.knots.AppendTag(knotsFieldScalingIndex, wire.Varint)
	b.knots.AppendVarint(uint64(scalingIndex))
	var kw wire.Writer
	var prev int64
	for _, k := range knots {
		kw.AppendZigzag64(k - prev)
		prev = k
	}
	b.knots.AppendTag(knotsFieldValues, wire.LengthDelimited)
	b.knots.AppendLengthDelimited(kw.Bytes())
	return nil
}

// AddProperty adds a v2 (key, value) attribute pair, interning key and
// value into the layer's dictionaries (or the external value indexer,
// if one is configured).
func (b *FeatureBuilder) AddProperty(key string, value Value) {
	ki := b.layer.internKey(key)
	vi := b.layer.internValue(value)
	b.tags.AppendVarint(uint64(ki))
	b.tags.AppendVarint(uint64(vi))
}

// AddPropertyIndex adds a v2 attribute pair using pre-resolved indices,
// bypassing dictionary interning.
func (b *FeatureBuilder) AddPropertyIndex(keyIndex, valueIndex IndexValue) {
	b.tags.AppendVarint(uint64(keyIndex))
	b.tags.AppendVarint(uint64(valueIndex))
}

// AddStructuredProperty adds a v3 (key, structured value) pair. value may
// be a scalar (ScalarStructuredValue) or a recursive list/map/number-list
// container (ListStructuredValue/MapStructuredValue/
// NumberListStructuredValue), mirroring decodeStructuredValue's grammar
// (attribute_decode.go) so anything that grammar can decode, this can
// also write.
func (b *FeatureBuilder) AddStructuredProperty(key string, value StructuredValue) {
	ki := b.layer.internKey(key)
	b.attrs.AppendVarint(uint64(ki))
	b.appendStructuredValue(&b.attrs, value)
}

// appendStructuredValue writes one structured value - scalar or
// container - dispatching containers to their own recursive grammar and
// scalars to appendScalarStructuredValue.
func (b *FeatureBuilder) appendStructuredValue(w *wire.Writer, value StructuredValue) {
	switch value.kind {
	case structuredList:
		w.AppendVarint(svTag(svKindList, uint64(len(value.items))))
		for _, item := range value.items {
			b.appendStructuredValue(w, item)
		}
	case structuredMap:
		w.AppendVarint(svTag(svKindMap, uint64(len(value.entries))))
		for _, entry := range value.entries {
			ki := b.layer.internKey(entry.Key)
			w.AppendVarint(uint64(ki))
			b.appendStructuredValue(w, entry.Value)
		}
	case structuredNumberList:
		w.AppendVarint(svTag(svKindNumberList, uint64(len(value.numbers))))
		w.AppendVarint(uint64(value.scalingIndex))
		var acc int64
		for _, n := range value.numbers {
			if n.Null {
				w.AppendVarint(numberListNullSentinel)
				continue
			}
			w.AppendZigzag64(n.Value - acc)
			acc = n.Value
		}
	default:
		b.appendScalarStructuredValue(w, value.scalar)
	}
}

func (b *FeatureBuilder) appendScalarStructuredValue(w *wire.Writer, value Value) {
	switch value.Kind {
	case ValueKindInlineSint:
		w.AppendVarint(svTagZigzag(svKindInlineSint, value.IntVal))
	case ValueKindInlineUint:
		w.AppendVarint(svTag(svKindInlineUint, value.UintVal))
	case ValueKindBool:
		v := uint64(0)
		if value.BoolVal {
			v = 1
		}
		w.AppendVarint(svTag(svKindBool, v))
	case ValueKindNull:
		w.AppendVarint(svTag(svKindNull, 0))
	case ValueKindDouble:
		w.AppendVarint(svTag(svKindDoubleIndex, uint64(b.layer.internDouble(value.DoubleVal))))
	case ValueKindFloat:
		w.AppendVarint(svTag(svKindFloatIndex, uint64(b.layer.internFloat(value.FloatVal))))
	case ValueKindString:
		w.AppendVarint(svTag(svKindStringIndex, uint64(b.layer.internKey(value.StringVal))))
	case ValueKindInt, ValueKindSint:
		w.AppendVarint(svTag(svKindIntIndex, uint64(b.layer.internInt(value.IntVal))))
	case ValueKindUint:
		w.AppendVarint(svTag(svKindUintIndex, uint64(b.layer.internUint(value.UintVal))))
	}
}

func svTag(kind uint64, payload uint64) uint64 {
	return (payload << svPayloadShift) | kind
}

func svTagZigzag(kind uint64, v int64) uint64 {
	zz := uint64((v << 1) ^ (v >> 63))
	return (zz << svPayloadShift) | kind
}

// Commit finalizes this feature and appends it to the owning layer
// builder's feature list. Calling Commit twice, or after Rollback, is a
// programmer error reported as a format error rather than panicking.
func (b *FeatureBuilder) Commit() error {
	if b.committed || b.rolledBack {
		return formatErrorf("vectortile: feature already finalized")
	}
	w := wire.NewWriter()
	if b.hasIntID {
		w.AppendTag(featureFieldID, wire.Varint)
		w.AppendVarint(b.intID)
	}
	if b.hasStrID {
		w.AppendTag(featureFieldStringID, wire.LengthDelimited)
		w.AppendLengthDelimited([]byte(b.strID))
	}
	w.AppendTag(featureFieldType, wire.Varint)
	w.AppendVarint(uint64(b.geomType))
	if b.has3D {
		w.AppendTag(featureFieldHas3D, wire.Varint)
		w.AppendVarint(1)
	}
	if b.tags.Len() > 0 {
		w.AppendTag(featureFieldTags, wire.LengthDelimited)
		w.AppendLengthDelimited(b.tags.Bytes())
	}
	if b.geom.Len() > 0 {
		w.AppendTag(featureFieldGeometry, wire.LengthDelimited)
		w.AppendLengthDelimited(b.geom.Bytes())
	}
	if b.has3D && b.zgeom.Len() > 0 {
		w.AppendTag(featureFieldZGeometry, wire.LengthDelimited)
		w.AppendLengthDelimited(b.zgeom.Bytes())
	}
	if b.attrs.Len() > 0 {
		w.AppendTag(featureFieldAttributes, wire.LengthDelimited)
		w.AppendLengthDelimited(b.attrs.Bytes())
	}
	if b.knots.Len() > 0 {
		w.AppendTag(featureFieldKnots, wire.LengthDelimited)
		w.AppendLengthDelimited(b.knots.Bytes())
	}
	if b.elevScalingIndex.Valid() {
		w.AppendTag(featureFieldElevScaling, wire.Varint)
		w.AppendVarint(uint64(b.elevScalingIndex))
	}
	b.layer.features = append(b.layer.features, w.Bytes())
	b.committed = true
	return nil
}

// Rollback discards this feature; it will never appear in the
// serialized tile.
func (b *FeatureBuilder) Rollback() {
	b.rolledBack = true
}
