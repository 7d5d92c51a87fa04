package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// TileCoord is the v3 (z, x, y) tile address a layer may carry.
type TileCoord struct {
	Z, X, Y uint32
}

// Layer borrows a single layer submessage. Construction records the
// layer's scalar header fields, tile coordinate, key table, v3 typed
// value tables and scalings, and keeps each feature and v2 value as a
// raw sub-slice; no feature or v2 value is decoded until asked.
type Layer struct {
	buf []byte

	name    string
	version uint32
	extent  uint32

	hasTileCoord bool
	tileCoord    TileCoord

	keys        []string
	values      [][]byte // raw Value submessages, v2 table
	features    [][]byte // raw Feature submessages

	doubleValues []float64
	floatValues  []float32
	intValues    []int64
	uintValues   []uint64

	hasElevScaling bool
	elevScaling    Scaling
	attrScalings   []Scaling
}

func newLayer(buf []byte) (*Layer, error) {
	l := &Layer{buf: buf, extent: 4096, version: 2}
	r := wire.NewReader(buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return nil, formatErrorf("wire: %v", err)
		}
		switch field {
		case layerFieldName:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.name = string(b)
		case layerFieldExtent:
			v, err := r.ReadVarint()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.extent = uint32(v)
		case layerFieldVersion:
			v, err := r.ReadVarint()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.version = uint32(v)
		case layerFieldKeys:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.keys = append(l.keys, string(b))
		case layerFieldValues:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.values = append(l.values, b)
		case layerFieldFeatures:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.features = append(l.features, b)
		case layerFieldTileCoord:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			tc, err := parseTileCoord(b)
			if err != nil {
				return nil, err
			}
			l.hasTileCoord = true
			l.tileCoord = tc
		case layerFieldDoubleValues:
			v, err := r.ReadFixed64()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.doubleValues = append(l.doubleValues, float64FromBits(v))
		case layerFieldFloatValues:
			v, err := r.ReadFixed32()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.floatValues = append(l.floatValues, float32FromBits(v))
		case layerFieldIntValues:
			v, err := r.ReadZigzag64()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.intValues = append(l.intValues, v)
		case layerFieldUintValues:
			v, err := r.ReadVarint()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			l.uintValues = append(l.uintValues, v)
		case layerFieldElevScaling:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			s, err := parseScaling(b)
			if err != nil {
				return nil, err
			}
			l.hasElevScaling = true
			l.elevScaling = s
		case layerFieldAttrScalings:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
			s, err := parseScaling(b)
			if err != nil {
				return nil, err
			}
			l.attrScalings = append(l.attrScalings, s)
		default:
			if err := r.Skip(wt); err != nil {
				return nil, formatErrorf("layer: %v", err)
			}
		}
	}
	if l.name == "" {
		return nil, formatErrorf("layer: empty name")
	}
	if l.version < 1 || l.version > 3 {
		return nil, &VersionError{Version: l.version}
	}
	if l.hasTileCoord {
		if l.tileCoord.Z > 30 {
			return nil, &VersionError{Version: l.tileCoord.Z}
		}
	}
	return l, nil
}

func parseTileCoord(buf []byte) (TileCoord, error) {
	var tc TileCoord
	r := wire.NewReader(buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return tc, formatErrorf("tile_coord: %v", err)
		}
		switch field {
		case tileCoordFieldZ:
			v, err := r.ReadVarint()
			if err != nil {
				return tc, formatErrorf("tile_coord: %v", err)
			}
			tc.Z = uint32(v)
		case tileCoordFieldX:
			v, err := r.ReadVarint()
			if err != nil {
				return tc, formatErrorf("tile_coord: %v", err)
			}
			tc.X = uint32(v)
		case tileCoordFieldY:
			v, err := r.ReadVarint()
			if err != nil {
				return tc, formatErrorf("tile_coord: %v", err)
			}
			tc.Y = uint32(v)
		default:
			if err := r.Skip(wt); err != nil {
				return tc, formatErrorf("tile_coord: %v", err)
			}
		}
	}
	return tc, nil
}

func parseScaling(buf []byte) (Scaling, error) {
	s := DefaultScaling()
	r := wire.NewReader(buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return s, formatErrorf("scaling: %v", err)
		}
		switch field {
		case scalingFieldOffset:
			v, err := r.ReadZigzag64()
			if err != nil {
				return s, formatErrorf("scaling: %v", err)
			}
			s.Offset = v
		case scalingFieldMultiplier:
			v, err := r.ReadFixed64()
			if err != nil {
				return s, formatErrorf("scaling: %v", err)
			}
			s.Multiplier = float64FromBits(v)
		case scalingFieldBase:
			v, err := r.ReadFixed64()
			if err != nil {
				return s, formatErrorf("scaling: %v", err)
			}
			s.Base = float64FromBits(v)
		default:
			if err := r.Skip(wt); err != nil {
				return s, formatErrorf("scaling: %v", err)
			}
		}
	}
	return s, nil
}

// Name returns the layer's non-empty name.
func (l *Layer) Name() string { return l.name }

// Version returns the layer's declared version (1, 2, or 3).
func (l *Layer) Version() uint32 { return l.version }

// Extent returns the layer's local coordinate extent.
func (l *Layer) Extent() uint32 { return l.extent }

// TileCoord returns the v3 tile address and whether one was present.
func (l *Layer) TileCoord() (TileCoord, bool) { return l.tileCoord, l.hasTileCoord }

// NumFeatures returns the number of features in the layer.
func (l *Layer) NumFeatures() int { return len(l.features) }

// KeyTable exposes the layer's string table (shared by v2 attribute
// keys and, in v3, string-kind attribute values and map keys).
func (l *Layer) KeyTable() []string { return l.keys }

// Key returns the i-th entry of the key/string table.
func (l *Layer) Key(i IndexValue) (string, error) {
	if !i.Valid() || uint32(i) >= uint32(len(l.keys)) {
		return "", &OutOfRangeError{Index: uint32(i)}
	}
	return l.keys[i], nil
}

// ValueTableSize returns the number of entries in the v2 value table.
func (l *Layer) ValueTableSize() int { return len(l.values) }

// ValueAt decodes and returns the i-th entry of the v2 value table.
func (l *Layer) ValueAt(i IndexValue) (Value, error) {
	if !i.Valid() || uint32(i) >= uint32(len(l.values)) {
		return Value{}, &OutOfRangeError{Index: uint32(i)}
	}
	return parseValue(l.values[i])
}

func parseValue(buf []byte) (Value, error) {
	r := wire.NewReader(buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return Value{}, formatErrorf("value: %v", err)
		}
		switch field {
		case valueFieldString:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
			return stringValue(string(b)), nil
		case valueFieldFloat:
			v, err := r.ReadFixed32()
			if err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
			return floatValue(float32FromBits(v)), nil
		case valueFieldDouble:
			v, err := r.ReadFixed64()
			if err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
			return doubleValue(float64FromBits(v)), nil
		case valueFieldInt:
			v, err := r.ReadVarint()
			if err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
			return intValue(int64(v)), nil
		case valueFieldUint:
			v, err := r.ReadVarint()
			if err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
			return uintValue(v), nil
		case valueFieldSint:
			v, err := r.ReadZigzag64()
			if err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
			return sintValue(v), nil
		case valueFieldBool:
			v, err := r.ReadVarint()
			if err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
			return boolValue(v != 0), nil
		default:
			if err := r.Skip(wt); err != nil {
				return Value{}, formatErrorf("value: %v", err)
			}
		}
	}
	return Value{}, formatErrorf("value: empty value message")
}

// DoubleValues exposes the v3 double type table.
func (l *Layer) DoubleValues() []float64 { return l.doubleValues }

// FloatValues exposes the v3 float type table.
func (l *Layer) FloatValues() []float32 { return l.floatValues }

// IntValues exposes the v3 int type table.
func (l *Layer) IntValues() []int64 { return l.intValues }

// UintValues exposes the v3 uint type table.
func (l *Layer) UintValues() []uint64 { return l.uintValues }

// ElevationScaling returns the layer's elevation scaling, or the
// identity scaling when the layer omits one.
func (l *Layer) ElevationScaling() Scaling {
	if l.hasElevScaling {
		return l.elevScaling
	}
	return DefaultScaling()
}

// AttributeScalingSize returns the number of attribute-scaling entries.
func (l *Layer) AttributeScalingSize() int { return len(l.attrScalings) }

// AttributeScaling returns the i-th attribute scaling, or the identity
// scaling when i is the not-set sentinel.
func (l *Layer) AttributeScaling(i IndexValue) (Scaling, error) {
	if !i.Valid() {
		return DefaultScaling(), nil
	}
	if uint32(i) >= uint32(len(l.attrScalings)) {
		return Scaling{}, &OutOfRangeError{Index: uint32(i)}
	}
	return l.attrScalings[uint32(i)], nil
}

// Features calls fn once per feature in the layer, in layer order.
// Returning a non-nil error from fn stops iteration and is returned.
func (l *Layer) Features(fn func(*Feature) error) error {
	for _, buf := range l.features {
		f, err := newFeature(l, buf)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// GetFeatureByID returns the first feature with the given integer id.
// This is a linear scan, as the wire format carries no id index.
func (l *Layer) GetFeatureByID(id uint64) (*Feature, error) {
	var found *Feature
	err := l.Features(func(f *Feature) error {
		if v, ok := f.IntegerID(); ok && v == id {
			found = f
			return errStopIteration
		}
		return nil
	})
	if err == errStopIteration {
		err = nil
	}
	return found, err
}
