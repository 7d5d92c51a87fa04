package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// Feature borrows a single feature submessage plus a reference to its
// owning Layer (for table/scaling resolution). Geometry and attributes
// are not decoded at construction; DecodeGeometry/DecodeAttributes/
// DecodeGeometricAttributes parse their respective sub-streams lazily,
// each call re-reading from the borrowed buffer.
type Feature struct {
	layer *Layer

	hasIntID bool
	intID    uint64
	strID    string
	hasStrID bool

	geomType GeomType
	has3D    bool

	tags       []byte // v2 packed (key_index, value_index)+ varints
	geometry   []byte // packed varint command stream
	zGeometry  []byte // packed zigzag sint64 z-deltas, parallel to geometry
	geomAttrs  []byte // packed structured-value stream, one entry per vertex
	attributes []byte // packed (key_index, structured_value)+ stream
	knots      []byte // knot submessage, splines only

	elevScalingIndex IndexValue
}

func newFeature(layer *Layer, buf []byte) (*Feature, error) {
	f := &Feature{layer: layer, elevScalingIndex: NotSetIndex}
	r := wire.NewReader(buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return nil, formatErrorf("feature: %v", err)
		}
		switch field {
		case featureFieldID:
			v, err := r.ReadVarint()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.hasIntID = true
			f.intID = v
		case featureFieldStringID:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.hasStrID = true
			f.strID = string(b)
		case featureFieldType:
			v, err := r.ReadVarint()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.geomType = GeomType(v)
		case featureFieldHas3D:
			v, err := r.ReadVarint()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.has3D = v != 0
		case featureFieldTags:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.tags = b
		case featureFieldGeometry:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.geometry = b
		case featureFieldZGeometry:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.zGeometry = b
		case featureFieldGeomAttrs:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.geomAttrs = b
		case featureFieldAttributes:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.attributes = b
		case featureFieldKnots:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.knots = b
		case featureFieldElevScaling:
			v, err := r.ReadVarint()
			if err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
			f.elevScalingIndex = IndexValue(v)
		default:
			if err := r.Skip(wt); err != nil {
				return nil, formatErrorf("feature: %v", err)
			}
		}
	}
	return f, nil
}

// IntegerID returns the feature's numeric id, if it has one.
func (f *Feature) IntegerID() (uint64, bool) { return f.intID, f.hasIntID }

// StringID returns the feature's v3 string id, if it has one.
func (f *Feature) StringID() (string, bool) { return f.strID, f.hasStrID }

// HasID reports whether the feature carries either id kind.
func (f *Feature) HasID() bool { return f.hasIntID || f.hasStrID }

// GeometryType returns the feature's geometry kind.
func (f *Feature) GeometryType() GeomType { return f.geomType }

// Has3DGeometry reports the v3 3D-geometry flag.
func (f *Feature) Has3DGeometry() bool { return f.has3D }

// HasAttributes reports whether the feature carries attributes: a v2
// tags list or a v3 attribute block.
func (f *Feature) HasAttributes() bool { return len(f.tags) > 0 || len(f.attributes) > 0 }

// ElevationScalingIndex returns the index of the Scaling this feature's
// z-coordinates are decoded with, or NotSetIndex to use the layer's
// default elevation scaling.
func (f *Feature) ElevationScalingIndex() IndexValue { return f.elevScalingIndex }

// ElevationScaling resolves this feature's effective elevation scaling.
func (f *Feature) ElevationScaling() Scaling {
	if !f.elevScalingIndex.Valid() {
		return f.layer.ElevationScaling()
	}
	s, err := f.layer.AttributeScaling(f.elevScalingIndex)
	if err != nil {
		return f.layer.ElevationScaling()
	}
	return s
}
