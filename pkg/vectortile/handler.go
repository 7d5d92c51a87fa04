package vectortile

// Every geometry callback returns a bool: false short-circuits decoding at
// that point and DecodeGeometry/DecodePoint/... return nil (a clean,
// successful stop, not an error). This mirrors the reference decoder's
// handler contract (spec 4.6) and is what the fuzz/skip machinery in the
// attribute decoder depends on for cursor alignment.

// PointHandler receives callbacks for a POINT/MULTIPOINT geometry.
type PointHandler interface {
	PointsBegin(count uint32) bool
	PointsPoint(p Point) bool
	PointsEnd() bool
}

// LineStringHandler receives callbacks for a LINESTRING/MULTILINESTRING
// geometry. It is called once per linestring in the feature.
type LineStringHandler interface {
	LineStringBegin(count uint32) bool
	LineStringPoint(p Point) bool
	LineStringEnd() bool
}

// PolygonHandler receives callbacks for a POLYGON/MULTIPOLYGON geometry.
// It is called once per ring in the feature; RingEnd carries the ring's
// classified role.
type PolygonHandler interface {
	RingBegin(count uint32) bool
	RingPoint(p Point) bool
	RingEnd(role RingRole) bool
}

// SplineHandler receives callbacks for a v3 SPLINE geometry: a control
// point stream identical in shape to a linestring, followed by a
// separately-framed knot vector.
type SplineHandler interface {
	ControlPointsBegin(count uint32) bool
	ControlPointsPoint(p Point) bool
	ControlPointsEnd() bool
	KnotsBegin(count uint32, scalingIndex IndexValue) bool
	KnotsValue(v int64) bool
	KnotsEnd() bool
}

// GeometryHandler is the union of all geometry callbacks, required by
// DecodeGeometry's generic dispatch since the feature's own GeometryType
// determines which subset actually fires.
type GeometryHandler interface {
	PointHandler
	LineStringHandler
	PolygonHandler
	SplineHandler
}

// HandlerInfo is an optional interface a handler may implement to declare
// its preferred point dimension and how many per-vertex geometric
// attributes it is prepared to consume. handlerDimensions and
// handlerMaxGeometricAttributes report these, or 2 and 0 for a handler
// that does not implement it. The geometry decoders do not call them:
// point dimension follows the feature's own 3D flag.
type HandlerInfo interface {
	Dimensions() int
	MaxGeometricAttributes() uint32
}

func handlerDimensions(h interface{}) int {
	if info, ok := h.(HandlerInfo); ok {
		return info.Dimensions()
	}
	return 2
}

func handlerMaxGeometricAttributes(h interface{}) uint32 {
	if info, ok := h.(HandlerInfo); ok {
		return info.MaxGeometricAttributes()
	}
	return 0
}

// NopPointHandler is an embeddable no-op PointHandler; embed it and
// override only the callbacks a concrete handler cares about.
type NopPointHandler struct{}

func (NopPointHandler) PointsBegin(uint32) bool { return true }
func (NopPointHandler) PointsPoint(Point) bool  { return true }
func (NopPointHandler) PointsEnd() bool         { return true }

// NopLineStringHandler is an embeddable no-op LineStringHandler.
type NopLineStringHandler struct{}

func (NopLineStringHandler) LineStringBegin(uint32) bool { return true }
func (NopLineStringHandler) LineStringPoint(Point) bool  { return true }
func (NopLineStringHandler) LineStringEnd() bool         { return true }

// NopPolygonHandler is an embeddable no-op PolygonHandler.
type NopPolygonHandler struct{}

func (NopPolygonHandler) RingBegin(uint32) bool    { return true }
func (NopPolygonHandler) RingPoint(Point) bool     { return true }
func (NopPolygonHandler) RingEnd(RingRole) bool    { return true }

// NopSplineHandler is an embeddable no-op SplineHandler.
type NopSplineHandler struct{}

func (NopSplineHandler) ControlPointsBegin(uint32) bool           { return true }
func (NopSplineHandler) ControlPointsPoint(Point) bool            { return true }
func (NopSplineHandler) ControlPointsEnd() bool                   { return true }
func (NopSplineHandler) KnotsBegin(uint32, IndexValue) bool        { return true }
func (NopSplineHandler) KnotsValue(int64) bool                    { return true }
func (NopSplineHandler) KnotsEnd() bool                           { return true }

// NopGeometryHandler combines all four no-op handlers so a concrete
// handler need only embed one type and override what it needs.
type NopGeometryHandler struct {
	NopPointHandler
	NopLineStringHandler
	NopPolygonHandler
	NopSplineHandler
}
