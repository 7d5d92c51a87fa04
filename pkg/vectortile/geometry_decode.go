package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// geomCursor walks a feature's packed command-word stream plus, for 3D
// features, the parallel z-delta stream, accumulating the running
// (cx, cy[, cz]) origin exactly as the MVT spec's decoder algorithm
// describes it (spec 4.3).
type geomCursor struct {
	r     *wire.Reader
	zr    *wire.Reader
	has3D bool
	cx    int32
	cy    int32
	cz    int64
}

func newGeomCursor(f *Feature) *geomCursor {
	c := &geomCursor{r: wire.NewReader(f.geometry), has3D: f.has3D}
	if f.has3D {
		c.zr = wire.NewReader(f.zGeometry)
	}
	return c
}

func (c *geomCursor) readCommand() (id, count uint32, err error) {
	word, err := c.r.ReadVarint()
	if err != nil {
		return 0, 0, geometryErrorf("command parameters exhausted")
	}
	w := uint32(word)
	return commandID(w), commandCount(w), nil
}

func (c *geomCursor) newPoint() Point {
	if c.has3D {
		return &Point3D{Xc: c.cx, Yc: c.cy, Zc: c.cz}
	}
	return &Point2D{Xc: c.cx, Yc: c.cy}
}

// step reads one (dx, dy[, dz]) zigzag delta, advances the cursor, and
// returns the resulting absolute point.
func (c *geomCursor) step() (Point, error) {
	dx, err := c.r.ReadZigzag32()
	if err != nil {
		return nil, geometryErrorf("command parameters exhausted")
	}
	dy, err := c.r.ReadZigzag32()
	if err != nil {
		return nil, geometryErrorf("command parameters exhausted")
	}
	c.cx += dx
	c.cy += dy
	if c.has3D {
		dz, err := c.zr.ReadZigzag64()
		if err != nil {
			return nil, geometryErrorf("command parameters exhausted")
		}
		c.cz += dz
	}
	return c.newPoint(), nil
}

func (c *geomCursor) done() bool {
	if !c.r.Done() {
		return false
	}
	if c.has3D && !c.zr.Done() {
		return false
	}
	return true
}

// DecodePoint decodes a POINT/MULTIPOINT geometry, calling h for each
// point. See spec 4.3.4.2.
func (f *Feature) DecodePoint(h PointHandler) error {
	c := newGeomCursor(f)
	id, count, err := c.readCommand()
	if err != nil {
		return geometryErrorf("Expected MoveTo command (spec 4.3.4.2)")
	}
	if id != cmdMoveTo {
		return geometryErrorf("Expected MoveTo command (spec 4.3.4.2)")
	}
	if count == 0 {
		return geometryErrorf("MoveTo command count is zero (spec 4.3.4.2)")
	}
	if count > maxCmdCount {
		return geometryErrorf("command parameters exhausted")
	}
	if !h.PointsBegin(count) {
		return nil
	}
	for i := uint32(0); i < count; i++ {
		p, err := c.step()
		if err != nil {
			return err
		}
		if !h.PointsPoint(p) {
			return nil
		}
	}
	if !c.done() {
		return geometryErrorf("Additional data after end of geometry (spec 4.3.4.2)")
	}
	if !h.PointsEnd() {
		return nil
	}
	return nil
}

// DecodeLineString decodes a LINESTRING/MULTILINESTRING geometry,
// calling h once per linestring. See spec 4.3.4.3.
func (f *Feature) DecodeLineString(h LineStringHandler) error {
	c := newGeomCursor(f)
	for !c.done() {
		if err := decodeOneLineString(c, h); err != nil {
			return err
		}
	}
	return nil
}

// decodeOneLineString consumes exactly one MoveTo(1)+LineTo(n) segment
// from c, firing LineStringBegin/LineStringPoint*/LineStringEnd. It is
// shared by DecodeLineString (loop) and DecodeSpline (exactly one
// segment); DecodePolygon repeats the same checks in decodeOneRing.
func decodeOneLineString(c *geomCursor, h LineStringHandler) error {
	id, count, err := c.readCommand()
	if err != nil {
		return geometryErrorf("Expected MoveTo command (spec 4.3.4.2)")
	}
	if id != cmdMoveTo {
		return geometryErrorf("Expected MoveTo command (spec 4.3.4.2)")
	}
	if count != 1 {
		return geometryErrorf("MoveTo command count is not 1 (spec 4.3.4.3)")
	}
	origin, err := c.step()
	if err != nil {
		return err
	}

	id, count, err = c.readCommand()
	if err != nil {
		return geometryErrorf("Expected LineTo command (spec 4.3.4.3)")
	}
	if id != cmdLineTo {
		return geometryErrorf("Expected LineTo command (spec 4.3.4.3)")
	}
	if count == 0 {
		return geometryErrorf("LineTo command count is zero (spec 4.3.4.3)")
	}
	if count > maxCmdCount {
		return geometryErrorf("command parameters exhausted")
	}

	if !h.LineStringBegin(1 + count) {
		return nil
	}
	if !h.LineStringPoint(origin) {
		return nil
	}
	for i := uint32(0); i < count; i++ {
		p, err := c.step()
		if err != nil {
			return err
		}
		if !h.LineStringPoint(p) {
			return nil
		}
	}
	if !h.LineStringEnd() {
		return nil
	}
	return nil
}

// DecodePolygon decodes a POLYGON/MULTIPOLYGON geometry, calling h once
// per ring with its classified RingRole. See spec 4.3.4.4.
func (f *Feature) DecodePolygon(h PolygonHandler) error {
	c := newGeomCursor(f)
	for !c.done() {
		if err := decodeOneRing(c, h); err != nil {
			return err
		}
	}
	return nil
}

func decodeOneRing(c *geomCursor, h PolygonHandler) error {
	id, count, err := c.readCommand()
	if err != nil {
		return geometryErrorf("Expected MoveTo command (spec 4.3.4.2)")
	}
	if id != cmdMoveTo {
		return geometryErrorf("Expected MoveTo command (spec 4.3.4.2)")
	}
	if count != 1 {
		return geometryErrorf("MoveTo command count is not 1 (spec 4.3.4.3)")
	}
	origin, err := c.step()
	if err != nil {
		return err
	}

	id, count, err = c.readCommand()
	if err != nil {
		return geometryErrorf("Expected LineTo command (spec 4.3.4.3)")
	}
	if id != cmdLineTo {
		return geometryErrorf("Expected LineTo command (spec 4.3.4.3)")
	}
	if count == 0 {
		return geometryErrorf("LineTo command count is zero (spec 4.3.4.3)")
	}
	if count > maxCmdCount {
		return geometryErrorf("command parameters exhausted")
	}

	points := make([]Point, 0, 1+count)
	points = append(points, origin)
	for i := uint32(0); i < count; i++ {
		p, err := c.step()
		if err != nil {
			return err
		}
		points = append(points, p)
	}

	id, count, err = c.readCommand()
	if err != nil {
		return geometryErrorf("Expected ClosePath command (spec 4.3.4.4)")
	}
	if id != cmdClosePath {
		return geometryErrorf("Expected ClosePath command (spec 4.3.4.4)")
	}
	if count != 1 {
		return geometryErrorf("ClosePath command count is not 1 (spec 4.3.4.4)")
	}

	// Spec 4.4: after ClosePath, a synthetic point equal to the ring's
	// start is appended before emission, closing the ring the way
	// mapbox/vtzero's decode_polygon re-emits the start point on
	// ClosePath. The command stream itself never encodes this point.
	closed := append(points, origin)

	role := classifyRing(closed)
	if !h.RingBegin(uint32(len(closed))) {
		return nil
	}
	for _, p := range closed {
		if !h.RingPoint(p) {
			return nil
		}
	}
	if !h.RingEnd(role) {
		return nil
	}
	return nil
}

// DecodeSpline decodes a v3 SPLINE geometry: a single control-point
// segment followed by a separately-framed knot vector. See spec 4.3.4.5.
func (f *Feature) DecodeSpline(h SplineHandler) error {
	c := newGeomCursor(f)
	if err := decodeControlPoints(c, h); err != nil {
		return err
	}
	if !c.done() {
		return geometryErrorf("Additional data after end of geometry (spec 4.3.4.2)")
	}
	return decodeKnots(f, h)
}

func decodeControlPoints(c *geomCursor, h SplineHandler) error {
	adapter := splineLineStringAdapter{h}
	return decodeOneLineString(c, adapter)
}

// splineLineStringAdapter lets decodeOneLineString drive SplineHandler's
// ControlPoints* methods, since the grammar is identical to a linestring.
type splineLineStringAdapter struct {
	h SplineHandler
}

func (a splineLineStringAdapter) LineStringBegin(count uint32) bool { return a.h.ControlPointsBegin(count) }
func (a splineLineStringAdapter) LineStringPoint(p Point) bool      { return a.h.ControlPointsPoint(p) }
func (a splineLineStringAdapter) LineStringEnd() bool               { return a.h.ControlPointsEnd() }

func decodeKnots(f *Feature, h SplineHandler) error {
	if len(f.knots) == 0 {
		return nil
	}
	r := wire.NewReader(f.knots)
	scalingIndex := NotSetIndex
	var values []byte
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return formatErrorf("knots: %v", err)
		}
		switch field {
		case knotsFieldScalingIndex:
			v, err := r.ReadVarint()
			if err != nil {
				return formatErrorf("knots: %v", err)
			}
			scalingIndex = IndexValue(v)
		case knotsFieldValues:
			b, err := r.ReadLengthDelimited()
			if err != nil {
				return formatErrorf("knots: %v", err)
			}
			values = b
		default:
			if err := r.Skip(wt); err != nil {
				return formatErrorf("knots: %v", err)
			}
		}
	}
	vr := wire.NewReader(values)
	count := uint32(0)
	{
		// Count entries up front so KnotsBegin can report it, without
		// consuming vr (a second reader walks the same bytes).
		counter := wire.NewReader(values)
		for !counter.Done() {
			if _, err := counter.ReadVarint(); err != nil {
				return geometryErrorf("command parameters exhausted")
			}
			count++
		}
	}
	if !h.KnotsBegin(count, scalingIndex) {
		return nil
	}
	var acc int64
	for !vr.Done() {
		d, err := vr.ReadZigzag64()
		if err != nil {
			return geometryErrorf("command parameters exhausted")
		}
		acc += d
		if !h.KnotsValue(acc) {
			return nil
		}
	}
	if !h.KnotsEnd() {
		return nil
	}
	return nil
}

// DecodeGeometry dispatches to the decoder matching f's GeometryType.
func (f *Feature) DecodeGeometry(h GeometryHandler) error {
	switch f.geomType {
	case GeomTypePoint:
		return f.DecodePoint(h)
	case GeomTypeLineString:
		return f.DecodeLineString(h)
	case GeomTypePolygon:
		return f.DecodePolygon(h)
	case GeomTypeSpline:
		return f.DecodeSpline(h)
	default:
		return geometryErrorf("unknown geometry type %d", f.geomType)
	}
}
