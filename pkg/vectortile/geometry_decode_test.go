package vectortile

import (
	"reflect"
	"testing"

	"github.com/valpere/vectortile/pkg/vectortile/internal/wire"
)

// packWords varint-encodes each word in order, matching how the
// feature's geometry field is laid out on the wire.
func packWords(words ...uint32) []byte {
	w := wire.NewWriter()
	for _, word := range words {
		w.AppendVarint(uint64(word))
	}
	return w.Bytes()
}

func newTestFeature(gt GeomType, geom []byte) *Feature {
	return &Feature{
		layer:            &Layer{extent: 4096, version: 2},
		geomType:         gt,
		geometry:         geom,
		elevScalingIndex: NotSetIndex,
	}
}

// recordingHandler captures every geometry callback it receives, in
// order, as plain strings - enough to assert an exact emission trace
// without hand-rolling a comparator per test.
type recordingHandler struct {
	NopGeometryHandler
	calls []string
}

func (r *recordingHandler) PointsBegin(count uint32) bool {
	r.calls = append(r.calls, sprintCall("points_begin", count))
	return true
}
func (r *recordingHandler) PointsPoint(p Point) bool {
	r.calls = append(r.calls, sprintPoint("points_point", p))
	return true
}
func (r *recordingHandler) PointsEnd() bool {
	r.calls = append(r.calls, "points_end")
	return true
}
func (r *recordingHandler) LineStringBegin(count uint32) bool {
	r.calls = append(r.calls, sprintCall("linestring_begin", count))
	return true
}
func (r *recordingHandler) LineStringPoint(p Point) bool {
	r.calls = append(r.calls, sprintPoint("linestring_point", p))
	return true
}
func (r *recordingHandler) LineStringEnd() bool {
	r.calls = append(r.calls, "linestring_end")
	return true
}
func (r *recordingHandler) RingBegin(count uint32) bool {
	r.calls = append(r.calls, sprintCall("ring_begin", count))
	return true
}
func (r *recordingHandler) RingPoint(p Point) bool {
	r.calls = append(r.calls, sprintPoint("ring_point", p))
	return true
}
func (r *recordingHandler) RingEnd(role RingRole) bool {
	r.calls = append(r.calls, "ring_end("+role.String()+")")
	return true
}

func sprintCall(name string, count uint32) string {
	return name + "(" + itoa(int(count)) + ")"
}

func sprintPoint(name string, p Point) string {
	return name + "(" + itoa(int(p.X())) + "," + itoa(int(p.Y())) + ")"
}

func itoa(v int) string {
	neg := v < 0
	if v == 0 {
		return "0"
	}
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Scenario 1: single point.
func TestDecodePointScenario(t *testing.T) {
	f := newTestFeature(GeomTypePoint, packWords(9, 50, 34))
	h := &recordingHandler{}
	if err := f.DecodePoint(h); err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	want := []string{"points_begin(1)", "points_point(25,17)", "points_end"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

// Scenario 2: multipoint with two points.
func TestDecodeMultiPointScenario(t *testing.T) {
	f := newTestFeature(GeomTypePoint, packWords(17, 10, 14, 3, 9))
	h := &recordingHandler{}
	if err := f.DecodePoint(h); err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	want := []string{"points_begin(2)", "points_point(5,7)", "points_point(3,2)", "points_end"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

// Scenario 3: single linestring.
func TestDecodeLineStringScenario(t *testing.T) {
	f := newTestFeature(GeomTypeLineString, packWords(9, 4, 4, 18, 0, 16, 16, 0))
	h := &recordingHandler{}
	if err := f.DecodeLineString(h); err != nil {
		t.Fatalf("DecodeLineString: %v", err)
	}
	want := []string{
		"linestring_begin(3)",
		"linestring_point(2,2)",
		"linestring_point(2,10)",
		"linestring_point(10,10)",
		"linestring_end",
	}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

// Scenario 4: single polygon ring. The origin (3,6) and the point count
// (one MoveTo + two LineTo) come straight from the command words; the
// exact subsequent vertices follow from the same zigzag delta rule
// exercised by TestDecodeMultiPointScenario and TestDecodeLineStringScenario.
// Per spec 4.4, a synthetic point equal to the origin is appended after
// ClosePath before emission, so the ring closes: (3,6) is emitted both
// first and last, and ring_begin reports one more than the command
// stream's own point count.
func TestDecodePolygonScenario(t *testing.T) {
	f := newTestFeature(GeomTypePolygon, packWords(9, 6, 12, 18, 10, 12, 24, 44, 15))
	h := &recordingHandler{}
	if err := f.DecodePolygon(h); err != nil {
		t.Fatalf("DecodePolygon: %v", err)
	}
	if len(h.calls) != 6 {
		t.Fatalf("calls = %v, want 6 entries (begin, 4 points, end)", h.calls)
	}
	if h.calls[0] != "ring_begin(4)" {
		t.Errorf("calls[0] = %q, want ring_begin(4)", h.calls[0])
	}
	if h.calls[1] != "ring_point(3,6)" {
		t.Errorf("calls[1] = %q, want ring_point(3,6)", h.calls[1])
	}
	if h.calls[4] != "ring_point(3,6)" {
		t.Errorf("calls[4] = %q, want ring_point(3,6) (closing vertex)", h.calls[4])
	}
	if got := h.calls[5]; got != "ring_end(outer)" && got != "ring_end(inner)" && got != "ring_end(invalid)" {
		t.Errorf("calls[5] = %q, want a ring_end(...) call", got)
	}
}

// Scenario 5: feeding a linestring's command stream to DecodePoint.
func TestDecodePointOnLineStreamIsAnError(t *testing.T) {
	f := newTestFeature(GeomTypePoint, packWords(9, 4, 4, 18, 0, 16, 16, 0))
	h := &recordingHandler{}
	err := f.DecodePoint(h)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	want := "Additional data after end of geometry (spec 4.3.4.2)"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

// Scenario 6: empty geometry.
func TestEmptyGeometry(t *testing.T) {
	f := newTestFeature(GeomTypeLineString, nil)
	h := &recordingHandler{}
	if err := f.DecodeLineString(h); err != nil {
		t.Fatalf("DecodeLineString on empty input: %v", err)
	}
	if len(h.calls) != 0 {
		t.Errorf("calls = %v, want none", h.calls)
	}

	fp := newTestFeature(GeomTypePoint, nil)
	err := fp.DecodePoint(h)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	want := "Expected MoveTo command (spec 4.3.4.2)"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestDecodeLineStringRejectsBadMoveToCount(t *testing.T) {
	f := newTestFeature(GeomTypeLineString, packWords(commandInteger(cmdMoveTo, 2), 4, 4))
	h := &recordingHandler{}
	err := f.DecodeLineString(h)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	want := "MoveTo command count is not 1 (spec 4.3.4.3)"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestDecodeLineStringRejectsZeroLineTo(t *testing.T) {
	f := newTestFeature(GeomTypeLineString, packWords(commandInteger(cmdMoveTo, 1), 4, 4, commandInteger(cmdLineTo, 0)))
	h := &recordingHandler{}
	err := f.DecodeLineString(h)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	want := "LineTo command count is zero (spec 4.3.4.3)"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestHandlerFalseShortCircuitsCleanly(t *testing.T) {
	f := newTestFeature(GeomTypePoint, packWords(9, 50, 34))
	h := &stoppingPointHandler{}
	if err := f.DecodePoint(h); err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	if !h.beginCalled || h.pointCalled {
		t.Errorf("expected PointsBegin called and PointsPoint skipped, got begin=%v point=%v", h.beginCalled, h.pointCalled)
	}
}

type stoppingPointHandler struct {
	NopGeometryHandler
	beginCalled bool
	pointCalled bool
}

func (h *stoppingPointHandler) PointsBegin(uint32) bool {
	h.beginCalled = true
	return false
}
func (h *stoppingPointHandler) PointsPoint(Point) bool {
	h.pointCalled = true
	return true
}
