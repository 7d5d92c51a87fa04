package vectortile

// signedArea2 returns twice the signed area of a ring, accumulated in
// 64-bit integer arithmetic per the shoelace formula. The closing edge
// back to points[0] is taken via modulo wraparound, so points may be
// given either open (vtzero's encoder side: no duplicated closing
// vertex) or already closed with points[0] repeated as its last element
// (the decoder's DecodePolygon, which re-emits the start point per spec
// 4.4 before classifying) - a repeated closing vertex only contributes a
// zero-length final edge and does not change the result. Coordinates are
// int32, and each cross-product term fits comfortably in int64, so no
// floating point is involved - ties at exactly zero are deterministic
// across platforms.
func signedArea2(points []Point) int64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var area int64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		x0, y0 := int64(points[i].X()), int64(points[i].Y())
		x1, y1 := int64(points[j].X()), int64(points[j].Y())
		area += x0*y1 - x1*y0
	}
	return area
}

// classifyRing returns the RingRole implied by a ring's signed area.
func classifyRing(points []Point) RingRole {
	switch a := signedArea2(points); {
	case a > 0:
		return RingOuter
	case a < 0:
		return RingInner
	default:
		return RingInvalid
	}
}
