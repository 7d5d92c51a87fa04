package vectortile

import "testing"

func pts(coords ...[2]int32) []Point {
	out := make([]Point, len(coords))
	for i, c := range coords {
		out[i] = &Point2D{Xc: c[0], Yc: c[1]}
	}
	return out
}

func TestClassifyRingOuterCounterClockwise(t *testing.T) {
	// A square traversed so that the shoelace sum is positive.
	ring := pts([2]int32{0, 0}, [2]int32{4, 0}, [2]int32{4, 4}, [2]int32{0, 4})
	if role := classifyRing(ring); role != RingOuter {
		t.Errorf("classifyRing = %v, want RingOuter", role)
	}
}

func TestClassifyRingInnerClockwise(t *testing.T) {
	ring := pts([2]int32{0, 0}, [2]int32{0, 4}, [2]int32{4, 4}, [2]int32{4, 0})
	if role := classifyRing(ring); role != RingInner {
		t.Errorf("classifyRing = %v, want RingInner", role)
	}
}

func TestClassifyRingInvalidDegenerate(t *testing.T) {
	ring := pts([2]int32{0, 0}, [2]int32{4, 4})
	if role := classifyRing(ring); role != RingInvalid {
		t.Errorf("classifyRing = %v, want RingInvalid", role)
	}
}

func TestClassifyRingDeterministic(t *testing.T) {
	ring := pts([2]int32{1, 1}, [2]int32{9, 1}, [2]int32{9, 9}, [2]int32{1, 9})
	first := classifyRing(ring)
	for i := 0; i < 10; i++ {
		if got := classifyRing(ring); got != first {
			t.Fatalf("classifyRing is not deterministic: got %v, want %v", got, first)
		}
	}
}
