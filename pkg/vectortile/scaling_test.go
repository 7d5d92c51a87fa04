package vectortile

import "testing"

func TestDefaultScalingIsIdentity(t *testing.T) {
	s := DefaultScaling()
	if got := s.Decode(42); got != 42 {
		t.Errorf("Decode(42) = %v, want 42", got)
	}
	if got := s.Encode(42.0); got != 42 {
		t.Errorf("Encode(42.0) = %v, want 42", got)
	}
}

func TestScalingDecode(t *testing.T) {
	s := Scaling{Offset: 10, Multiplier: 0.5, Base: 100}
	got := s.Decode(4)
	want := 100 + 0.5*(10+4)
	if got != want {
		t.Errorf("Decode(4) = %v, want %v", got, want)
	}
}

func TestScalingEncodeRoundTrip(t *testing.T) {
	s := Scaling{Offset: -3, Multiplier: 2.5, Base: 1.0}
	for _, v := range []int64{-100, -1, 0, 1, 100} {
		d := s.Decode(v)
		got := s.Encode(d)
		if got != v {
			t.Errorf("Encode(Decode(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestScalingEncodeTieBreakAwayFromZero(t *testing.T) {
	s := DefaultScaling()
	cases := []struct {
		in   float64
		want int64
	}{
		{0.5, 1},
		{-0.5, -1},
		{1.5, 2},
		{-1.5, -2},
		{2.5, 3},
	}
	for _, c := range cases {
		if got := s.Encode(c.in); got != c.want {
			t.Errorf("Encode(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIndexValueValid(t *testing.T) {
	if NotSetIndex.Valid() {
		t.Error("NotSetIndex.Valid() = true, want false")
	}
	if !IndexValue(0).Valid() {
		t.Error("IndexValue(0).Valid() = false, want true")
	}
}
