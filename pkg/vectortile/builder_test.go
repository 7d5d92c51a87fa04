package vectortile

import "testing"

func TestBuilderRoundTripPointFeature(t *testing.T) {
	tb := NewTileBuilder()
	lb := tb.AddLayer("poi", 2, 4096)
	fb := lb.AddFeature(GeomTypePoint)
	fb.SetID(7)
	if err := fb.AddPoints([]Point{&Point2D{Xc: 25, Yc: 17}}); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	fb.AddProperty("name", stringValue("cafe"))
	if err := fb.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	buf := tb.Serialize()
	if !IsVectorTile(buf) {
		t.Fatal("serialized buffer does not parse as a vector tile")
	}

	tile := FromBytes(buf)
	layer, err := tile.GetLayerByName("poi")
	if err != nil {
		t.Fatalf("GetLayerByName: %v", err)
	}
	if layer.NumFeatures() != 1 {
		t.Fatalf("NumFeatures = %d, want 1", layer.NumFeatures())
	}

	var feature *Feature
	if err := layer.Features(func(f *Feature) error {
		feature = f
		return nil
	}); err != nil {
		t.Fatalf("Features: %v", err)
	}

	if id, ok := feature.IntegerID(); !ok || id != 7 {
		t.Errorf("IntegerID = (%d, %v), want (7, true)", id, ok)
	}

	h := &recordingHandler{}
	if err := feature.DecodePoint(h); err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	want := []string{"points_begin(1)", "points_point(25,17)", "points_end"}
	for i, w := range want {
		if i >= len(h.calls) || h.calls[i] != w {
			t.Errorf("calls = %v, want %v", h.calls, want)
			break
		}
	}

	ah := &recordingAttrHandler{}
	if err := feature.DecodeAttributes(ah); err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	wantAttrs := []string{"key(name,0)", "string(cafe,0)"}
	if len(ah.calls) != len(wantAttrs) {
		t.Fatalf("calls = %v, want %v", ah.calls, wantAttrs)
	}
	for i, w := range wantAttrs {
		if ah.calls[i] != w {
			t.Errorf("calls[%d] = %q, want %q", i, ah.calls[i], w)
		}
	}
}

func TestBuilderRoundTripPolygon(t *testing.T) {
	tb := NewTileBuilder()
	lb := tb.AddLayer("admin", 2, 4096)
	fb := lb.AddFeature(GeomTypePolygon)
	ring := []Point{
		&Point2D{Xc: 0, Yc: 0},
		&Point2D{Xc: 10, Yc: 0},
		&Point2D{Xc: 10, Yc: 10},
		&Point2D{Xc: 0, Yc: 10},
	}
	if err := fb.AddRing(ring); err != nil {
		t.Fatalf("AddRing: %v", err)
	}
	if err := fb.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	buf := tb.Serialize()
	tile := FromBytes(buf)
	layer, err := tile.GetLayer(0)
	if err != nil {
		t.Fatalf("GetLayer: %v", err)
	}

	var feature *Feature
	layer.Features(func(f *Feature) error { feature = f; return nil })

	h := &recordingHandler{}
	if err := feature.DecodePolygon(h); err != nil {
		t.Fatalf("DecodePolygon: %v", err)
	}
	// 4 open vertices plus the synthetic closing point (spec 4.4) the
	// decoder re-emits, matching mapbox/vtzero's decode_polygon.
	if h.calls[0] != "ring_begin(5)" {
		t.Errorf("calls[0] = %q, want ring_begin(5)", h.calls[0])
	}
	if h.calls[1] != "ring_point(0,0)" {
		t.Errorf("calls[1] = %q, want ring_point(0,0)", h.calls[1])
	}
	if h.calls[len(h.calls)-2] != "ring_point(0,0)" {
		t.Errorf("second-to-last call = %q, want ring_point(0,0) (closing vertex)", h.calls[len(h.calls)-2])
	}
	if h.calls[len(h.calls)-1] != "ring_end(outer)" {
		t.Errorf("last call = %q, want ring_end(outer)", h.calls[len(h.calls)-1])
	}
}

func TestBuilderRoundTripStructuredContainers(t *testing.T) {
	tb := NewTileBuilder()
	lb := tb.AddLayer("poi", 3, 4096)
	fb := lb.AddFeature(GeomTypePoint)
	if err := fb.AddPoints([]Point{&Point2D{Xc: 1, Yc: 1}}); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	fb.AddStructuredProperty("tags", ListStructuredValue(
		ScalarStructuredValue(inlineSintValue(7)),
		ScalarStructuredValue(inlineSintValue(-3)),
	))
	fb.AddStructuredProperty("meta", MapStructuredValue(
		StructuredMapEntry{Key: "kind", Value: ScalarStructuredValue(inlineSintValue(1))},
	))
	fb.AddStructuredProperty("samples", NumberListStructuredValue(NotSetIndex,
		NumberListEntry{Value: 5},
		NumberListEntry{Null: true},
		NumberListEntry{Value: 8},
	))
	if err := fb.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	buf := tb.Serialize()
	tile := FromBytes(buf)
	layer, err := tile.GetLayerByName("poi")
	if err != nil {
		t.Fatalf("GetLayerByName: %v", err)
	}
	var feature *Feature
	layer.Features(func(f *Feature) error { feature = f; return nil })

	ah := &recordingAttrHandler{}
	if err := feature.DecodeAttributes(ah); err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	want := []string{
		"key(tags,0)", "list_begin(2,0)", "int(7,1)", "int(-3,1)", "list_end(0)",
		"key(meta,0)", "key(kind,1)", "int(1,1)",
		"key(samples,0)", "numlist_begin(3,0)", "numlist_value(5,1)", "numlist_null(1)", "numlist_value(8,1)", "numlist_end(0)",
	}
	if len(ah.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", ah.calls, want)
	}
	for i, w := range want {
		if ah.calls[i] != w {
			t.Errorf("calls[%d] = %q, want %q", i, ah.calls[i], w)
		}
	}
}

func TestAddRingRejectsZeroArea(t *testing.T) {
	lb := newLayerBuilder("l", 2, 4096)
	fb := lb.AddFeature(GeomTypePolygon)
	degenerate := []Point{
		&Point2D{Xc: 0, Yc: 0},
		&Point2D{Xc: 5, Yc: 5},
		&Point2D{Xc: 10, Yc: 10},
	}
	if err := fb.AddRing(degenerate); err == nil {
		t.Error("expected an error for a zero-area ring, got nil")
	}
}

func TestSerializeIsIdempotent(t *testing.T) {
	tb := NewTileBuilder()
	lb := tb.AddLayer("l", 2, 4096)
	fb := lb.AddFeature(GeomTypePoint)
	fb.AddPoints([]Point{&Point2D{Xc: 1, Yc: 1}})
	fb.Commit()

	a := tb.Serialize()
	b := tb.Serialize()
	if string(a) != string(b) {
		t.Error("Serialize is not idempotent")
	}
}
