package geojson

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/valpere/vectortile/pkg/vectortile"
)

func buildPointTile(t *testing.T) []byte {
	t.Helper()
	tb := vectortile.NewTileBuilder()
	lb := tb.AddLayer("poi", 2, 4096)
	fb := lb.AddFeature(vectortile.GeomTypePoint)
	fb.SetID(1)
	if err := fb.AddPoints([]vectortile.Point{&vectortile.Point2D{Xc: 2048, Yc: 2048}}); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	fb.AddProperty("name", vectortile.Value{Kind: vectortile.ValueKindString, StringVal: "cafe"})
	if err := fb.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return tb.Serialize()
}

func TestDecodeProducesTileLocalGeometry(t *testing.T) {
	buf := buildPointTile(t)
	tile := vectortile.FromBytes(buf)

	decoder := NewDecoder()
	decoded, err := decoder.Decode(tile, 0, 0, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	layer, ok := decoded.Layers["poi"]
	if !ok {
		t.Fatal("layer \"poi\" not found in decoded tile")
	}
	if len(layer.Features) != 1 {
		t.Fatalf("len(Features) = %d, want 1", len(layer.Features))
	}
	f := layer.Features[0]
	if f.ID != uint64(1) {
		t.Errorf("ID = %v, want 1", f.ID)
	}
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		t.Fatalf("Geometry is %T, want orb.Point", f.Geometry)
	}
	if pt[0] != 2048 || pt[1] != 2048 {
		t.Errorf("Geometry = %v, want (2048, 2048) in tile-local units", pt)
	}
	if f.Tags["name"] != "cafe" {
		t.Errorf("Tags[name] = %v, want cafe", f.Tags["name"])
	}
}

func TestConverterProjectsToWebMercator(t *testing.T) {
	buf := buildPointTile(t)
	c := NewConverter()

	fc, metadata, err := c.Convert(buf, 0, 0, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if metadata.FeatureCount != 1 {
		t.Fatalf("FeatureCount = %d, want 1", metadata.FeatureCount)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("len(Features) = %d, want 1", len(fc.Features))
	}

	pt, ok := fc.Features[0].Geometry.(orb.Point)
	if !ok {
		t.Fatalf("Geometry is %T, want orb.Point", fc.Features[0].Geometry)
	}
	// The feature sits at the exact center of a single z=0 tile spanning
	// the whole Web Mercator square, so it must project to the origin.
	const eps = 1e-6
	if pt[0] < -eps || pt[0] > eps || pt[1] < -eps || pt[1] > eps {
		t.Errorf("projected point = %v, want near (0, 0)", pt)
	}
	if fc.Features[0].Properties["name"] != "cafe" {
		t.Errorf("Properties[name] = %v, want cafe", fc.Features[0].Properties["name"])
	}
	if fc.Features[0].Properties["_layer"] != "poi" {
		t.Errorf("Properties[_layer] = %v, want poi", fc.Features[0].Properties["_layer"])
	}
}

func TestConverterWGS84(t *testing.T) {
	buf := buildPointTile(t)
	c, err := NewConverterWithOptions(&ConversionOptions{CoordinateSystem: CoordSystemWGS84})
	if err != nil {
		t.Fatalf("NewConverterWithOptions: %v", err)
	}

	fc, _, err := c.Convert(buf, 0, 0, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	pt := fc.Features[0].Geometry.(orb.Point)
	const eps = 1e-6
	if pt[0] < -eps || pt[0] > eps || pt[1] < -eps || pt[1] > eps {
		t.Errorf("WGS84 point = %v, want near (0, 0)", pt)
	}
}

func TestValidateConversionOptionsRejectsUnknownCoordinateSystem(t *testing.T) {
	if err := ValidateConversionOptions(&ConversionOptions{CoordinateSystem: "nad83"}); err == nil {
		t.Error("expected an error for an unsupported coordinate system")
	}
}

func TestConverterLayerFilter(t *testing.T) {
	tb := vectortile.NewTileBuilder()
	for _, name := range []string{"roads", "water"} {
		lb := tb.AddLayer(name, 2, 4096)
		fb := lb.AddFeature(vectortile.GeomTypePoint)
		fb.AddPoints([]vectortile.Point{&vectortile.Point2D{Xc: 1, Yc: 1}})
		fb.Commit()
	}
	buf := tb.Serialize()

	c, err := NewConverterWithOptions(&ConversionOptions{
		CoordinateSystem: CoordSystemWebMercator,
		LayerFilter:      []string{"roads"},
	})
	if err != nil {
		t.Fatalf("NewConverterWithOptions: %v", err)
	}
	fc, metadata, err := c.Convert(buf, 0, 0, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("len(Features) = %d, want 1", len(fc.Features))
	}
	if fc.Features[0].Properties["_layer"] != "roads" {
		t.Errorf("Properties[_layer] = %v, want roads", fc.Features[0].Properties["_layer"])
	}
	if len(metadata.Layers) != 2 {
		t.Errorf("metadata.Layers = %v, want both layers reported even though only one passed the filter", metadata.Layers)
	}
}
