// Package geojson converts vectortile.Tile contents into orb/GeoJSON
// geometries, the way pkg/mvt converted orb/encoding/mvt's output. It is
// a convenience layer on top of the codec, not part of MVT conformance:
// v3-only constructs (structured attributes, splines, 3D) are
// down-converted rather than represented exactly.
package geojson

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/valpere/vectortile/pkg/vectortile"
)

// Decoder walks a vectortile.Tile and produces DecodedTile, mirroring
// the shape of the teacher's own mvt.Decoder/DecodedTile pair.
type Decoder struct {
	extent int
}

// NewDecoder returns a Decoder. Its extent field is set to 4096 but not
// read; a layer that omits an extent already reports 4096 via Layer.Extent.
func NewDecoder() *Decoder {
	return &Decoder{extent: 4096}
}

// DecodedTile mirrors the teacher's DecodedTile, generalized to carry
// either kind of feature id and a nested-capable Tags map.
type DecodedTile struct {
	Layers map[string]*DecodedLayer
	Extent int
	Version int
	TileID  TileID
}

// DecodedLayer mirrors the teacher's DecodedLayer.
type DecodedLayer struct {
	Name     string
	Features []*DecodedFeature
	Extent   int
	Version  int
}

// DecodedFeature mirrors the teacher's DecodedFeature; ID is `any`
// since a v3 feature may carry a string id instead of a uint64 one.
type DecodedFeature struct {
	ID       interface{}
	Tags     map[string]interface{}
	Geometry orb.Geometry
}

// TileID mirrors the teacher's TileID.
type TileID struct {
	Z, X, Y int
}

func (t TileID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Decode converts every layer and feature of tile into a DecodedTile.
// z/x/y are recorded for metadata only; coordinate reprojection to
// WGS84 is the Converter's job, not the Decoder's.
func (d *Decoder) Decode(tile *vectortile.Tile, z, x, y int) (*DecodedTile, error) {
	out := &DecodedTile{
		Layers: make(map[string]*DecodedLayer),
		TileID: TileID{Z: z, X: x, Y: y},
	}
	err := tile.Layers(func(layer *vectortile.Layer) error {
		dl, err := d.decodeLayer(layer)
		if err != nil {
			return fmt.Errorf("layer %s: %w", layer.Name(), err)
		}
		out.Layers[layer.Name()] = dl
		out.Extent = int(layer.Extent())
		out.Version = int(layer.Version())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Decoder) decodeLayer(layer *vectortile.Layer) (*DecodedLayer, error) {
	dl := &DecodedLayer{
		Name:     layer.Name(),
		Extent:   int(layer.Extent()),
		Version:  int(layer.Version()),
		Features: make([]*DecodedFeature, 0, layer.NumFeatures()),
	}
	err := layer.Features(func(f *vectortile.Feature) error {
		df, err := decodeFeature(f)
		if err != nil {
			// One malformed feature should not sink the whole layer;
			// the teacher's decodeLayer has the same skip-and-continue
			// behavior for per-feature failures.
			return nil
		}
		dl.Features = append(dl.Features, df)
		return nil
	})
	return dl, err
}

func decodeFeature(f *vectortile.Feature) (*DecodedFeature, error) {
	gb := &geomBuilder{}
	if err := f.DecodeGeometry(gb); err != nil {
		return nil, err
	}

	df := &DecodedFeature{Geometry: gb.result(f.GeometryType())}
	if id, ok := f.IntegerID(); ok {
		df.ID = id
	} else if sid, ok := f.StringID(); ok {
		df.ID = sid
	}

	ab := newAttrBuilder()
	if f.HasAttributes() {
		if err := f.DecodeAttributes(ab); err != nil {
			return nil, err
		}
	}
	df.Tags = ab.root

	return df, nil
}

// webMercatorMax is the half-circumference of the Web Mercator
// projection's square extent, in meters.
const webMercatorMax = 20037508.342789244

// tileToWebMercator projects a tile-local integer coordinate (as used
// by MVT geometries) into Web Mercator meters, given the tile's
// z/x/y address and extent.
func tileToWebMercator(px, py float64, extent float64, z, x, y int) orb.Point {
	size := extent * math.Exp2(float64(z))
	wx := (px+float64(x)*extent)*2*webMercatorMax/size - webMercatorMax
	wy := webMercatorMax - (py+float64(y)*extent)*2*webMercatorMax/size
	return orb.Point{wx, wy}
}

// webMercatorToWGS84 converts Web Mercator meters to longitude/latitude
// degrees, the same formula the teacher's converter.go uses.
func webMercatorToWGS84(p orb.Point) orb.Point {
	lon := (p[0] / webMercatorMax) * 180.0
	lat := p[1] / webMercatorMax
	lat = 180.0 / math.Pi * (2*math.Atan(math.Exp(lat*math.Pi)) - math.Pi/2.0)
	return orb.Point{lon, lat}
}
