package geojson

import (
	"fmt"

	"github.com/paulmach/orb"
	orbgeojson "github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
	"github.com/sirupsen/logrus"

	"github.com/valpere/vectortile/pkg/vectortile"
)

// Coordinate system constants, as in the teacher's converter.go.
const (
	CoordSystemWebMercator = "web-mercator"
	CoordSystemWGS84       = "wgs84"
)

// ConversionOptions configures Converter.Convert.
type ConversionOptions struct {
	IncludeMetadata  bool
	LayerFilter      []string
	PropertyFilter   []string
	SimplifyGeometry bool
	CoordinateSystem string
}

// ConversionMetadata describes a completed conversion.
type ConversionMetadata struct {
	Layers       []string
	FeatureCount int
	Version      int
	Extent       int
	TileID       string
}

// Converter turns a decoded vectortile.Tile into an orb/geojson
// FeatureCollection, reprojecting tile-local coordinates into
// Web Mercator (and optionally WGS84), mirroring the teacher's
// Converter/ConversionOptions pair.
type Converter struct {
	decoder *Decoder
	options *ConversionOptions
	log     *logrus.Logger
}

// NewConverter returns a Converter with Web Mercator output and no
// filtering or simplification.
func NewConverter() *Converter {
	return &Converter{
		decoder: NewDecoder(),
		options: &ConversionOptions{CoordinateSystem: CoordSystemWebMercator},
		log:     logrus.StandardLogger(),
	}
}

// NewConverterWithOptions validates and applies custom options.
func NewConverterWithOptions(options *ConversionOptions) (*Converter, error) {
	if err := ValidateConversionOptions(options); err != nil {
		return nil, fmt.Errorf("invalid conversion options: %w", err)
	}
	return &Converter{decoder: NewDecoder(), options: options, log: logrus.StandardLogger()}, nil
}

// ValidateConversionOptions checks options for internal consistency.
func ValidateConversionOptions(options *ConversionOptions) error {
	if options.CoordinateSystem != CoordSystemWebMercator && options.CoordinateSystem != CoordSystemWGS84 {
		return fmt.Errorf("invalid coordinate system: %s, must be %q or %q",
			options.CoordinateSystem, CoordSystemWebMercator, CoordSystemWGS84)
	}
	return nil
}

// Convert decodes buf as a tile at (z, x, y) and returns a GeoJSON
// FeatureCollection plus conversion metadata.
func (c *Converter) Convert(buf []byte, z, x, y int) (*orbgeojson.FeatureCollection, *ConversionMetadata, error) {
	if !vectortile.IsVectorTile(buf) {
		return nil, nil, fmt.Errorf("geojson: input does not parse as a vector tile")
	}
	tile := vectortile.FromBytes(buf)
	decoded, err := c.decoder.Decode(tile, z, x, y)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode vector tile: %w", err)
	}

	fc := orbgeojson.NewFeatureCollection()
	layerNames := make([]string, 0, len(decoded.Layers))
	for name, layer := range decoded.Layers {
		layerNames = append(layerNames, name)
		if len(c.options.LayerFilter) > 0 && !contains(c.options.LayerFilter, name) {
			continue
		}
		extent := float64(layer.Extent)
		if extent == 0 {
			extent = 4096
		}
		for _, f := range layer.Features {
			if f.Geometry == nil {
				c.log.WithField("layer", name).Warn("skipping feature with nil geometry")
				continue
			}
			gf := c.convertFeature(f, name, extent, z, x, y)
			fc.Append(gf)
		}
	}

	metadata := &ConversionMetadata{
		Layers:       layerNames,
		FeatureCount: len(fc.Features),
		Version:      decoded.Version,
		Extent:       decoded.Extent,
		TileID:       decoded.TileID.String(),
	}
	return fc, metadata, nil
}

func (c *Converter) convertFeature(f *DecodedFeature, layerName string, extent float64, z, x, y int) *orbgeojson.Feature {
	geom := f.Geometry
	proj := func(p orb.Point) orb.Point { return tileToWebMercator(p[0], p[1], extent, z, x, y) }
	geom = applyGeometryTransform(geom, proj)
	if c.options.CoordinateSystem == CoordSystemWGS84 {
		geom = applyGeometryTransform(geom, webMercatorToWGS84)
	}
	if c.options.SimplifyGeometry {
		geom = simplify.DouglasPeucker(1.0).Simplify(geom)
	}

	gf := orbgeojson.NewFeature(geom)
	if f.ID != nil {
		gf.ID = fmt.Sprintf("%v", f.ID)
	}
	props := make(map[string]interface{}, len(f.Tags)+1)
	for k, v := range f.Tags {
		if len(c.options.PropertyFilter) > 0 && !contains(c.options.PropertyFilter, k) {
			continue
		}
		props[k] = v
	}
	props["_layer"] = layerName
	gf.Properties = props
	return gf
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
