package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// TileBuilder accumulates an ordered list of layer builders and
// produces a complete, owned tile buffer at Serialize.
type TileBuilder struct {
	layers []*LayerBuilder
}

// NewTileBuilder returns an empty TileBuilder.
func NewTileBuilder() *TileBuilder {
	return &TileBuilder{}
}

// AddLayer appends a new layer builder with the given name, version
// (2 or 3), and extent, and returns it for feature construction. Layer
// order in the serialized tile follows insertion order.
func (t *TileBuilder) AddLayer(name string, version, extent uint32) *LayerBuilder {
	lb := newLayerBuilder(name, version, extent)
	t.layers = append(t.layers, lb)
	return lb
}

// Serialize emits a single owned byte buffer containing every layer in
// insertion order. Serialize is idempotent: calling it twice on an
// otherwise-unmodified builder produces byte-identical output, since
// layer serialization has no external state beyond the builder itself.
func (t *TileBuilder) Serialize() []byte {
	w := wire.NewWriter()
	for _, l := range t.layers {
		w.AppendTag(tileFieldLayers, wire.LengthDelimited)
		w.AppendLengthDelimited(l.serialize())
	}
	return w.Bytes()
}
