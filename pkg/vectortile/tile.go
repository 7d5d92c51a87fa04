package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// Tile borrows a whole tile buffer and offers layer lookup over it.
// Tile itself holds no parsed state: every method rescans the buffer,
// matching the reference decoder's "single-pass, no caching" contract
// so that repeated lookups always reflect the buffer as given.
type Tile struct {
	buf []byte
}

// FromBytes wraps buf as a Tile without copying it. buf must outlive
// every Layer, Feature, and Value obtained from the returned Tile.
func FromBytes(buf []byte) *Tile {
	return &Tile{buf: buf}
}

// IsVectorTile reports whether buf parses as a protocol-buffer message
// consisting only of known tile-level fields (today, just repeated
// Layer submessages at tileFieldLayers). It does not validate layer
// contents; a false positive on garbage that happens to look like a
// length-delimited message stream is possible by design, matching the
// reference implementation's heuristic.
func IsVectorTile(buf []byte) bool {
	r := wire.NewReader(buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return false
		}
		if field != tileFieldLayers || wt != wire.LengthDelimited {
			return false
		}
		if _, err := r.ReadLengthDelimited(); err != nil {
			return false
		}
	}
	return true
}

// CountLayers returns the number of layer submessages in the tile,
// without constructing any Layer.
func (t *Tile) CountLayers() (int, error) {
	n := 0
	r := wire.NewReader(t.buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return 0, formatErrorf("wire: %v", err)
		}
		switch {
		case field == tileFieldLayers && wt == wire.LengthDelimited:
			if _, err := r.ReadLengthDelimited(); err != nil {
				return 0, formatErrorf("wire: %v", err)
			}
			n++
		case wt == wire.LengthDelimited:
			if _, err := r.ReadLengthDelimited(); err != nil {
				return 0, formatErrorf("wire: %v", err)
			}
		default:
			if err := r.Skip(wt); err != nil {
				return 0, formatErrorf("wire: %v", err)
			}
		}
	}
	return n, nil
}

// Layers calls fn once per layer submessage, in tile order. Returning a
// non-nil error from fn stops iteration and is returned to the caller.
func (t *Tile) Layers(fn func(*Layer) error) error {
	r := wire.NewReader(t.buf)
	for !r.Done() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return formatErrorf("wire: %v", err)
		}
		if field != tileFieldLayers {
			if err := r.Skip(wt); err != nil {
				return formatErrorf("wire: %v", err)
			}
			continue
		}
		if wt != wire.LengthDelimited {
			return formatErrorf("wire: tile field %d has unexpected wire type %d", field, wt)
		}
		buf, err := r.ReadLengthDelimited()
		if err != nil {
			return formatErrorf("wire: %v", err)
		}
		layer, err := newLayer(buf)
		if err != nil {
			return err
		}
		if err := fn(layer); err != nil {
			return err
		}
	}
	return nil
}

// GetLayer returns the i-th layer submessage (0-based).
func (t *Tile) GetLayer(i int) (*Layer, error) {
	var found *Layer
	idx := 0
	err := t.Layers(func(l *Layer) error {
		if idx == i {
			found = l
			return errStopIteration
		}
		idx++
		return nil
	})
	if err == errStopIteration {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, &OutOfRangeError{Index: uint32(i)}
	}
	return found, nil
}

// GetLayerByName returns the first layer named name. First match wins.
func (t *Tile) GetLayerByName(name string) (*Layer, error) {
	var found *Layer
	err := t.Layers(func(l *Layer) error {
		if l.Name() == name {
			found = l
			return errStopIteration
		}
		return nil
	})
	if err == errStopIteration {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}

// errStopIteration is a private sentinel used to end a Layers() walk
// early without surfacing a real error to the caller.
var errStopIteration = formatErrorf("vectortile: internal stop iteration")
