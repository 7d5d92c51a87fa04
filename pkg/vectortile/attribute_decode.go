package vectortile

import "github.com/valpere/vectortile/pkg/vectortile/internal/wire"

// Structured-value tag kinds: the low 4 bits of each v3 attribute word.
// The tag is load-bearing wire format, not an implementation detail.
const (
	svKindInlineSint = iota
	svKindInlineUint
	svKindBool
	svKindNull
	svKindDoubleIndex
	svKindFloatIndex
	svKindStringIndex
	svKindIntIndex
	svKindUintIndex
	svKindList
	svKindMap
	svKindNumberList
)

const svKindMask = 0xf
const svPayloadShift = 4

func svKind(word uint64) uint64    { return word & svKindMask }
func svPayload(word uint64) uint64 { return word >> svPayloadShift }

func svZigzagPayload(word uint64) int64 {
	u := svPayload(word)
	return int64(u>>1) ^ -int64(u&1)
}

// DecodeAttributes decodes the feature's attribute block. v2 layers
// carry a flat (key_index, value_index) pairs list; v3 layers carry the
// recursive structured-value grammar. Both report depth=0 at the top.
func (f *Feature) DecodeAttributes(h AttributeHandler) error {
	if f.layer.Version() < 3 {
		return f.decodeFlatAttributes(h)
	}
	return f.decodeStructuredAttributes(h)
}

func (f *Feature) decodeFlatAttributes(h AttributeHandler) error {
	r := wire.NewReader(f.tags)
	for !r.Done() {
		keyIdx, err := r.ReadVarint()
		if err != nil {
			return formatErrorf("attributes: %v", err)
		}
		valIdx, err := r.ReadVarint()
		if err != nil {
			return formatErrorf("attributes: %v", err)
		}
		if !tapKeyIndex(h, IndexValue(keyIdx), 0) {
			continue
		}
		key, err := f.layer.Key(IndexValue(keyIdx))
		if err != nil {
			return err
		}
		if !h.AttributeKey(key, 0) {
			continue
		}
		if !tapValueIndex(h, IndexValue(valIdx), 0) {
			continue
		}
		val, err := f.layer.ValueAt(IndexValue(valIdx))
		if err != nil {
			return err
		}
		if !emitValue(h, val, 0) {
			continue
		}
	}
	return nil
}

// emitValue fires the AttributeValue* callback matching val.Kind.
func emitValue(h AttributeHandler, val Value, depth int) bool {
	switch val.Kind {
	case ValueKindString:
		return h.AttributeValueString(val.StringVal, depth)
	case ValueKindFloat:
		return h.AttributeValueFloat(val.FloatVal, depth)
	case ValueKindDouble:
		return h.AttributeValueDouble(val.DoubleVal, depth)
	case ValueKindInt, ValueKindSint, ValueKindInlineSint:
		return h.AttributeValueInt(val.IntVal, depth)
	case ValueKindUint, ValueKindInlineUint:
		return h.AttributeValueUint(val.UintVal, depth)
	case ValueKindBool:
		return h.AttributeValueBool(val.BoolVal, depth)
	case ValueKindNull:
		return h.AttributeValueNull(depth)
	default:
		return true
	}
}

func (f *Feature) decodeStructuredAttributes(h AttributeHandler) error {
	r := wire.NewReader(f.attributes)
	for !r.Done() {
		keyIdx, err := r.ReadVarint()
		if err != nil {
			return formatErrorf("attributes: %v", err)
		}
		if !tapKeyIndex(h, IndexValue(keyIdx), 0) {
			if err := skipStructuredValue(r); err != nil {
				return err
			}
			continue
		}
		key, err := f.layer.Key(IndexValue(keyIdx))
		if err != nil {
			return err
		}
		if !h.AttributeKey(key, 0) {
			if err := skipStructuredValue(r); err != nil {
				return err
			}
			continue
		}
		if err := decodeStructuredValue(r, f.layer, h, 0); err != nil {
			return err
		}
	}
	return nil
}

// decodeStructuredValue reads and dispatches exactly one structured
// value (and, for containers, its entire subtree) from r, firing
// handler callbacks at the given depth.
func decodeStructuredValue(r *wire.Reader, layer *Layer, h AttributeHandler, depth int) error {
	word, err := r.ReadVarint()
	if err != nil {
		return formatErrorf("attributes: %v", err)
	}
	kind := svKind(word)
	payload := svPayload(word)

	switch kind {
	case svKindInlineSint:
		v := svZigzagPayload(word)
		h.AttributeValueInt(v, depth)
		return nil
	case svKindInlineUint:
		h.AttributeValueUint(payload, depth)
		return nil
	case svKindBool:
		h.AttributeValueBool(payload != 0, depth)
		return nil
	case svKindNull:
		h.AttributeValueNull(depth)
		return nil
	case svKindDoubleIndex:
		if payload >= uint64(len(layer.doubleValues)) {
			return &OutOfRangeError{Index: uint32(payload)}
		}
		h.AttributeValueDouble(layer.doubleValues[payload], depth)
		return nil
	case svKindFloatIndex:
		if payload >= uint64(len(layer.floatValues)) {
			return &OutOfRangeError{Index: uint32(payload)}
		}
		h.AttributeValueFloat(layer.floatValues[payload], depth)
		return nil
	case svKindStringIndex:
		if payload >= uint64(len(layer.keys)) {
			return &OutOfRangeError{Index: uint32(payload)}
		}
		h.AttributeValueString(layer.keys[payload], depth)
		return nil
	case svKindIntIndex:
		if payload >= uint64(len(layer.intValues)) {
			return &OutOfRangeError{Index: uint32(payload)}
		}
		h.AttributeValueInt(layer.intValues[payload], depth)
		return nil
	case svKindUintIndex:
		if payload >= uint64(len(layer.uintValues)) {
			return &OutOfRangeError{Index: uint32(payload)}
		}
		h.AttributeValueUint(layer.uintValues[payload], depth)
		return nil
	case svKindList:
		count := payload
		cont := h.StartListAttribute(uint32(count), depth)
		for i := uint64(0); i < count; i++ {
			if !cont {
				if err := skipStructuredValue(r); err != nil {
					return err
				}
				continue
			}
			if err := decodeStructuredValue(r, layer, h, depth+1); err != nil {
				return err
			}
		}
		h.EndListAttribute(depth)
		return nil
	case svKindMap:
		count := payload
		cont := h.StartMapAttribute(uint32(count), depth)
		for i := uint64(0); i < count; i++ {
			keyIdx, err := r.ReadVarint()
			if err != nil {
				return formatErrorf("attributes: %v", err)
			}
			if !cont {
				if err := skipStructuredValue(r); err != nil {
					return err
				}
				continue
			}
			if !tapKeyIndex(h, IndexValue(keyIdx), depth+1) {
				if err := skipStructuredValue(r); err != nil {
					return err
				}
				continue
			}
			key, err := layer.Key(IndexValue(keyIdx))
			if err != nil {
				return err
			}
			if !h.AttributeKey(key, depth+1) {
				if err := skipStructuredValue(r); err != nil {
					return err
				}
				continue
			}
			if err := decodeStructuredValue(r, layer, h, depth+1); err != nil {
				return err
			}
		}
		h.EndMapAttribute(depth)
		return nil
	case svKindNumberList:
		count := payload
		scalingIdxWord, err := r.ReadVarint()
		if err != nil {
			return formatErrorf("attributes: %v", err)
		}
		scalingIdx := IndexValue(scalingIdxWord)
		cont := h.StartNumberList(uint32(count), scalingIdx, depth)
		var acc int64
		for i := uint64(0); i < count; i++ {
			raw, err := r.ReadVarint()
			if err != nil {
				return formatErrorf("attributes: %v", err)
			}
			if !cont {
				continue
			}
			if raw == numberListNullSentinel {
				h.NumberListNullValue(depth + 1)
				continue
			}
			d := int64(raw>>1) ^ -int64(raw&1)
			acc += d
			h.NumberListValue(acc, depth+1)
		}
		h.EndNumberList(depth)
		return nil
	default:
		return formatErrorf("attributes: unknown structured value kind %d", kind)
	}
}

// numberListNullSentinel is the reserved bit pattern (all ones) that
// marks a number-list entry as null instead of a delta-encoded value.
const numberListNullSentinel = ^uint64(0)

// SkipStructuredValue consumes exactly one structured value (and, for
// containers, its whole subtree) from r without firing any handler
// callback. It is the primitive the decoder uses internally whenever a
// handler declines a subtree, and is exported so fuzz/scan targets can
// validate cursor alignment independent of a concrete handler.
func SkipStructuredValue(r *wire.Reader) error {
	return skipStructuredValue(r)
}

func skipStructuredValue(r *wire.Reader) error {
	word, err := r.ReadVarint()
	if err != nil {
		return formatErrorf("attributes: %v", err)
	}
	kind := svKind(word)
	payload := svPayload(word)
	switch kind {
	case svKindInlineSint, svKindInlineUint, svKindBool, svKindNull,
		svKindDoubleIndex, svKindFloatIndex, svKindStringIndex,
		svKindIntIndex, svKindUintIndex:
		return nil
	case svKindList:
		for i := uint64(0); i < payload; i++ {
			if err := skipStructuredValue(r); err != nil {
				return err
			}
		}
		return nil
	case svKindMap:
		for i := uint64(0); i < payload; i++ {
			if _, err := r.ReadVarint(); err != nil {
				return formatErrorf("attributes: %v", err)
			}
			if err := skipStructuredValue(r); err != nil {
				return err
			}
		}
		return nil
	case svKindNumberList:
		if _, err := r.ReadVarint(); err != nil {
			return formatErrorf("attributes: %v", err)
		}
		for i := uint64(0); i < payload; i++ {
			if _, err := r.ReadVarint(); err != nil {
				return formatErrorf("attributes: %v", err)
			}
		}
		return nil
	default:
		return formatErrorf("attributes: unknown structured value kind %d", kind)
	}
}

// DecodeGeometricAttributes decodes the feature's per-vertex geometric
// attribute stream: a flat sequence of structured values (no keys),
// one per vertex, in the same order vertices are emitted by
// DecodeGeometry. See spec 4.6.
func (f *Feature) DecodeGeometricAttributes(h AttributeHandler) error {
	r := wire.NewReader(f.geomAttrs)
	for !r.Done() {
		if err := decodeStructuredValue(r, f.layer, h, 0); err != nil {
			return err
		}
	}
	return nil
}
