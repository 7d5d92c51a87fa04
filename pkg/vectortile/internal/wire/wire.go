// Package wire implements the bounded-cursor protobuf wire primitives the
// vector tile codec is built on: varint/zigzag reading and writing over a
// borrowed byte slice, plus tag and length-delimited framing.
//
// vectortile treats this layer as infrastructure, not as part of the MVT
// codec itself - the varint machinery is delegated to
// github.com/gogo/protobuf/proto, which already ships in this module's
// dependency graph. Only zigzag, which gogo/protobuf exposes solely as
// unexported Buffer methods, is reimplemented here.
package wire

import (
	"errors"
	"fmt"

	"github.com/gogo/protobuf/proto"
)

// WireType is the low three bits of a protobuf tag.
type WireType uint8

const (
	Varint          WireType = 0
	Fixed64         WireType = 1
	LengthDelimited WireType = 2
	Fixed32         WireType = 5
)

// ErrTruncated is returned whenever a read runs past the end of the buffer.
var ErrTruncated = errors.New("wire: truncated input")

// Reader is a bounded, read-only cursor over a borrowed byte slice. It never
// copies the underlying bytes; length-delimited reads return sub-slices of
// the original buffer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reading starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Pos returns the current byte offset into the original buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Done reports whether the cursor has consumed the whole buffer.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// ReadVarint reads a base-128 varint, advancing the cursor.
func (r *Reader) ReadVarint() (uint64, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrTruncated
	}
	v, n := proto.DecodeVarint(r.buf[r.pos:])
	if n == 0 {
		return 0, fmt.Errorf("wire: invalid varint at offset %d", r.pos)
	}
	r.pos += n
	return v, nil
}

// ReadZigzag32 reads a zigzag-encoded 32-bit signed integer.
func (r *Reader) ReadZigzag32() (int32, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	u := uint32(v)
	return int32(u>>1) ^ -int32(u&1), nil
}

// ReadZigzag64 reads a zigzag-encoded 64-bit signed integer.
func (r *Reader) ReadZigzag64() (int64, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return int64(v>>1) ^ -int64(v&1), nil
}

// ReadTag reads a field tag, splitting it into field number and wire type.
func (r *Reader) ReadTag() (field int, wireType WireType, err error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(v >> 3), WireType(v & 0x7), nil
}

// ReadLengthDelimited reads a varint length prefix followed by that many
// bytes, returning a borrowed sub-slice of the original buffer.
func (r *Reader) ReadLengthDelimited() ([]byte, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, ErrTruncated
	}
	start := r.pos
	r.pos += int(n)
	return r.buf[start:r.pos], nil
}

// ReadFixed32 reads a little-endian 32-bit word (used for float fields).
func (r *Reader) ReadFixed32() (uint32, error) {
	if r.Len() < 4 {
		return 0, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+4]
	r.pos += 4
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// ReadFixed64 reads a little-endian 64-bit word (used for double fields).
func (r *Reader) ReadFixed64() (uint64, error) {
	if r.Len() < 8 {
		return 0, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+8]
	r.pos += 8
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// Skip advances past one field's value given its wire type, without
// interpreting the content. Used for unknown-field tolerance.
func (r *Reader) Skip(wireType WireType) error {
	switch wireType {
	case Varint:
		_, err := r.ReadVarint()
		return err
	case Fixed64:
		_, err := r.ReadFixed64()
		return err
	case LengthDelimited:
		_, err := r.ReadLengthDelimited()
		return err
	case Fixed32:
		_, err := r.ReadFixed32()
		return err
	default:
		return fmt.Errorf("wire: unknown wire type %d", wireType)
	}
}

// Writer accumulates an owned byte buffer for protobuf-style encoding.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// AppendVarint appends x as a base-128 varint.
func (w *Writer) AppendVarint(x uint64) {
	w.buf = append(w.buf, proto.EncodeVarint(x)...)
}

// AppendZigzag32 appends v as a zigzag-encoded varint.
func (w *Writer) AppendZigzag32(v int32) {
	w.AppendVarint(uint64(uint32((v << 1) ^ (v >> 31))))
}

// AppendZigzag64 appends v as a zigzag-encoded varint.
func (w *Writer) AppendZigzag64(v int64) {
	w.AppendVarint(uint64((v << 1) ^ (v >> 63)))
}

// AppendTag appends a field tag built from field number and wire type.
func (w *Writer) AppendTag(field int, wireType WireType) {
	w.AppendVarint(uint64(field)<<3 | uint64(wireType))
}

// AppendLengthDelimited appends a varint length prefix followed by b.
func (w *Writer) AppendLengthDelimited(b []byte) {
	w.AppendVarint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// AppendFixed32 appends v as a little-endian 32-bit word.
func (w *Writer) AppendFixed32(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AppendFixed64 appends v as a little-endian 64-bit word.
func (w *Writer) AppendFixed64(v uint64) {
	for i := 0; i < 8; i++ {
		w.buf = append(w.buf, byte(v))
		v >>= 8
	}
}
