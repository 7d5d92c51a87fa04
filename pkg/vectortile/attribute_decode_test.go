package vectortile

import (
	"reflect"
	"testing"

	"github.com/valpere/vectortile/pkg/vectortile/internal/wire"
)

type recordingAttrHandler struct {
	NopAttributeHandler
	calls []string
}

func (h *recordingAttrHandler) AttributeKey(key string, depth int) bool {
	h.calls = append(h.calls, "key("+key+","+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) AttributeValueString(v string, depth int) bool {
	h.calls = append(h.calls, "string("+v+","+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) AttributeValueInt(v int64, depth int) bool {
	h.calls = append(h.calls, "int("+itoa(int(v))+","+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) AttributeValueDouble(v float64, depth int) bool {
	h.calls = append(h.calls, "double("+itoa(int(v))+","+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) StartListAttribute(count uint32, depth int) bool {
	h.calls = append(h.calls, "list_begin("+itoa(int(count))+","+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) EndListAttribute(depth int) bool {
	h.calls = append(h.calls, "list_end("+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) StartNumberList(count uint32, scalingIndex IndexValue, depth int) bool {
	h.calls = append(h.calls, "numlist_begin("+itoa(int(count))+","+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) NumberListValue(v int64, depth int) bool {
	h.calls = append(h.calls, "numlist_value("+itoa(int(v))+","+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) NumberListNullValue(depth int) bool {
	h.calls = append(h.calls, "numlist_null("+itoa(depth)+")")
	return true
}
func (h *recordingAttrHandler) EndNumberList(depth int) bool {
	h.calls = append(h.calls, "numlist_end("+itoa(depth)+")")
	return true
}

func TestDecodeFlatAttributesV2(t *testing.T) {
	layer := &Layer{version: 2, keys: []string{"name"}, values: [][]byte{serializeValue(stringValue("hello"))}}
	tagsW := wire.NewWriter()
	tagsW.AppendVarint(0) // key index
	tagsW.AppendVarint(0) // value index
	f := &Feature{layer: layer, tags: tagsW.Bytes(), elevScalingIndex: NotSetIndex}

	h := &recordingAttrHandler{}
	if err := f.DecodeAttributes(h); err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	want := []string{"key(name,0)", "string(hello,0)"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

func TestDecodeStructuredAttributesV3List(t *testing.T) {
	layer := &Layer{version: 3, keys: []string{"tags"}}
	attrW := wire.NewWriter()
	attrW.AppendVarint(0) // key index "tags"
	attrW.AppendVarint(svTag(svKindList, 2))
	attrW.AppendVarint(svTagZigzag(svKindInlineSint, 7))
	attrW.AppendVarint(svTagZigzag(svKindInlineSint, -3))
	f := &Feature{layer: layer, attributes: attrW.Bytes(), elevScalingIndex: NotSetIndex}

	h := &recordingAttrHandler{}
	if err := f.DecodeAttributes(h); err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	want := []string{"key(tags,0)", "list_begin(2,0)", "int(7,1)", "int(-3,1)", "list_end(0)"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

func TestDecodeStructuredAttributesNumberListWithNull(t *testing.T) {
	layer := &Layer{version: 3}
	attrW := wire.NewWriter()
	attrW.AppendVarint(0) // key index
	attrW.AppendVarint(svTag(svKindNumberList, 3))
	attrW.AppendVarint(0) // scaling index (NotSet would be math.MaxUint32; 0 is fine for this test)
	attrW.AppendVarint(uint64((5 << 1) ^ (5 >> 63))) // +5
	attrW.AppendVarint(numberListNullSentinel)
	attrW.AppendVarint(uint64((3 << 1) ^ (3 >> 63))) // +3 more (cumulative 8)
	layer.keys = []string{"k"}
	f := &Feature{layer: layer, attributes: attrW.Bytes(), elevScalingIndex: NotSetIndex}

	h := &recordingAttrHandler{}
	if err := f.DecodeAttributes(h); err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	want := []string{
		"key(k,0)",
		"numlist_begin(3,0)",
		"numlist_value(5,1)",
		"numlist_null(1)",
		"numlist_value(8,1)",
		"numlist_end(0)",
	}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

func FuzzSkipStructuredValue(f *testing.F) {
	seed := wire.NewWriter()
	seed.AppendVarint(svTag(svKindList, 2))
	seed.AppendVarint(svTagZigzag(svKindInlineSint, 1))
	seed.AppendVarint(svTag(svKindNumberList, 2))
	seed.AppendVarint(0)
	seed.AppendVarint(numberListNullSentinel)
	seed.AppendVarint(uint64((2 << 1) ^ (2 >> 63)))
	f.Add(seed.Bytes())
	f.Add([]byte{})
	f.Add([]byte{svKindBool})

	f.Fuzz(func(t *testing.T, data []byte) {
		r := wire.NewReader(data)
		// Either it errors (truncated/unknown kind) or it consumes a
		// prefix of data without panicking; both are acceptable, a
		// panic is not.
		_ = skipStructuredValue(r)
	})
}

func TestSkipStructuredValueConsumesWholeSubtree(t *testing.T) {
	w := wire.NewWriter()
	w.AppendVarint(svTag(svKindList, 2))
	w.AppendVarint(svTagZigzag(svKindInlineSint, 1))
	w.AppendVarint(svTag(svKindMap, 1))
	w.AppendVarint(5) // key index inside the nested map
	w.AppendVarint(svTagZigzag(svKindInlineSint, 2))
	w.AppendVarint(42) // sentinel trailing byte proving the cursor landed exactly here
	r := wire.NewReader(w.Bytes())
	if err := SkipStructuredValue(r); err != nil {
		t.Fatalf("SkipStructuredValue: %v", err)
	}
	trailing, err := r.ReadVarint()
	if err != nil {
		t.Fatalf("ReadVarint after skip: %v", err)
	}
	if trailing != 42 {
		t.Errorf("trailing varint = %d, want 42", trailing)
	}
}
