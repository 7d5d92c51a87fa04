package geojson

import "github.com/valpere/vectortile/pkg/vectortile"

// attrBuilder implements vectortile.AttributeHandler, flattening a
// feature's v2 key/value pairs or v3 structured-value tree into plain
// Go values: map[string]interface{}, []interface{}, and scalars - the
// shape encoding/json would marshal for a GeoJSON feature's properties.
type attrBuilder struct {
	vectortile.NopAttributeHandler

	root       map[string]interface{}
	pendingKey string
	stack      []*attrFrame
}

type attrFrameKind int

const (
	frameList attrFrameKind = iota
	frameMap
	frameNumberList
)

type attrFrame struct {
	kind       attrFrameKind
	list       []interface{}
	m          map[string]interface{}
	pendingKey string
}

func newAttrBuilder() *attrBuilder {
	return &attrBuilder{root: make(map[string]interface{})}
}

func (a *attrBuilder) attach(depth int, v interface{}) {
	if depth == 0 {
		a.root[a.pendingKey] = v
		return
	}
	top := a.stack[len(a.stack)-1]
	switch top.kind {
	case frameMap:
		top.m[top.pendingKey] = v
	default:
		top.list = append(top.list, v)
	}
}

func (a *attrBuilder) AttributeKey(key string, depth int) bool {
	if depth == 0 {
		a.pendingKey = key
		return true
	}
	a.stack[len(a.stack)-1].pendingKey = key
	return true
}

func (a *attrBuilder) AttributeValueString(v string, depth int) bool { a.attach(depth, v); return true }
func (a *attrBuilder) AttributeValueBool(v bool, depth int) bool     { a.attach(depth, v); return true }
func (a *attrBuilder) AttributeValueNull(depth int) bool             { a.attach(depth, nil); return true }
func (a *attrBuilder) AttributeValueDouble(v float64, depth int) bool { a.attach(depth, v); return true }
func (a *attrBuilder) AttributeValueFloat(v float32, depth int) bool  { a.attach(depth, v); return true }
func (a *attrBuilder) AttributeValueInt(v int64, depth int) bool      { a.attach(depth, v); return true }
func (a *attrBuilder) AttributeValueUint(v uint64, depth int) bool    { a.attach(depth, v); return true }

func (a *attrBuilder) StartListAttribute(count uint32, depth int) bool {
	a.stack = append(a.stack, &attrFrame{kind: frameList, list: make([]interface{}, 0, count)})
	return true
}
func (a *attrBuilder) EndListAttribute(depth int) bool {
	top := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.attach(depth, top.list)
	return true
}

func (a *attrBuilder) StartMapAttribute(count uint32, depth int) bool {
	a.stack = append(a.stack, &attrFrame{kind: frameMap, m: make(map[string]interface{}, count)})
	return true
}
func (a *attrBuilder) EndMapAttribute(depth int) bool {
	top := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.attach(depth, top.m)
	return true
}

func (a *attrBuilder) StartNumberList(count uint32, scalingIndex vectortile.IndexValue, depth int) bool {
	a.stack = append(a.stack, &attrFrame{kind: frameNumberList, list: make([]interface{}, 0, count)})
	return true
}
func (a *attrBuilder) NumberListValue(v int64, depth int) bool {
	a.attach(depth, v)
	return true
}
func (a *attrBuilder) NumberListNullValue(depth int) bool {
	a.attach(depth, nil)
	return true
}
func (a *attrBuilder) EndNumberList(depth int) bool {
	top := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.attach(depth, top.list)
	return true
}
