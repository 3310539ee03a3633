package parse

import (
	"fmt"

	"github.com/signadot/tony-format/upd/ir"

	"github.com/tidwall/gjson"
)

func parseJSON(d []byte) (*ir.Document, error) {
	if !gjson.ValidBytes(d) {
		return nil, fmt.Errorf("%w: invalid json", ErrParse)
	}
	r := gjson.ParseBytes(d)
	if !r.IsObject() {
		return nil, ErrNotObject
	}
	b := newBuilder()
	if err := b.jsonChildren(b.doc.Root(), r); err != nil {
		return nil, err
	}
	return b.doc, nil
}

func (b *builder) jsonChildren(parent ir.Element, r gjson.Result) error {
	var err error
	r.ForEach(func(k, v gjson.Result) bool {
		name := k.Str
		if parent.Type() == ir.ArrayType {
			name = ""
		}
		err = b.json(parent, name, v)
		return err == nil
	})
	return err
}

func (b *builder) json(parent ir.Element, name string, r gjson.Result) error {
	var v ir.Value
	switch r.Type {
	case gjson.Null:
		v = ir.Null()
	case gjson.False:
		v = ir.FromBool(false)
	case gjson.True:
		v = ir.FromBool(true)
	case gjson.String:
		v = ir.FromString(r.Str)
	case gjson.Number:
		n, err := number(r.Raw)
		if err != nil {
			return err
		}
		v = n
	case gjson.JSON:
		if r.IsArray() {
			arr, err := b.add(parent, name, ir.EmptyArray())
			if err != nil {
				return err
			}
			return b.jsonChildren(arr, r)
		}
		ext, ok, err := extended(r)
		if err != nil {
			return err
		}
		if ok {
			v = ext
			break
		}
		obj, err := b.add(parent, name, ir.EmptyObject())
		if err != nil {
			return err
		}
		return b.jsonChildren(obj, r)
	default:
		return fmt.Errorf("%w: unexpected json type %s", errInternal, r.Type)
	}
	_, err := b.add(parent, name, v)
	return err
}

// extended decodes single key type wrappers such as {"$numberLong": "5"}.
func extended(r gjson.Result) (ir.Value, bool, error) {
	var (
		key   string
		val   gjson.Result
		count int
	)
	r.ForEach(func(k, v gjson.Result) bool {
		key, val = k.Str, v
		count++
		return count < 2
	})
	if count != 1 {
		return ir.Value{}, false, nil
	}
	switch key {
	case "$numberInt":
		v, err := int32Value(val.String())
		return v, true, err
	case "$numberLong":
		v, err := int64Value(val.String())
		return v, true, err
	case "$numberDouble":
		v, err := doubleValue(val.String())
		return v, true, err
	case "$date":
		switch {
		case val.Type == gjson.String:
			v, err := dateValue(val.Str)
			return v, true, err
		case val.Type == gjson.Number:
			return ir.Value{Type: ir.DateType, Int64: val.Int()}, true, nil
		case val.IsObject() && val.Get(`\$numberLong`).Exists():
			ms, err := int64Value(val.Get(`\$numberLong`).String())
			if err != nil {
				return ir.Value{}, true, err
			}
			return ir.Value{Type: ir.DateType, Int64: ms.Int64}, true, nil
		}
		return ir.Value{}, true, fmt.Errorf("%w: bad $date %s", ErrParse, val.Raw)
	}
	return ir.Value{}, false, nil
}
