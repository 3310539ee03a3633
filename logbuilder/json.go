package logbuilder

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signadot/tony-format/upd/encode"
	"github.com/signadot/tony-format/upd/fieldref"
	"github.com/signadot/tony-format/upd/ir"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalJSON renders the log as extended JSON, keeping 64-bit integers
// typed. Later assignments to a path replace earlier ones.
func (lb *LogBuilder) MarshalJSON() ([]byte, error) {
	out := []byte(`{"$set":{}}`)
	for _, c := range lb.sets.Children() {
		raw, err := rawJSON(c, true)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, escapeKey(setField)+"."+escapeKey(c.FieldName()), raw)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MergePatch renders the log as an RFC 7386 merge patch, nesting each
// dotted path. Paths with array index segments, null values and object
// values have no merge patch equivalent and fail with ErrNotMergeable.
func (lb *LogBuilder) MergePatch() ([]byte, error) {
	out := []byte(`{}`)
	for _, c := range lb.sets.Children() {
		ref, err := fieldref.Parse(c.FieldName())
		if err != nil {
			return nil, err
		}
		switch c.Type() {
		case ir.NullType, ir.ObjectType:
			return nil, fmt.Errorf("%w: %s value at %q", ErrNotMergeable, c.Type(), ref)
		}
		parts := make([]string, ref.NumParts())
		for i := range parts {
			part := ref.Part(i)
			if _, isIndex := fieldref.Index(part); isIndex {
				return nil, fmt.Errorf("%w: index segment %q in %q", ErrNotMergeable, part, ref)
			}
			parts[i] = escapeKey(part)
			if i == len(parts)-1 {
				break
			}
			prefix := strings.Join(parts[:i+1], ".")
			if r := gjson.GetBytes(out, prefix); r.Exists() && !r.IsObject() {
				if out, err = sjson.SetRawBytes(out, prefix, []byte(`{}`)); err != nil {
					return nil, err
				}
			}
		}
		raw, err := rawJSON(c, false)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, strings.Join(parts, "."), raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Replay applies the log to the JSON document target.
func (lb *LogBuilder) Replay(target []byte) ([]byte, error) {
	patch, err := lb.MergePatch()
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(target, patch)
}

func rawJSON(e ir.Element, typed bool) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(e, buf, encode.EncodeWire(true), encode.EncodeTyped(typed)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// escapeKey makes k a single literal sjson path component.
func escapeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@', '!', ':', '=', '<', '>', '%', '$':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
