package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/signadot/tony-format/upd/format"
	"github.com/signadot/tony-format/upd/ir"
)

type EncState struct {
	depth, indent int

	format format.Format
	wire   bool
	typed  bool

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(e ir.Element, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	var err error
	if es.format.IsYAML() {
		err = encodeYAML(e, w, es)
	} else {
		err = encodeJSON(e, w, es)
	}
	if err != nil {
		return err
	}
	return writeString(w, "\n")
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) newline(w io.Writer) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.depth*es.indent))
}

func encodeJSON(e ir.Element, w io.Writer, es *EncState) error {
	t := e.Type()
	switch t {
	case ir.ObjectType, ir.ArrayType:
	default:
		return writeString(w, es.color(t, ValueColor, jsonScalar(e.Value(), es)))
	}
	open, close := "{", "}"
	if t == ir.ArrayType {
		open, close = "[", "]"
	}
	if e.Len() == 0 {
		return writeString(w, es.color(t, SepColor, open+close))
	}
	if err := writeString(w, es.color(t, SepColor, open)); err != nil {
		return err
	}
	es.depth++
	for i, c := range e.Children() {
		if i > 0 {
			if err := writeString(w, es.color(t, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := es.newline(w); err != nil {
			return err
		}
		if t == ir.ObjectType {
			sep := ":"
			if !es.wire {
				sep += " "
			}
			key := es.color(ir.ObjectType, FieldColor, Quote(c.FieldName()))
			if err := writeString(w, key+es.color(t, SepColor, sep)); err != nil {
				return err
			}
		}
		if err := encodeJSON(c, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := es.newline(w); err != nil {
		return err
	}
	return writeString(w, es.color(t, SepColor, close))
}

func jsonScalar(v ir.Value, es *EncState) string {
	sep := ": "
	if es.wire {
		sep = ":"
	}
	switch v.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return strconv.FormatBool(v.Bool)
	case ir.Int32Type:
		return strconv.FormatInt(v.Int64, 10)
	case ir.Int64Type:
		if es.typed {
			return `{"$numberLong"` + sep + `"` + strconv.FormatInt(v.Int64, 10) + `"}`
		}
		return strconv.FormatInt(v.Int64, 10)
	case ir.DoubleType:
		if math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
			return `{"$numberDouble"` + sep + `"` + ir.FormatFloat(v.Float64) + `"}`
		}
		return ir.FormatFloat(v.Float64)
	case ir.DateType:
		return `{"$date"` + sep + Quote(v.Time().Format(time.RFC3339Nano)) + `}`
	case ir.StringType:
		return Quote(v.Str)
	}
	panic(fmt.Sprintf("no scalar encoding for %s", v.Type))
}

// Quote returns s as a double quoted JSON string. JSON text cannot carry
// bytes that are not UTF-8, so each invalid byte is written as \ufffd, as
// encoding/json does.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			b.WriteString(`\ufffd`)
			continue
		}
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
