package encode

import (
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/signadot/tony-format/upd/ir"
)

func encodeYAML(e ir.Element, w io.Writer, es *EncState) error {
	t := e.Type()
	if t.IsLeaf() || e.Len() == 0 {
		return writeString(w, yamlScalar(e, es))
	}
	return yamlBlock(e, w, es, 0)
}

// yamlBlock writes a non-empty container as block lines at indent. The
// last line is not terminated.
func yamlBlock(e ir.Element, w io.Writer, es *EncState, indent int) error {
	t := e.Type()
	pad := strings.Repeat(" ", indent)
	for i, c := range e.Children() {
		if i > 0 {
			if err := writeString(w, "\n"); err != nil {
				return err
			}
		}
		lead := es.color(t, SepColor, "-")
		if t == ir.ObjectType {
			lead = es.color(ir.ObjectType, FieldColor, yamlString(c.FieldName())) + es.color(t, SepColor, ":")
		}
		if err := writeString(w, pad+lead); err != nil {
			return err
		}
		if c.Type().IsContainer() && c.Len() > 0 {
			if err := writeString(w, "\n"); err != nil {
				return err
			}
			if err := yamlBlock(c, w, es, indent+es.indent); err != nil {
				return err
			}
			continue
		}
		if err := writeString(w, " "+yamlScalar(c, es)); err != nil {
			return err
		}
	}
	return nil
}

func yamlScalar(e ir.Element, es *EncState) string {
	v := e.Value()
	var s string
	switch v.Type {
	case ir.ObjectType:
		return es.color(v.Type, SepColor, "{}")
	case ir.ArrayType:
		return es.color(v.Type, SepColor, "[]")
	case ir.NullType:
		s = "null"
	case ir.BoolType:
		s = strconv.FormatBool(v.Bool)
	case ir.Int32Type:
		s = strconv.FormatInt(v.Int64, 10)
	case ir.Int64Type:
		s = strconv.FormatInt(v.Int64, 10)
		if es.typed {
			return es.color(v.Type, TagColor, "!long") + " " + es.color(v.Type, ValueColor, s)
		}
	case ir.DoubleType:
		s = yamlFloat(v.Float64)
	case ir.DateType:
		s = Quote(v.Time().Format(time.RFC3339Nano))
		return es.color(v.Type, TagColor, "!date") + " " + es.color(v.Type, ValueColor, s)
	case ir.StringType:
		s = yamlString(v.Str)
	}
	return es.color(v.Type, ValueColor, s)
}

func yamlFloat(f float64) string {
	switch s := ir.FormatFloat(f); s {
	case "NaN":
		return ".nan"
	case "Infinity":
		return ".inf"
	case "-Infinity":
		return "-.inf"
	default:
		return s
	}
}

// yamlString quotes s when it would otherwise read back as something
// other than the same plain string.
func yamlString(s string) string {
	if s == "" {
		return `""`
	}
	switch strings.ToLower(s) {
	case "null", "~", "true", "false", "yes", "no", "on", "off", ".nan", ".inf", "-.inf":
		return Quote(s)
	}
	if !utf8.ValidString(s) {
		return Quote(s)
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return Quote(s)
	}
	if strings.ContainsAny(s[:1], "-?:,[]{}#&*!|>'\"%@` \t") {
		return Quote(s)
	}
	if strings.ContainsAny(s, ":#\\\"") || strings.HasSuffix(s, " ") {
		return Quote(s)
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return Quote(s)
		}
	}
	return s
}
