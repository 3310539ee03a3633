package eval

import (
	"github.com/signadot/tony-format/upd/ir"
)

// ToAny converts e to plain Go values: map[string]any, []any, int,
// int64, float64, string, bool, time.Time or nil.
func ToAny(e ir.Element) any {
	if !e.Ok() {
		return nil
	}
	v := e.Value()
	switch v.Type {
	case ir.ObjectType:
		res := make(map[string]any, e.Len())
		for _, c := range e.Children() {
			res[c.FieldName()] = ToAny(c)
		}
		return res
	case ir.ArrayType:
		res := make([]any, 0, e.Len())
		for _, c := range e.Children() {
			res = append(res, ToAny(c))
		}
		return res
	case ir.Int32Type:
		return int(v.Int64)
	case ir.Int64Type:
		return v.Int64
	case ir.DoubleType:
		return v.Float64
	case ir.StringType:
		return v.Str
	case ir.BoolType:
		return v.Bool
	case ir.DateType:
		return v.Time()
	default:
		return nil
	}
}

// DocEnv builds the environment for evaluating a filter against doc. It
// has the same Go type as the environment filters are compiled with.
func DocEnv(doc *ir.Document) map[string]any {
	root := doc.Root()
	fields := ToAny(root).(map[string]any)
	env := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		env[k] = v
	}
	env["doc"] = fields
	for k, f := range docFuncs(root) {
		env[k] = f
	}
	return env
}
