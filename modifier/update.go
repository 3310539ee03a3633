package modifier

import (
	"fmt"
	"strings"

	"github.com/signadot/tony-format/upd/ir"
)

// FromUpdate creates one initialized modifier per field of an update
// document such as {"$inc": {"a": 1, "b.c": 2}}, in document order.
// Overlapping fields are not detected.
func FromUpdate(update *ir.Document) ([]Modifier, error) {
	var res []Modifier
	for _, op := range update.Root().Children() {
		if !strings.HasPrefix(op.FieldName(), "$") {
			return nil, fmt.Errorf("%w: %q is not an operator", ErrMalformedUpdate, op.FieldName())
		}
		if op.Type() != ir.ObjectType {
			return nil, fmt.Errorf("%w: %s takes an object, got %s", ErrMalformedUpdate, op.FieldName(), op.Type())
		}
		for _, expr := range op.Children() {
			m, err := New(op.FieldName(), expr)
			if err != nil {
				return nil, err
			}
			res = append(res, m)
		}
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: no operators", ErrMalformedUpdate)
	}
	return res, nil
}
