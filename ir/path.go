package ir

import (
	"fmt"

	"github.com/signadot/tony-format/upd/fieldref"
)

// Navigate walks ref from start. It returns the deepest element resolved
// and the number of segments resolved. When depth == ref.NumParts() the
// element is the target; otherwise segment depth is missing below the
// returned element and may be created.
//
// If the walk meets a scalar, or an array with a segment that is not an
// index, before the last segment, the path cannot exist and the error
// wraps ErrPathNotViable.
func Navigate(start Element, ref *fieldref.FieldRef) (Element, int, error) {
	cur := start
	for i := 0; i < ref.NumParts(); i++ {
		part := ref.Part(i)
		switch cur.Type() {
		case ObjectType:
			next := cur.Field(part)
			if !next.Ok() {
				return cur, i, nil
			}
			cur = next
		case ArrayType:
			index, ok := fieldref.Index(part)
			if !ok {
				return cur, i, fmt.Errorf("%w: %q cannot index the array at %q",
					ErrPathNotViable, part, ref.DottedPrefix(i))
			}
			if index >= cur.Len() {
				return cur, i, nil
			}
			cur = cur.Child(index)
		default:
			return cur, i, fmt.Errorf("%w: %q traverses %s at %q",
				ErrPathNotViable, ref.Dotted(), cur.Type(), ref.DottedPrefix(i))
		}
	}
	return cur, ref.NumParts(), nil
}

// Get returns the element at dotted, or the zero Element if any segment
// is missing.
func (e Element) Get(dotted string) (Element, error) {
	ref, err := fieldref.Parse(dotted)
	if err != nil {
		return Element{}, err
	}
	res, depth, err := Navigate(e, ref)
	if err != nil {
		return Element{}, err
	}
	if depth < ref.NumParts() {
		return Element{}, nil
	}
	return res, nil
}
