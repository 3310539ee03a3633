package modifier

import (
	"github.com/signadot/tony-format/upd/fieldref"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/logbuilder"
)

type Modifier interface {
	// Name is the operator, such as "$inc".
	Name() string

	// Field is the target path as given, possibly holding a positional
	// segment.
	Field() *fieldref.FieldRef

	// Init validates and captures expr, whose field name is the target path
	// and whose value is the operand. It does not touch any document.
	Init(expr ir.Element) error

	// Prepare resolves the target below root, replacing a positional
	// segment with matchedField, and computes the new value. The document
	// is not modified.
	Prepare(root ir.Element, matchedField string) (*Prepared, error)

	// Apply performs the mutation computed by Prepare. It may be called
	// at most once per Prepared value.
	Apply(p *Prepared) error

	// Log records the final value of the target in lb, whether or not
	// Apply was called.
	Log(p *Prepared, lb *logbuilder.LogBuilder) error
}

// ExecInfo describes a prepared mutation.
type ExecInfo struct {
	// FieldRef is the resolved path of the affected field.
	FieldRef *fieldref.FieldRef
	// NoOp is true when applying would change neither value nor type.
	NoOp bool
	// Context holds operator specific data.
	Context any
}

// Run prepares m against root and, unless the result is a no-op, applies
// it. The final value is logged to lb when lb is not nil.
func Run(m Modifier, root ir.Element, matchedField string, lb *logbuilder.LogBuilder) (*Prepared, error) {
	p, err := m.Prepare(root, matchedField)
	if err != nil {
		return nil, err
	}
	if !p.NoOp {
		if err := m.Apply(p); err != nil {
			return nil, err
		}
	}
	if lb != nil {
		if err := m.Log(p, lb); err != nil {
			return nil, err
		}
	}
	return p, nil
}
