package modifier

import (
	"fmt"

	"github.com/signadot/tony-format/upd/debug"
	"github.com/signadot/tony-format/upd/fieldref"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/logbuilder"
)

type incSym struct{ name }

func Inc() Symbol { return &incSym{name: "$inc"} }

func (s *incSym) Instance() Modifier { return &incMod{} }

// incMod adds a numeric operand to a numeric field, creating the field
// with the operand when it is missing.
type incMod struct {
	ref     *fieldref.FieldRef
	operand ir.Value
}

func (m *incMod) Name() string              { return "$inc" }
func (m *incMod) Field() *fieldref.FieldRef { return m.ref }

func (m *incMod) Init(expr ir.Element) error {
	ref, err := initField(expr)
	if err != nil {
		return err
	}
	if !expr.IsNumber() {
		return fmt.Errorf("%w: cannot increment with %s value for %q",
			ErrInvalidOperandType, expr.Type(), expr.FieldName())
	}
	m.ref = ref
	m.operand = expr.Value()
	return nil
}

func (m *incMod) Prepare(root ir.Element, matchedField string) (*Prepared, error) {
	p, err := resolve(m, root, matchedField)
	if err != nil {
		return nil, err
	}
	if !p.Exists() {
		p.newValue = m.operand
	} else {
		existing := p.found.Value()
		if !existing.IsNumber() {
			return nil, fmt.Errorf("%w: cannot increment %s value at %q",
				ErrPathTypeConflict, existing.Type, p.FieldRef)
		}
		sum, err := ir.Add(existing, m.operand)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p.FieldRef, err)
		}
		p.newValue = sum
		p.NoOp = ir.Identical(existing, sum)
	}
	if debug.Prepare() {
		debug.Logf("prepare $inc %s by %s: new %s %s noop %t\n",
			p.FieldRef, m.operand, p.newValue.Type, p.newValue, p.NoOp)
	}
	return p, nil
}

func (m *incMod) Apply(p *Prepared) error {
	if err := p.check(m); err != nil {
		return err
	}
	return p.store()
}

func (m *incMod) Log(p *Prepared, lb *logbuilder.LogBuilder) error {
	return p.log(m, lb)
}
