package modifier

import (
	"fmt"

	"github.com/signadot/tony-format/upd/debug"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/logbuilder"
)

// Prepared is the transient result of Modifier.Prepare.
type Prepared struct {
	ExecInfo

	owner Modifier

	// deepest existing element on the path and how many segments it
	// resolves. When depth equals the path length found is the target.
	found ir.Element
	depth int

	newValue ir.Value
	applied  bool
	inPlace  bool
}

// Exists reports whether the target was present at prepare time.
func (p *Prepared) Exists() bool {
	return p.depth == p.FieldRef.NumParts()
}

// NewValue is the value the target holds after Apply.
func (p *Prepared) NewValue() ir.Value {
	return p.newValue
}

func (p *Prepared) Applied() bool {
	return p.applied
}

// InPlace reports whether Apply overwrote the target without changing its
// encoded size.
func (p *Prepared) InPlace() bool {
	return p.inPlace
}

// resolve is the common first half of Prepare: it substitutes the
// positional segment and walks the path.
func resolve(m Modifier, root ir.Element, matchedField string) (*Prepared, error) {
	ref := m.Field()
	if ref == nil {
		return nil, fmt.Errorf("%w: %s has no field", ErrNotPrepared, m.Name())
	}
	if len(ref.Positionals()) != 0 {
		if matchedField == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoPositionalMatch, ref)
		}
		ref = ref.WithPositional(matchedField)
	}
	found, depth, err := ir.Navigate(root, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathTypeConflict, err)
	}
	return &Prepared{
		ExecInfo: ExecInfo{FieldRef: ref},
		owner:    m,
		found:    found,
		depth:    depth,
	}, nil
}

func (p *Prepared) check(m Modifier) error {
	if p == nil || p.owner != m {
		return fmt.Errorf("%w: %s", ErrNotPrepared, m.Name())
	}
	if p.applied {
		return fmt.Errorf("%w: %s %s", ErrAlreadyApplied, m.Name(), p.FieldRef)
	}
	return nil
}

// store writes the new value, creating the target when missing.
func (p *Prepared) store() error {
	if p.NoOp {
		p.applied = true
		p.inPlace = true
		return nil
	}
	doc := p.found.Document()
	if !p.Exists() {
		if _, err := doc.CreateMissing(p.found, p.FieldRef, p.depth, p.newValue); err != nil {
			return err
		}
		p.applied = true
		return nil
	}
	e, inPlace, err := doc.SetValue(p.found, p.newValue)
	if err != nil {
		return err
	}
	p.found = e
	p.applied = true
	p.inPlace = inPlace
	if debug.Apply() {
		debug.Logf("apply %s in place %t, document mode %s\n", p.FieldRef, inPlace, doc.Mode())
	}
	return nil
}

func (p *Prepared) log(m Modifier, lb *logbuilder.LogBuilder) error {
	if p == nil || p.owner != m {
		return fmt.Errorf("%w: %s", ErrNotPrepared, m.Name())
	}
	if debug.Log() {
		debug.Logf("log %s = %s\n", p.FieldRef, p.newValue)
	}
	return lb.AddToSets(p.FieldRef.Dotted(), p.newValue)
}
