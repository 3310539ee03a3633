package modifier

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/signadot/tony-format/upd/fieldref"
	"github.com/signadot/tony-format/upd/ir"
)

// Symbol names an operator and creates uninitialized instances of it.
type Symbol interface {
	String() string
	Instance() Modifier
}

type name string

func (s name) String() string {
	return string(s)
}

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

func init() {
	Register(Inc())
}

func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// Symbols returns the registered operators sorted by name.
func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	slices.SortFunc(res, func(a, b Symbol) int {
		return strings.Compare(a.String(), b.String())
	})
	return res
}

// New creates an initialized instance of the operator op from expr.
func New(op string, expr ir.Element) (Modifier, error) {
	sym := Lookup(op)
	if sym == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownOperator, op)
	}
	m := sym.Instance()
	if err := m.Init(expr); err != nil {
		return nil, err
	}
	return m, nil
}

// initField parses the field name of an operator expression and checks
// its positional segments.
func initField(expr ir.Element) (*fieldref.FieldRef, error) {
	if !expr.Ok() {
		return nil, fmt.Errorf("%w: no expression", ErrInvalidOperandType)
	}
	ref, err := fieldref.Parse(expr.FieldName())
	if err != nil {
		return nil, err
	}
	if n := len(ref.Positionals()); n > 1 {
		return nil, fmt.Errorf("%w: %q has %d positional segments", ErrMalformedPath, ref, n)
	}
	return ref, nil
}
