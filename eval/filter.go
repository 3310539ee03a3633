package eval

import (
	"fmt"

	"github.com/signadot/tony-format/upd/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression. It is safe for concurrent use.
type Filter struct {
	src string
	prg *vm.Program
}

func CompileFilter(src string) (*Filter, error) {
	prg, err := expr.Compile(src,
		expr.Env(funcProtos()),
		expr.AllowUndefinedVariables(),
		expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %w", ErrFilter, src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match reports whether doc satisfies the filter.
func (f *Filter) Match(doc *ir.Document) (bool, error) {
	res, err := expr.Run(f.prg, DocEnv(doc))
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrFilter, f.src, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %T", ErrFilter, f.src, res)
	}
	return b, nil
}
