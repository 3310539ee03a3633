package eval

import (
	"os"

	"github.com/signadot/tony-format/upd/ir"
)

// docFuncs are bound per document; see funcProtos for their signatures.
func docFuncs(root ir.Element) map[string]any {
	return map[string]any{
		"getpath": func(path string) any {
			e, err := root.Get(path)
			if err != nil {
				return nil
			}
			return ToAny(e)
		},
		"typeof": func(path string) string {
			e, err := root.Get(path)
			if err != nil || !e.Ok() {
				return "missing"
			}
			return e.Type().String()
		},
		"getenv": os.Getenv,
	}
}

func funcProtos() map[string]any {
	return docFuncs(ir.New().Root())
}
