package encode

import (
	"bytes"

	"github.com/signadot/tony-format/upd/ir"
)

// MustString encodes e and panics on error.
func MustString(e ir.Element, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(e, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
