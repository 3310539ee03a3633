package modifier

import (
	"testing"

	"github.com/signadot/tony-format/upd/encode"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/parse"
)

func mustDoc(t *testing.T, in string) *ir.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatalf("parse %s: %v", in, err)
	}
	return doc
}

// newInc returns an initialized $inc on field. operand is JSON text.
func newInc(t *testing.T, field, operand string) Modifier {
	t.Helper()
	expr := mustDoc(t, `{"`+field+`": `+operand+`}`).Root().Child(0)
	m, err := New("$inc", expr)
	if err != nil {
		t.Fatalf("init %s %s: %v", field, operand, err)
	}
	return m
}

func wire(e ir.Element) string {
	s := encode.MustString(e, encode.EncodeWire(true), encode.EncodeTyped(true))
	return s[:len(s)-1]
}
