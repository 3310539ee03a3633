package modifier

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/upd/logbuilder"

	"github.com/google/go-cmp/cmp"
)

func TestFromUpdate(t *testing.T) {
	mods, err := FromUpdate(mustDoc(t, `{"$inc": {"a": 1, "b.c": {"$numberLong": "2"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	var fields []string
	for _, m := range mods {
		fields = append(fields, m.Name()+" "+m.Field().Dotted())
	}
	if diff := cmp.Diff([]string{"$inc a", "$inc b.c"}, fields); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	doc := mustDoc(t, `{"a": 5}`)
	lb := logbuilder.New()
	for _, m := range mods {
		if _, err := Run(m, doc.Root(), "", lb); err != nil {
			t.Fatal(err)
		}
	}
	if got := wire(doc.Root()); got != `{"a":6,"b":{"c":{"$numberLong":"2"}}}` {
		t.Errorf("got %s", got)
	}
	d, err := lb.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got := string(d); got != `{"$set":{"a":6,"b.c":{"$numberLong":"2"}}}` {
		t.Errorf("log %s", got)
	}
}

func TestFromUpdateErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{in: `{}`, err: ErrMalformedUpdate},
		{in: `{"a": 1}`, err: ErrMalformedUpdate},
		{in: `{"$inc": 1}`, err: ErrMalformedUpdate},
		{in: `{"$inc": {}}`, err: ErrMalformedUpdate},
		{in: `{"$frob": {"a": 1}}`, err: ErrUnknownOperator},
		{in: `{"$inc": {"a": "x"}}`, err: ErrInvalidOperandType},
		{in: `{"$inc": {"a.": 1}}`, err: ErrMalformedPath},
	}
	for _, tc := range tests {
		_, err := FromUpdate(mustDoc(t, tc.in))
		if !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v got %v", tc.in, tc.err, err)
		}
	}
}

func TestSymbols(t *testing.T) {
	var names []string
	for _, s := range Symbols() {
		names = append(names, s.String())
	}
	if diff := cmp.Diff([]string{"$inc"}, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := Register(Inc()); !errors.Is(err, ErrSymbolExists) {
		t.Errorf("expected ErrSymbolExists, got %v", err)
	}
	if Lookup("$nope") != nil {
		t.Errorf("lookup of unknown operator succeeded")
	}
}
