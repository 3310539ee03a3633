package bulk

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/signadot/tony-format/upd/encode"
	"github.com/signadot/tony-format/upd/eval"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/modifier"
	"github.com/signadot/tony-format/upd/parse"

	"github.com/google/go-cmp/cmp"
)

func mustDoc(t *testing.T, in string) *ir.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func wire(doc *ir.Document) string {
	s := encode.MustString(doc.Root(), encode.EncodeWire(true), encode.EncodeTyped(true))
	return s[:len(s)-1]
}

func TestRunInOrder(t *testing.T) {
	var docs []*ir.Document
	var want []string
	for i := range 50 {
		docs = append(docs, mustDoc(t, fmt.Sprintf(`{"id": %d, "n": %d}`, i, i)))
		want = append(want, fmt.Sprintf(`{"id":%d,"n":%d}`, i, i+2))
	}
	r, err := New(Options{Update: mustDoc(t, `{"$inc": {"n": 2}}`), Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	res, err := r.Run(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for i, x := range res {
		if x.Index != i {
			t.Errorf("result %d has index %d", i, x.Index)
		}
		if x.Err != nil || !x.Matched || x.NoOp {
			t.Errorf("result %d: matched %t noop %t err %v", i, x.Matched, x.NoOp, x.Err)
		}
		if x.Log == nil || x.Log.Len() != 1 {
			t.Errorf("result %d: missing log", i)
		}
		got = append(got, wire(x.Doc))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRunFilterAndErrors(t *testing.T) {
	f, err := eval.CompileFilter(`kind == "a"`)
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(Options{
		Update:  mustDoc(t, `{"$inc": {"n": 1, "m": 0}}`),
		Filter:  f,
		Workers: 2,
		Rate:    1000,
	})
	if err != nil {
		t.Fatal(err)
	}
	docs := []*ir.Document{
		mustDoc(t, `{"kind": "a", "n": 1, "m": 1}`),
		mustDoc(t, `{"kind": "b", "n": 1}`),
		mustDoc(t, `{"kind": "a", "n": "x"}`),
	}
	res, err := r.Run(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}
	if !res[0].Matched || res[0].NoOp || res[0].Err != nil {
		t.Errorf("doc 0: %+v", res[0])
	}
	if got := wire(res[0].Doc); got != `{"kind":"a","n":2,"m":1}` {
		t.Errorf("doc 0: %s", got)
	}
	if res[1].Matched || res[1].Log != nil {
		t.Errorf("doc 1 should be skipped")
	}
	if !errors.Is(res[2].Err, modifier.ErrPathTypeConflict) {
		t.Errorf("doc 2: expected ErrPathTypeConflict, got %v", res[2].Err)
	}
}

func TestRunNoOp(t *testing.T) {
	r, err := New(Options{Update: mustDoc(t, `{"$inc": {"n": 0}}`), Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	res, err := r.Run(context.Background(), []*ir.Document{mustDoc(t, `{"n": 3}`)})
	if err != nil {
		t.Fatal(err)
	}
	if !res[0].NoOp || !res[0].Doc.IsInPlaceEligible() {
		t.Errorf("expected an in place no-op: %+v", res[0])
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, modifier.ErrMalformedUpdate) {
		t.Errorf("nil update: %v", err)
	}
	if _, err := New(Options{Update: mustDoc(t, `{"$nope": {"a": 1}}`)}); !errors.Is(err, modifier.ErrUnknownOperator) {
		t.Errorf("unknown operator: %v", err)
	}
}

func TestStreamEmitError(t *testing.T) {
	r, err := New(Options{Update: mustDoc(t, `{"$inc": {"n": 1}}`), Workers: 3})
	if err != nil {
		t.Fatal(err)
	}
	base := mustDoc(t, `{"n": 1}`)
	in := make(chan *ir.Document)
	go func() {
		defer close(in)
		for range 100 {
			in <- base.Clone()
		}
	}()
	stop := errors.New("stop")
	seen := 0
	err = r.Stream(context.Background(), in, func(Result) error {
		seen++
		if seen == 5 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("expected stop, got %v", err)
	}
	for range in {
	}
}
