package eval

import (
	"errors"
	"testing"
	"time"

	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/parse"

	"github.com/expr-lang/expr"
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

func TestFilterMatch(t *testing.T) {
	doc := mustDoc(t, `{"a": 2, "b": {"c": "x"}, "big": {"$numberLong": "5000000000"}, "tags": ["p", "q"]}`)
	type matchTest struct {
		src  string
		want bool
	}
	tests := []matchTest{
		{src: `a == 2`, want: true},
		{src: `a > 2`, want: false},
		{src: `b.c == "x"`, want: true},
		{src: `doc.a + 1 == 3`, want: true},
		{src: `big > 4000000000`, want: true},
		{src: `"q" in tags`, want: true},
		{src: `missing == nil`, want: true},
		{src: `getpath("b.c") == "x"`, want: true},
		{src: `getpath("tags.1") == "q"`, want: true},
		{src: `typeof("big") == "Int64" && typeof("a") == "Int32"`, want: true},
		{src: `typeof("nope") == "missing"`, want: true},
	}
	for _, tc := range tests {
		f, err := CompileFilter(tc.src)
		if err != nil {
			t.Errorf("%s: %v", tc.src, err)
			continue
		}
		got, err := f.Match(doc)
		if err != nil {
			t.Errorf("%s: %v", tc.src, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %t", tc.src, got)
		}
	}
}

func TestFilterErrors(t *testing.T) {
	if _, err := CompileFilter(`a ==`); !errors.Is(err, ErrFilter) {
		t.Errorf("expected ErrFilter, got %v", err)
	}
	if _, err := CompileFilter(`getpath(1)`); !errors.Is(err, ErrFilter) {
		t.Errorf("expected ErrFilter for bad argument, got %v", err)
	}
	f, err := CompileFilter(`b.c.d > 1`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Match(mustDoc(t, `{"b": 1}`)); !errors.Is(err, ErrFilter) {
		t.Errorf("expected runtime ErrFilter, got %v", err)
	}
}

func TestToAny(t *testing.T) {
	doc := mustDoc(t, `{"i": 1, "l": {"$numberLong": "2"}, "d": 1.5, "s": "x", "n": null,
		"t": {"$date": 0}, "o": {"a": [true]}}`)
	got := ToAny(doc.Root())
	want := map[string]any{
		"i": 1,
		"l": int64(2),
		"d": 1.5,
		"s": "x",
		"n": nil,
		"t": time.UnixMilli(0).UTC(),
		"o": map[string]any{"a": []any{true}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDocEnvRunsCompiledFilter(t *testing.T) {
	f, err := CompileFilter(`a == 2 && getpath("a") == 2`)
	if err != nil {
		t.Fatal(err)
	}
	env := DocEnv(mustDoc(t, `{"a": 2}`))
	res, err := expr.Run(f.prg, env)
	if err != nil {
		t.Fatalf("run with doc env: %v", err)
	}
	if res != true {
		t.Errorf("got %v", res)
	}
	for _, k := range []string{"a", "doc", "getpath", "typeof", "getenv"} {
		if _, ok := env[k]; !ok {
			t.Errorf("env missing %q", k)
		}
	}
}
