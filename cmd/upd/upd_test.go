package main

import (
	"bytes"
	"testing"

	"github.com/signadot/tony-format/upd/bulk"
	"github.com/signadot/tony-format/upd/format"
	"github.com/signadot/tony-format/upd/logbuilder"
	"github.com/signadot/tony-format/upd/modifier"
	"github.com/signadot/tony-format/upd/parse"

	"github.com/google/go-cmp/cmp"
)

func TestLineDiff(t *testing.T) {
	a := "{\n  \"a\": 1,\n  \"b\": 2\n}\n"
	b := "{\n  \"a\": 1,\n  \"b\": 3\n}\n"
	want := "  {\n    \"a\": 1,\n-   \"b\": 2\n+   \"b\": 3\n  }\n"
	if diff := cmp.Diff(want, lineDiff(a, b, false)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := lineDiff(a, a, false); got != "  {\n    \"a\": 1,\n    \"b\": 2\n  }\n" {
		t.Errorf("unchanged input: %q", got)
	}
}

func TestSplitDocs(t *testing.T) {
	cfg := &MainConfig{}
	docs, err := splitDocs(cfg, []byte("{\"a\": 1}\n\n{\"a\": 2}\n{\"b\": {\"$numberLong\": \"3\"}}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d json documents", len(docs))
	}
	if _, err := splitDocs(cfg, []byte("{\"a\": 1}\n[2]\n")); err == nil {
		t.Errorf("expected an error for a non object line")
	}
	y := format.YAMLFormat
	cfg.InFormat = &y
	docs, err = splitDocs(cfg, []byte("a: 1\n---\na: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d yaml documents", len(docs))
	}
}

func TestWriteApply(t *testing.T) {
	doc, err := parse.Parse([]byte(`{"a": {"b": 2}}`))
	if err != nil {
		t.Fatal(err)
	}
	before := doc.Clone()
	update, err := parse.Parse([]byte(`{"$inc": {"a.b": 1}}`))
	if err != nil {
		t.Fatal(err)
	}
	mods, err := modifier.FromUpdate(update)
	if err != nil {
		t.Fatal(err)
	}
	lb := logbuilder.New()
	for _, m := range mods {
		if _, err := modifier.Run(m, doc.Root(), "", lb); err != nil {
			t.Fatal(err)
		}
	}
	type writeTest struct {
		cfg  *ApplyConfig
		diff bool
		want string
	}
	tests := []writeTest{
		{
			cfg:  &ApplyConfig{MainConfig: &MainConfig{WireOut: true}},
			want: `{"a":{"b":3}}` + "\n",
		},
		{
			cfg:  &ApplyConfig{MainConfig: &MainConfig{WireOut: true}, Log: true},
			want: `{"$set":{"a.b":3}}` + "\n",
		},
		{
			cfg:  &ApplyConfig{MainConfig: &MainConfig{Y: true}, Diff: true},
			diff: true,
			want: "  a:\n-   b: 2\n+   b: 3\n",
		},
	}
	for i, tc := range tests {
		var buf bytes.Buffer
		b := before
		if !tc.diff {
			b = nil
		}
		if err := writeApply(tc.cfg, &buf, b, doc, lb); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
			t.Errorf("%d (-want +got):\n%s", i, diff)
		}
	}
}

func TestWriteApplyUnchanged(t *testing.T) {
	doc, err := parse.Parse([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	cfg := &ApplyConfig{MainConfig: &MainConfig{}, Diff: true}
	var buf bytes.Buffer
	if err := writeApply(cfg, &buf, doc.Clone(), doc, logbuilder.New()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unchanged document produced a diff: %q", buf.String())
	}
}

func TestWriteBulkResult(t *testing.T) {
	update, err := parse.Parse([]byte(`{"$inc": {"n": 1}}`))
	if err != nil {
		t.Fatal(err)
	}
	r, err := bulk.New(bulk.Options{Update: update, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	cfg := &BulkConfig{MainConfig: &MainConfig{}, Log: true}
	docs, err := splitDocs(cfg.MainConfig, []byte("{\"n\": 1}\n{\"n\": 5}\n"))
	if err != nil {
		t.Fatal(err)
	}
	results, err := r.Run(t.Context(), docs)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	written := 0
	for i := range results {
		ok, err := writeBulkResult(cfg, &buf, &results[i], written)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			written++
		}
	}
	want := "{\"$set\":{\"n\":2}}\n{\"$set\":{\"n\":6}}\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
