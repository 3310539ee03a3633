package logbuilder

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/upd/fieldref"
	"github.com/signadot/tony-format/upd/ir"

	"github.com/google/go-cmp/cmp"
)

func TestAddToSets(t *testing.T) {
	lb := New()
	if err := lb.AddToSets("a.b", ir.FromInt32(3)); err != nil {
		t.Fatal(err)
	}
	if err := lb.AddToSets("c", ir.FromInt64(4)); err != nil {
		t.Fatal(err)
	}
	if err := lb.AddToSets("a..b", ir.FromInt32(1)); !errors.Is(err, fieldref.ErrMalformedPath) {
		t.Errorf("expected ErrMalformedPath, got %v", err)
	}
	var got []string
	for _, e := range lb.Entries() {
		got = append(got, e.String())
	}
	if diff := cmp.Diff([]string{"a.b=3", "c=4"}, got); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	sets, err := lb.Document().Root().Get(setField)
	if err != nil {
		t.Fatal(err)
	}
	if sets.Type() != ir.ObjectType || sets.Len() != 2 {
		t.Errorf("unexpected $set element %s with %d children", sets.Type(), sets.Len())
	}
	if e := lb.Entries()[1]; e.Value.Type() != ir.Int64Type {
		t.Errorf("type of c not preserved: %s", e.Value.Type())
	}
	lb.Reset()
	if lb.Len() != 0 {
		t.Errorf("reset left %d entries", lb.Len())
	}
}

func TestAddToSetsElement(t *testing.T) {
	src := ir.New()
	obj, err := src.PushBack(src.Root(), "x", ir.EmptyObject())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.PushBack(obj, "y", ir.FromString("z")); err != nil {
		t.Fatal(err)
	}
	lb := New()
	if err := lb.AddToSetsElement("p.q", obj); err != nil {
		t.Fatal(err)
	}
	d, err := lb.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), `{"$set":{"p.q":{"y":"z"}}}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if obj.Document() != src || !obj.Attached() {
		t.Errorf("source element was moved")
	}
}

func TestMarshalJSON(t *testing.T) {
	lb := New()
	adds := []struct {
		path string
		v    ir.Value
	}{
		{"a", ir.FromInt32(1)},
		{"b.c", ir.FromInt64(2147483648)},
		{"d.0", ir.FromFloat(1.5)},
		{"7", ir.FromString("seven")},
		{"a", ir.FromInt32(2)},
	}
	for _, a := range adds {
		if err := lb.AddToSets(a.path, a.v); err != nil {
			t.Fatal(err)
		}
	}
	d, err := lb.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"$set":{"a":2,"b.c":{"$numberLong":"2147483648"},"d.0":1.5,"7":"seven"}}`
	if diff := cmp.Diff(want, string(d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergePatch(t *testing.T) {
	lb := New()
	for _, a := range []struct {
		path string
		v    ir.Value
	}{
		{"a", ir.FromInt32(1)},
		{"a.b", ir.FromInt32(2)},
		{"c.d", ir.FromInt64(3)},
		{"c.e", ir.FromString("x")},
	} {
		if err := lb.AddToSets(a.path, a.v); err != nil {
			t.Fatal(err)
		}
	}
	d, err := lb.MergePatch()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), `{"a":{"b":2},"c":{"d":3,"e":"x"}}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestMergePatchRejects(t *testing.T) {
	tests := []struct {
		path string
		v    ir.Value
	}{
		{"a.0", ir.FromInt32(1)},
		{"a", ir.Null()},
		{"a", ir.EmptyObject()},
	}
	for _, tc := range tests {
		lb := New()
		if err := lb.AddToSets(tc.path, tc.v); err != nil {
			t.Fatal(err)
		}
		if _, err := lb.MergePatch(); !errors.Is(err, ErrNotMergeable) {
			t.Errorf("%s=%s: expected ErrNotMergeable, got %v", tc.path, tc.v, err)
		}
	}
}

func TestReplayConverges(t *testing.T) {
	lb := New()
	if err := lb.AddToSets("a.b", ir.FromInt32(3)); err != nil {
		t.Fatal(err)
	}
	if err := lb.AddToSets("n", ir.FromInt32(10)); err != nil {
		t.Fatal(err)
	}
	want := `{"a":{"b":3},"n":10}`
	for _, start := range []string{`{}`, `{"a":{"b":2}}`, `{"a":{"b":3},"n":10}`, `{"n":"str","a":{"b":1}}`} {
		got, err := lb.Replay([]byte(start))
		if err != nil {
			t.Fatal(err)
		}
		if !jsonEqual(t, got, []byte(want)) {
			t.Errorf("replay onto %s: got %s want %s", start, got, want)
		}
	}
}
