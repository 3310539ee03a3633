package ir

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/tony-format/upd/fieldref"
)

// Handle addresses an element within its Document's arena.
type Handle int32

const NoHandle Handle = -1

// Mode tracks whether a document's encoded form can still be patched in
// place. The only transition is InPlaceEligible -> RebuildRequired.
type Mode int

const (
	InPlaceEligible Mode = iota
	RebuildRequired
)

func (m Mode) String() string {
	switch m {
	case InPlaceEligible:
		return "InPlaceEligible"
	case RebuildRequired:
		return "RebuildRequired"
	}
	return "<unknown mode>"
}

type rep struct {
	value    Value
	name     string
	parent   Handle
	children []Handle
}

// Document owns a tree of elements. It is not safe for concurrent use.
type Document struct {
	reps []rep
	root Handle
	mode Mode
}

// New returns a document whose root is an empty object.
func New() *Document {
	d := &Document{}
	d.root = d.alloc(rep{value: EmptyObject(), parent: NoHandle})
	return d
}

func (d *Document) alloc(r rep) Handle {
	d.reps = append(d.reps, r)
	return Handle(len(d.reps) - 1)
}

func (d *Document) rep(h Handle) *rep {
	return &d.reps[h]
}

func (d *Document) Root() Element {
	return Element{doc: d, h: d.root}
}

func (d *Document) Mode() Mode {
	return d.mode
}

func (d *Document) IsInPlaceEligible() bool {
	return d.mode == InPlaceEligible
}

func (d *Document) disableInPlace() {
	d.mode = RebuildRequired
}

// Size returns the encoded size of the whole document.
func (d *Document) Size() int {
	return d.Root().Size()
}

func (d *Document) check(e Element) error {
	if e.doc != d {
		return ErrForeignElement
	}
	if !d.attached(e.h) {
		return ErrDetached
	}
	return nil
}

// attached reports whether h is reachable from the root.
func (d *Document) attached(h Handle) bool {
	for h != NoHandle {
		if h == d.root {
			return true
		}
		h = d.rep(h).parent
	}
	return false
}

func (d *Document) checkContainer(parent Element) error {
	if err := d.check(parent); err != nil {
		return err
	}
	if t := parent.Type(); !t.IsContainer() {
		return fmt.Errorf("%w: cannot add a child to %s at %s", ErrPathConflict, t, parent.Path())
	}
	return nil
}

// PushBack appends a new child holding v to parent. name is ignored when
// parent is an array.
func (d *Document) PushBack(parent Element, name string, v Value) (Element, error) {
	if err := d.checkContainer(parent); err != nil {
		return Element{}, err
	}
	if parent.Type() == ArrayType {
		name = ""
	}
	h := d.alloc(rep{value: v, name: name, parent: parent.h})
	p := d.rep(parent.h)
	p.children = append(p.children, h)
	d.disableInPlace()
	return Element{doc: d, h: h}, nil
}

// CreateMissing creates the segments of ref from index idx onwards below
// from, which must be the element resolved for segment idx-1 (or the root
// when idx is 0). Intermediate segments become objects, or array slots
// when their container is an array; the last segment holds v. Missing
// array positions before a numeric segment are padded with nulls.
func (d *Document) CreateMissing(from Element, ref *fieldref.FieldRef, idx int, v Value) (Element, error) {
	if idx < 0 || idx >= ref.NumParts() {
		return Element{}, fmt.Errorf("%w: no segment %d in %q", ErrPathConflict, idx, ref.Dotted())
	}
	if err := d.checkContainer(from); err != nil {
		return Element{}, fmt.Errorf("%w: creating %q", err, ref.Dotted())
	}
	cur := from
	for i := idx; i < ref.NumParts(); i++ {
		part := ref.Part(i)
		val := EmptyObject()
		if i == ref.NumParts()-1 {
			val = v
		}
		var err error
		if cur.Type() == ArrayType {
			cur, err = d.createIndex(cur, part, val)
		} else if cur.Field(part).Ok() {
			err = fmt.Errorf("%w: field %q exists at %s", ErrPathConflict, part, cur.Path())
		} else {
			cur, err = d.PushBack(cur, part, val)
		}
		if err != nil {
			return Element{}, fmt.Errorf("creating %q: %w", ref.Dotted(), err)
		}
	}
	return cur, nil
}

func (d *Document) createIndex(arr Element, part string, v Value) (Element, error) {
	index, ok := fieldref.Index(part)
	if !ok {
		return Element{}, fmt.Errorf("%w: field %q cannot name an array element at %s", ErrPathConflict, part, arr.Path())
	}
	if index < arr.Len() {
		return Element{}, fmt.Errorf("%w: array element %d exists at %s", ErrPathConflict, index, arr.Path())
	}
	for arr.Len() < index {
		if _, err := d.PushBack(arr, "", Null()); err != nil {
			return Element{}, err
		}
	}
	return d.PushBack(arr, "", v)
}

// SetValueInPlace overwrites the scalar held by e with v, which must have
// the same encoded size. The element keeps its handle and position and the
// document's mode is unchanged.
func (d *Document) SetValueInPlace(e Element, v Value) error {
	if err := d.check(e); err != nil {
		return err
	}
	r := d.rep(e.h)
	if r.value.Type.IsContainer() || v.Type.IsContainer() {
		return fmt.Errorf("%w: %s -> %s at %s", ErrNotInPlace, r.value.Type, v.Type, e.Path())
	}
	if r.value.Size() != v.Size() {
		return fmt.Errorf("%w: %s (%d bytes) -> %s (%d bytes) at %s",
			ErrNotInPlace, r.value.Type, r.value.Size(), v.Type, v.Size(), e.Path())
	}
	r.value = v
	return nil
}

// Replace detaches e and puts a new element holding v at the same
// position under the same name. The returned element replaces e, which is
// no longer usable.
func (d *Document) Replace(e Element, v Value) (Element, error) {
	if err := d.check(e); err != nil {
		return Element{}, err
	}
	old := d.rep(e.h)
	if old.parent == NoHandle {
		return Element{}, fmt.Errorf("%w: cannot replace the root", ErrPathConflict)
	}
	parent := old.parent
	name := old.name
	pos := slices.Index(d.rep(parent).children, e.h)
	if pos < 0 {
		return Element{}, errInternal
	}
	old.parent = NoHandle
	h := d.alloc(rep{value: v, name: name, parent: parent})
	d.rep(parent).children[pos] = h
	d.disableInPlace()
	return Element{doc: d, h: h}, nil
}

// SetValue writes v into e, in place when the encoded sizes allow it and
// by Replace otherwise. It returns the element now holding v.
func (d *Document) SetValue(e Element, v Value) (Element, bool, error) {
	if err := d.check(e); err != nil {
		return Element{}, false, err
	}
	cur := d.rep(e.h).value
	if !cur.Type.IsContainer() && !v.Type.IsContainer() && cur.Size() == v.Size() {
		if err := d.SetValueInPlace(e, v); err != nil {
			return Element{}, false, err
		}
		return e, true, nil
	}
	res, err := d.Replace(e, v)
	return res, false, err
}

// Detach removes e from its parent. A detached element may be attached
// again to a container of the same document.
func (d *Document) Detach(e Element) error {
	if err := d.check(e); err != nil {
		return err
	}
	r := d.rep(e.h)
	if r.parent == NoHandle {
		return fmt.Errorf("%w: cannot detach the root", ErrPathConflict)
	}
	p := d.rep(r.parent)
	p.children = slices.DeleteFunc(p.children, func(h Handle) bool { return h == e.h })
	r.parent = NoHandle
	d.disableInPlace()
	return nil
}

// Attach appends the detached element e to parent under name.
func (d *Document) Attach(parent Element, name string, e Element) error {
	if err := d.checkContainer(parent); err != nil {
		return err
	}
	if e.doc != d {
		return ErrForeignElement
	}
	if e.h == NoHandle || e.h == d.root || d.rep(e.h).parent != NoHandle {
		return fmt.Errorf("%w: element is attached", ErrPathConflict)
	}
	if parent.Field(name).Ok() {
		return fmt.Errorf("%w: field %q exists at %s", ErrPathConflict, name, parent.Path())
	}
	r := d.rep(e.h)
	if parent.Type() == ArrayType {
		name = ""
	}
	r.name = name
	r.parent = parent.h
	p := d.rep(parent.h)
	p.children = append(p.children, e.h)
	d.disableInPlace()
	return nil
}

// CopyIn appends a deep copy of src, which may belong to any document, to
// parent under name.
func (d *Document) CopyIn(parent Element, name string, src Element) (Element, error) {
	if !src.Ok() {
		return Element{}, ErrDetached
	}
	res, err := d.PushBack(parent, name, src.Value())
	if err != nil {
		return Element{}, err
	}
	for i := range src.Len() {
		c := src.Child(i)
		if _, err := d.CopyIn(res, c.FieldName(), c); err != nil {
			return Element{}, err
		}
	}
	return res, nil
}

// Clone returns a deep copy of the document. The copy starts out
// InPlaceEligible.
func (d *Document) Clone() *Document {
	res := New()
	src := d.Root()
	for i := range src.Len() {
		c := src.Child(i)
		if _, err := res.CopyIn(res.Root(), c.FieldName(), c); err != nil {
			panic(err)
		}
	}
	res.mode = InPlaceEligible
	return res
}

func indexName(i int) string {
	return strconv.Itoa(i)
}
