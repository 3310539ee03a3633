package ir

import (
	"slices"
	"strings"
)

// Element refers to one element of a Document. The zero Element refers to
// nothing.
type Element struct {
	doc *Document
	h   Handle
}

func (e Element) Ok() bool {
	return e.doc != nil && e.h != NoHandle
}

func (e Element) Document() *Document {
	return e.doc
}

func (e Element) Handle() Handle {
	return e.h
}

func (e Element) rep() *rep {
	return e.doc.rep(e.h)
}

func (e Element) Type() Type {
	return e.rep().value.Type
}

func (e Element) IsNumber() bool {
	return e.Type().IsNumber()
}

// Value returns the scalar payload. For containers only Type is set.
func (e Element) Value() Value {
	return e.rep().value
}

// FieldName returns the name under which e is stored in its parent
// object, or "" for array elements and the root.
func (e Element) FieldName() string {
	return e.rep().name
}

// Attached reports whether e is reachable from its document's root.
func (e Element) Attached() bool {
	return e.Ok() && e.doc.attached(e.h)
}

// Parent returns the element's container, or the zero Element for the
// root and detached elements.
func (e Element) Parent() Element {
	p := e.rep().parent
	if p == NoHandle {
		return Element{}
	}
	return Element{doc: e.doc, h: p}
}

// Index returns the position of e among its parent's children, or -1.
func (e Element) Index() int {
	p := e.Parent()
	if !p.Ok() {
		return -1
	}
	for i, h := range p.rep().children {
		if h == e.h {
			return i
		}
	}
	return -1
}

func (e Element) Len() int {
	return len(e.rep().children)
}

func (e Element) Child(i int) Element {
	return Element{doc: e.doc, h: e.rep().children[i]}
}

func (e Element) Children() []Element {
	kids := e.rep().children
	res := make([]Element, len(kids))
	for i, h := range kids {
		res[i] = Element{doc: e.doc, h: h}
	}
	return res
}

// Field returns the first child of an object named name.
func (e Element) Field(name string) Element {
	if e.Type() != ObjectType {
		return Element{}
	}
	for _, h := range e.rep().children {
		if e.doc.rep(h).name == name {
			return Element{doc: e.doc, h: h}
		}
	}
	return Element{}
}

// Size returns the encoded size of e's value.
func (e Element) Size() int {
	v := e.Value()
	if v.Type.IsLeaf() {
		return v.Size()
	}
	n := 4 + 1
	for i, c := range e.Children() {
		name := c.FieldName()
		if v.Type == ArrayType {
			name = indexName(i)
		}
		n += 1 + len(name) + 1 + c.Size()
	}
	return n
}

// Path returns the dotted path from the root to e. Array elements are
// named by position.
func (e Element) Path() string {
	var parts []string
	for cur := e; ; {
		p := cur.Parent()
		if !p.Ok() {
			break
		}
		if p.Type() == ArrayType {
			parts = append(parts, indexName(cur.Index()))
		} else {
			parts = append(parts, cur.FieldName())
		}
		cur = p
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}
