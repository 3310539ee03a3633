package logbuilder

import (
	"fmt"

	"github.com/signadot/tony-format/upd/fieldref"
	"github.com/signadot/tony-format/upd/ir"
)

const setField = "$set"

// LogBuilder owns its own document. It is not safe for concurrent use.
type LogBuilder struct {
	doc  *ir.Document
	sets ir.Element
}

func New() *LogBuilder {
	lb := &LogBuilder{}
	lb.Reset()
	return lb
}

// Reset drops all entries.
func (lb *LogBuilder) Reset() {
	lb.doc = ir.New()
	sets, err := lb.doc.PushBack(lb.doc.Root(), setField, ir.EmptyObject())
	if err != nil {
		panic(err)
	}
	lb.sets = sets
}

// AddToSets records that path now holds v.
func (lb *LogBuilder) AddToSets(path string, v ir.Value) error {
	if _, err := fieldref.Parse(path); err != nil {
		return err
	}
	_, err := lb.doc.PushBack(lb.sets, path, v)
	return err
}

// AddToSetsElement records that path now holds a copy of e, which may
// belong to any document.
func (lb *LogBuilder) AddToSetsElement(path string, e ir.Element) error {
	if _, err := fieldref.Parse(path); err != nil {
		return err
	}
	_, err := lb.doc.CopyIn(lb.sets, path, e)
	return err
}

// Document returns the builder's document, shaped {"$set": {...}}.
func (lb *LogBuilder) Document() *ir.Document {
	return lb.doc
}

func (lb *LogBuilder) Len() int {
	return lb.sets.Len()
}

type Entry struct {
	Path  string
	Value ir.Element
}

func (e Entry) String() string {
	return fmt.Sprintf("%s=%s", e.Path, e.Value.Value())
}

// Entries returns the recorded assignments in insertion order. A path
// assigned more than once appears once per assignment.
func (lb *LogBuilder) Entries() []Entry {
	res := make([]Entry, 0, lb.sets.Len())
	for _, c := range lb.sets.Children() {
		res = append(res, Entry{Path: c.FieldName(), Value: c})
	}
	return res
}
