// Package modifier implements update operators.
//
// A Modifier is initialized once with its field and operand and may then be
// run against any number of documents. Each run is a Prepare call, which
// computes the new value without touching the document, followed by
// optional Apply and Log calls that consume the returned Prepared value:
//
//	m, err := modifier.New("$inc", expr)
//	p, err := m.Prepare(doc.Root(), "")
//	err = m.Apply(p)
//	err = m.Log(p, lb)
//
// All transient state lives in the Prepared value, so a Modifier can be
// shared read-only, but one Prepared value must not be used from more than
// one goroutine.
package modifier
