// Package ir provides the mutable document tree.
//
// # Overview
//
// A Document is an arena of elements addressed by stable handles. Every
// element other than the root has exactly one parent, and every container
// exclusively owns its children. Elements carry a back reference to their
// parent so dotted paths can be rebuilt from any element.
//
// Element is a small value (document pointer plus handle). It stays valid
// for as long as the element remains attached to its document.
//
// # Values
//
// Scalars are Null, Bool, Date, Int32, Int64, Double and String. Containers
// are Object and Array. Each value has an encoded size matching the binary
// document format (an int32 takes 4 bytes, an int64 or double 8, ...).
//
// # In-place mode
//
// A Document starts out InPlaceEligible. Overwriting a scalar with a value
// of the same encoded size keeps it there. Any structural change (adding,
// detaching or replacing an element) moves it to RebuildRequired, and it
// never moves back.
//
//	doc := ir.New()
//	a, _ := doc.PushBack(doc.Root(), "a", ir.FromInt32(1))
//	doc.IsInPlaceEligible() // false: a field was added
//
// # Numbers
//
// Add combines numbers along the lattice Int32 < Int64 < Double. Int32
// sums that leave the 32-bit range become Int64, and Int64 overflow is
// reported as ErrOverflow rather than wrapping.
//
// # Related Packages
//
//   - github.com/signadot/tony-format/upd/fieldref - dotted paths
//   - github.com/signadot/tony-format/upd/parse - decode text into a Document
//   - github.com/signadot/tony-format/upd/encode - encode a Document as text
package ir
