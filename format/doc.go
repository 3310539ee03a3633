// Package format names the text formats documents are read and written in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f.String() // "yaml"
//
// # Related Packages
//
//   - github.com/signadot/tony-format/upd/parse - decode text into a Document
//   - github.com/signadot/tony-format/upd/encode - encode a Document as text
package format
