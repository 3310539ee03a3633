// Package fieldref provides dotted field paths.
//
// A FieldRef is the parsed, immutable form of a path such as "a.b.0.c".
// Each segment names an object field or, when it is all digits and the
// container is an array, an array index.
//
// # Usage
//
//	ref, err := fieldref.Parse("a.b")
//	ref.NumParts() // 2
//	ref.Part(1)    // "b"
//	ref.Dotted()   // "a.b"
//
// A segment consisting of exactly "$" is a positional placeholder. It is
// replaced by the matched array position before navigation:
//
//	ref, _ := fieldref.Parse("grades.$.score")
//	ref = ref.WithPositional("2") // grades.2.score
package fieldref
