// Package logbuilder accumulates the net effect of applied modifiers as
// a single {"$set": {"dotted.path": value, ...}} document.
//
// Entries record final values, never the operators that produced them, so
// replaying a log against any earlier state of a document converges on the
// same result.
package logbuilder
