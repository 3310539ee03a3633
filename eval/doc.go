// Package eval evaluates expr-lang predicates against documents.
//
// A filter sees every top level field of the document as a variable, the
// whole document as doc, and the helper functions getpath, typeof and
// getenv. Fields the document lacks read as nil.
package eval
