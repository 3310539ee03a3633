// Package bulk runs one update expression over a stream of documents.
//
// Documents are processed by a pool of workers. Each worker owns its own
// modifier instances, so a prepare and its apply never interleave with
// another document's. Results are delivered in input order.
package bulk
