// Package parse reads JSON and YAML text into [ir.Document] values.
//
// JSON integers that fit in 32 bits become Int32 values, wider integers
// become Int64 and anything with a fraction or exponent becomes a Double.
// The extended forms {"$numberInt": "..."}, {"$numberLong": "..."},
// {"$numberDouble": "..."} and {"$date": ...} select a type explicitly.
//
// YAML follows the same integer rule and accepts the tags !int, !int32,
// !long, !int64, !double and !date for the same purpose.
package parse
