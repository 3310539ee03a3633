// Package encode writes document elements as JSON or YAML.
//
// JSON output keeps numeric types readable: doubles always carry a
// fractional part or exponent. With EncodeTyped, 64-bit integers are
// written as {"$numberLong": "..."} so a reader can tell them from 32-bit
// ones, and YAML output tags them with !long.
//
// # Usage
//
//	encode.Encode(doc.Root(), os.Stdout)
//	encode.Encode(doc.Root(), os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//	encode.Encode(doc.Root(), w, encode.EncodeWire(true), encode.EncodeTyped(true))
package encode
