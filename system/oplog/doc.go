// Package oplog keeps a durable, sequenced journal of change logs.
//
// A journal directory holds
//
//	meta/seq      the last assigned sequence number, 8 bytes little endian
//	oplog.jsonl   one JSON entry per line
//
// Each entry is {"seq": n, "id": uuid, "ns": namespace, "ts": time,
// "o": {"$set": {...}}}.
package oplog
