package oplog

import "errors"

var (
	ErrEmptyLog     = errors.New("empty change log")
	ErrCorruptEntry = errors.New("corrupt oplog entry")
)
