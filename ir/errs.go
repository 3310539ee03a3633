package ir

import (
	"errors"
)

var (
	errInternal = errors.New("internal error")

	ErrPathConflict   = errors.New("path conflict")
	ErrPathNotViable  = errors.New("path not viable")
	ErrNotInPlace     = errors.New("value cannot be written in place")
	ErrOverflow       = errors.New("numeric overflow")
	ErrNotNumber      = errors.New("not a number")
	ErrDetached       = errors.New("element is not attached")
	ErrForeignElement = errors.New("element belongs to another document")
)
