package parse

import (
	"errors"
	"fmt"
)

var (
	errInternal     = errors.New("internal parse error")
	ErrParse        = errors.New("parse error")
	ErrKeyTag       = fmt.Errorf("%w: key cannot be tagged", ErrParse)
	ErrNotObject    = fmt.Errorf("%w: top level value must be an object", ErrParse)
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrParse)
	ErrUnknownTag   = fmt.Errorf("%w: unknown tag", ErrParse)
	ErrRange        = fmt.Errorf("%w: number out of range", ErrParse)
)
