package modifier

import (
	"errors"

	"github.com/signadot/tony-format/upd/fieldref"
	"github.com/signadot/tony-format/upd/ir"
)

var (
	ErrInvalidOperandType = errors.New("invalid operand type")
	ErrPathTypeConflict   = errors.New("path type conflict")
	ErrNotPrepared        = errors.New("modifier not prepared")
	ErrAlreadyApplied     = errors.New("modifier already applied")
	ErrNoPositionalMatch  = errors.New("positional operator did not match")
	ErrUnknownOperator    = errors.New("unknown update operator")
	ErrMalformedUpdate    = errors.New("malformed update")
	ErrSymbolExists       = errors.New("symbol exists")

	ErrPathConflict  = ir.ErrPathConflict
	ErrMalformedPath = fieldref.ErrMalformedPath
)
