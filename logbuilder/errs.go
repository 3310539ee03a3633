package logbuilder

import "errors"

// ErrNotMergeable is returned when a log cannot be expressed as a JSON
// merge patch.
var ErrNotMergeable = errors.New("log not expressible as a merge patch")
