package fieldref

import "errors"

var ErrMalformedPath = errors.New("malformed path")
