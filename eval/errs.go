package eval

import "errors"

var ErrFilter = errors.New("filter error")
