package orm

import "github.com/iov-one/treasury/errors"

// ErrInvalidIndex is returned when an index cannot be found or used.
var ErrInvalidIndex = errors.Register(100, "invalid index")
