package domain

import "errors"

// ErrInvalidQuery is returned when a caller supplies a missing or malformed parameter.
var ErrInvalidQuery = errors.New("invalid query")
