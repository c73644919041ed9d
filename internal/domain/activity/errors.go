package activity

import "errors"

// ErrInvalidInput indicates a missing or incomplete journal entry.
var ErrInvalidInput = errors.New("invalid activity input")
