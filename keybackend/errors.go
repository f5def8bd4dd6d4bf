package keybackend

import "errors"

// ErrEmptySecret is returned when no usable shared secret is configured.
var ErrEmptySecret = errors.New("shared secret is empty")
