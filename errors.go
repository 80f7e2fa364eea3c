package stacks

import "errors"

// ErrInvalidInput is returned when configuration or request input fails validation
var ErrInvalidInput = errors.New("invalid input")
