package request

import "errors"

// Validation error kinds. Every error returned by Parse wraps exactly one of them.
var (
	ErrFormat          = errors.New("malformed value")
	ErrRange           = errors.New("value out of range")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
)
