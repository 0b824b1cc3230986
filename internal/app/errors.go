package service

import "errors"

// ErrInvalidRequest is returned when a request is missing required input.
var ErrInvalidRequest = errors.New("invalid request")
