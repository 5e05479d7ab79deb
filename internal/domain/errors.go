package domain

import "errors"

var (
	// ErrInvalidInput marks request values that are missing, non-finite or out of range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable marks failures of an external data provider:
	// timeouts, non-200 responses and undecodable bodies.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
