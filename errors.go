package assist

import "errors"

// ErrInvalidInput is returned when a request fails validation before any
// upstream call is made (empty text, missing bytes, malformed schema).
var ErrInvalidInput = errors.New("invalid input")

// ErrUpstreamUnavailable is returned when the generative backend is
// unreachable or the client is misconfigured.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrUpstreamRateLimited is returned when the backend rejects the call
// because of quota exhaustion.
var ErrUpstreamRateLimited = errors.New("upstream rate limited")

// ErrUpstreamTimeout is returned when the backend call exceeds its deadline.
var ErrUpstreamTimeout = errors.New("upstream timeout")

// ErrUnparseableResponse is returned by schema-guided extraction when the
// model reply contains zero recognizable field lines.
var ErrUnparseableResponse = errors.New("unparseable model response")

// ErrInternal covers unexpected failures that map to no other sentinel.
var ErrInternal = errors.New("internal error")
