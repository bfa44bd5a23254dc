// Package common defines shared constants and sentinel errors used across the
// uploader, tracker and reporting layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors. A missing summary or metadata row is a
	// legitimate pre-completion state, not a failure.
	ErrorNotFound = errors.New("not found")

	// Client construction errors (missing or invalid credentials). Fatal to
	// the affected client, reported to the caller, never crashes the process.
	ErrConfiguration = errors.New("configuration error")

	// A single store call failed (network, timeout, rejected write). Never
	// retried automatically; surfaced per item or per poll.
	ErrStoreUnavailable = errors.New("store unavailable")
)
