// Package models contains the domain structures shared by the uploader,
// tracker and reporting layers.
package models

// UploadItem is a single artifact submitted for processing. It exists only
// for the duration of the upload phase: once written to the artifact store
// the raw bytes are discarded.
type UploadItem struct {
	Data        []byte
	Filename    string
	ContentType string
}

// BatchResult describes the outcome of one batch submission. It is immutable
// after the upload phase completes.
//
// Requested counts the items actually attempted (after truncation to the
// batch limit); Discarded is the excess dropped before any write occurred.
// Invariant: len(SucceededKeys) + FailedCount == Requested.
type BatchResult struct {
	Requested     int
	Discarded     int
	SucceededKeys []string
	FailedCount   int
}
