// Package session carries per-user flow state through the pipeline as an
// explicit object instead of ambient globals.
package session

import (
	"errors"

	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// View names the stage of the user flow a session is in.
type View string

const (
	ViewUpload   View = "upload"
	ViewAnalysis View = "analysis"
)

// ErrNotUploaded is returned when a session tries to enter the analysis view
// before a batch has been submitted.
var ErrNotUploaded = errors.New("no batch uploaded yet")

// Session is the explicit per-user flow context. A fresh session starts in
// the upload view with nothing submitted.
type Session struct {
	UserID    string
	View      View
	Uploaded  bool
	LastBatch *models.BatchResult
}

// New returns a session in its initial state for the given user.
func New(userID string) *Session {
	return &Session{UserID: userID, View: ViewUpload}
}

// RecordBatch stores the outcome of a submission on the session. A batch with
// at least one succeeded key marks the session as uploaded.
func (s *Session) RecordBatch(r models.BatchResult) {
	s.LastBatch = &r
	if len(r.SucceededKeys) > 0 {
		s.Uploaded = true
	}
}

// ToAnalysis transitions the session to the analysis view. It fails until a
// batch has been uploaded.
func (s *Session) ToAnalysis() error {
	if !s.Uploaded {
		return ErrNotUploaded
	}
	s.View = ViewAnalysis
	return nil
}

// ToUpload transitions the session back to the upload view. Always allowed;
// previously uploaded items are untouched.
func (s *Session) ToUpload() {
	s.View = ViewUpload
}
