// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"time"

	"go.uber.org/zap"
)

// RunRecorder feeds sync operations into the journal for one run. Journal
// failures are logged and swallowed: the journal observes the sync, it never
// fails it.
type RunRecorder struct {
	journal *Journal
	runID   int64
	log     *zap.Logger
}

// NewRunRecorder builds a recorder writing to run runID. A nil logger
// disables failure logging.
func NewRunRecorder(j *Journal, runID int64, log *zap.Logger) *RunRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &RunRecorder{journal: j, runID: runID, log: log}
}

// Operation records one sync operation.
func (r *RunRecorder) Operation(kind, path, title, remoteID, remoteURL string, elapsed time.Duration) {
	err := r.journal.Record(r.runID, Operation{
		RunID:     r.runID,
		Kind:      kind,
		Path:      path,
		Title:     title,
		RemoteID:  remoteID,
		RemoteURL: remoteURL,
		Duration:  elapsed,
	})
	if err != nil {
		r.log.Warn("journal write failed", zap.Error(err))
	}
}
