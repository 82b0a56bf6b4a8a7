//go:generate mockgen -source=$GOFILE -package=mock -destination=./mock/$GOFILE

package logstream

import (
	"context"
	"io"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
)

// Request describes one subscription to a run's log stream.
type Request struct {
	RunID string

	// Cursor resumes delivery after a previously observed position.
	// Empty means from the beginning.
	Cursor string
}

// Channel is the injected push primitive delivering run log batches.
// Implementations own reconnection and resume-cursor tracking; the first
// batch delivered after a (re)connect must be flagged via firstResponse.
type Channel interface {
	Open(ctx context.Context, req *Request, onBatch func(batch *runsmodel.LogBatch, firstResponse bool), onError func(err error)) (io.Closer, error)
}

// StatusCache is the shared key/value store holding run status records.
// Read returns a NotFound status error when no record exists for the run.
type StatusCache interface {
	Read(ctx context.Context, runID string) (*runsmodel.StatusRecord, error)
	Write(ctx context.Context, runID string, record *runsmodel.StatusRecord) error
}

// Tokenizer parses a free-text filter query into filter values.
type Tokenizer interface {
	Tokenize(query string) []FilterValue
}
