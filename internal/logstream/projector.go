package logstream

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
)

// Projector scans incoming batches for lifecycle markers and keeps the
// shared status cache in sync. The accumulated log sequence stays the
// source of truth; the cache entry is a convenience projection for other
// consumers.
type Projector struct {
	cache StatusCache
}

// NewProjector creates a projector writing to the given cache.
func NewProjector(cache StatusCache) *Projector {
	return &Projector{cache: cache}
}

// ScanStatus returns the last lifecycle marker observed in the events, in
// order. The second return is false when the events carry no marker.
func ScanStatus(events []runsmodel.LogEvent) (runsmodel.Status, bool) {
	var (
		derived runsmodel.Status
		seen    bool
	)

	for _, ev := range events {
		switch ev.(type) {
		case *runsmodel.RunStartEvent:
			derived, seen = runsmodel.StatusStarted, true
		case *runsmodel.RunSuccessEvent:
			derived, seen = runsmodel.StatusSuccess, true
		case *runsmodel.RunFailureEvent, *runsmodel.RunInitFailureEvent:
			derived, seen = runsmodel.StatusFailure, true
		}
	}

	return derived, seen
}

// Project derives the run status from one batch's accumulated events and
// writes it to the cache. The projector only updates an existing record;
// a missing record means its creator has not run yet and the write is
// skipped. A terminal status also clears the record's CanTerminate flag.
func (p *Projector) Project(ctx context.Context, runID string, events []runsmodel.LogEvent) error {
	derived, ok := ScanStatus(events)
	if !ok {
		return nil
	}

	record, err := p.cache.Read(ctx, runID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return err
	}

	record.Status = derived
	if derived.IsTerminal() {
		record.CanTerminate = false
	}

	return p.cache.Write(ctx, runID, record)
}
