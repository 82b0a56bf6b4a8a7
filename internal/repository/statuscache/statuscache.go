package statuscache

import (
	"context"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
	redispkg "github.com/juanspinelli/dagster/internal/pkg/redis"
)

// Repository implements the shared run status cache over Redis. Records
// are keyed per run id; the Redis store serializes writes per key.
type Repository struct {
	rdb *redispkg.Store
}

// New creates a new status cache repository.
func New(rdb *redispkg.Store) *Repository {
	return &Repository{
		rdb: rdb,
	}
}

// Read returns the run's status record, or a NotFound error when no
// record exists.
func (r *Repository) Read(ctx context.Context, runID string) (*runsmodel.StatusRecord, error) {
	var record runsmodel.StatusRecord
	if err := r.rdb.Get(ctx, redispkg.GetRunStatusKey(runID), &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// Write stores the run's status record.
func (r *Repository) Write(ctx context.Context, runID string, record *runsmodel.StatusRecord) error {
	return r.rdb.Set(ctx, redispkg.GetRunStatusKey(runID), record, 0)
}
