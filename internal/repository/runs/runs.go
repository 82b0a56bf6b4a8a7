package runs

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
	postgrespkg "github.com/juanspinelli/dagster/internal/pkg/postgres"
	redispkg "github.com/juanspinelli/dagster/internal/pkg/redis"
	svcpkg "github.com/juanspinelli/dagster/internal/pkg/svc"
)

// Repository provides run related storage operations.
type Repository struct {
	tp  trace.Tracer
	pg  postgrespkg.Store
	rdb *redispkg.Store
}

// New creates a new runs repository.
func New(pg postgrespkg.Store, rdb *redispkg.Store) *Repository {
	return &Repository{
		tp:  otel.Tracer(svcpkg.Info().GetName()),
		pg:  pg,
		rdb: rdb,
	}
}

// GetRun returns the run details by ID.
func (r *Repository) GetRun(ctx context.Context, runID string) (res *runsmodel.GetRunResponse, err error) {
	ctx, span := r.tp.Start(ctx, "Repository.GetRun")
	defer span.End()

	query := fmt.Sprintf(`
        SELECT id, pipeline_name, status, started_at, completed_at, created_at, updated_at
        FROM %s
        WHERE id = $1;
    `, postgrespkg.TableRuns)

	res = &runsmodel.GetRunResponse{}
	if err := r.pg.QueryRow(ctx, query, runID).Scan(
		&res.ID,
		&res.PipelineName,
		&res.Status,
		&res.StartedAt,
		&res.CompletedAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		if r.pg.IsNoRows(err) {
			return nil, status.Errorf(codes.NotFound, "run not found: %s", runID)
		}
		return nil, status.Errorf(codes.Internal, "failed to get run: %v", err)
	}

	return res, nil
}

// ListRunStepKeys returns the step keys of the run's execution plan in
// plan order.
func (r *Repository) ListRunStepKeys(ctx context.Context, runID string) (stepKeys []string, err error) {
	ctx, span := r.tp.Start(ctx, "Repository.ListRunStepKeys")
	defer span.End()

	query := fmt.Sprintf(`
        SELECT step_key
        FROM %s
        WHERE run_id = $1
        ORDER BY step_number;
    `, postgrespkg.TableRunSteps)

	rows, err := r.pg.Query(ctx, query, runID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list run steps: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stepKey string
		if err := rows.Scan(&stepKey); err != nil {
			return nil, status.Errorf(codes.Internal, "failed to scan run step: %v", err)
		}
		stepKeys = append(stepKeys, stepKey)
	}

	if err := rows.Err(); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list run steps: %v", err)
	}

	return stepKeys, nil
}

// SeedStatusRecord creates the run's status cache record if it does not
// exist yet. The status projector only updates existing records, so the
// record must be seeded before the log stream is consumed.
func (r *Repository) SeedStatusRecord(ctx context.Context, runID string) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.SeedStatusRecord")
	defer span.End()

	record := &runsmodel.StatusRecord{
		Status:       runsmodel.StatusNotStarted,
		CanTerminate: true,
	}

	if _, err := r.rdb.SetNX(ctx, redispkg.GetRunStatusKey(runID), record, 0); err != nil {
		return err
	}

	return nil
}
