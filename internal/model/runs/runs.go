package runs

import (
	"database/sql"
	"time"
)

// GetRunResponse represents the response of GetRun.
type GetRunResponse struct {
	ID           string       `db:"id"`
	PipelineName string       `db:"pipeline_name"`
	Status       string       `db:"status"`
	StartedAt    sql.NullTime `db:"started_at,omitempty"`
	CompletedAt  sql.NullTime `db:"completed_at,omitempty"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}
