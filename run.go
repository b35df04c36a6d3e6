package gradscout

import (
	"context"
	"time"
)

// Run records one execution of the discovery pipeline.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Queries    int       `json:"queries"`
	Hits       int       `json:"hits"`
	Scored     int       `json:"scored"`
	Rows       int       `json:"rows"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	if !r.FinishedAt.IsZero() && r.FinishedAt.Before(r.StartedAt) {
		return Errorf(EINVALID, "run cannot finish before it starts")
	}
	return nil
}

// StoredRow is a result row persisted with its run.
type StoredRow struct {
	ResultRow

	RunID    string `json:"runId"`
	Position int    `json:"position"`
	KeyHash  string `json:"keyHash"`

	// New is true when no earlier run produced a row with the same key.
	New bool `json:"new"`
}

// RunService represents a service for recording pipeline runs.
type RunService interface {
	// CreateRun stores the run and its rows in rank order.
	// The run ID is assigned by the service.
	CreateRun(ctx context.Context, run *Run, rows []*ResultRow) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRows retrieves the rows of a run in rank order.
	// Returns ENOTFOUND if the run does not exist.
	FindRows(ctx context.Context, runID string) ([]*StoredRow, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
