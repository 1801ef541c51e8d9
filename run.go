package gridiron

import (
	"context"
	"time"
)

// Run records one generation of the team index.
type Run struct {
	ID        string         `json:"id"`
	Updated   time.Time      `json:"updated"`
	Teams     int            `json:"teams"`
	Records   int            `json:"records"`
	Documents []*RunDocument `json:"documents"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Updated.IsZero() {
		return Errorf(EINVALID, "run updated time required")
	}
	for _, d := range r.Documents {
		if d.Class == "" {
			return Errorf(EINVALID, "run document classification required")
		}
	}
	return nil
}

// RunDocument summarizes one classification document processed by a run.
type RunDocument struct {
	Class   string `json:"class"`
	URL     string `json:"url"`
	Hash    string `json:"hash"`
	Bytes   int    `json:"bytes"`
	Teams   int    `json:"teams"`
	Records int    `json:"records"`
}

// RunService represents a service for recording runs and their records.
type RunService interface {
	// CreateRun stores run together with every record of index.
	// The run ID is assigned by the service.
	CreateRun(ctx context.Context, run *Run, index TeamIndex) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRecords retrieves records matching the filter in index order.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*ScheduleRecord, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	RunID *string `json:"runId"`
	Key   *string `json:"key"`
	Class *string `json:"class"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
