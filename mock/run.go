package mock

import (
	"context"

	"github.com/fwojciec/gridiron"
)

var _ gridiron.RunService = (*RunService)(nil)

// RunService is a mock implementation of gridiron.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *gridiron.Run, index gridiron.TeamIndex) error
	FindRunByIDFn func(ctx context.Context, id string) (*gridiron.Run, error)
	FindRunsFn    func(ctx context.Context, filter gridiron.RunFilter) ([]*gridiron.Run, error)
	FindRecordsFn func(ctx context.Context, filter gridiron.RecordFilter) ([]*gridiron.ScheduleRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *gridiron.Run, index gridiron.TeamIndex) error {
	return s.CreateRunFn(ctx, run, index)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*gridiron.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter gridiron.RunFilter) ([]*gridiron.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRecords(ctx context.Context, filter gridiron.RecordFilter) ([]*gridiron.ScheduleRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}
