package mock

import (
	"context"

	"github.com/fwojciec/gradscout"
)

var _ gradscout.RunService = (*RunService)(nil)

// RunService is a mock implementation of gradscout.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *gradscout.Run, rows []*gradscout.ResultRow) error
	FindRunByIDFn func(ctx context.Context, id string) (*gradscout.Run, error)
	FindRunsFn    func(ctx context.Context, filter gradscout.RunFilter) ([]*gradscout.Run, error)
	FindRowsFn    func(ctx context.Context, runID string) ([]*gradscout.StoredRow, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *gradscout.Run, rows []*gradscout.ResultRow) error {
	return s.CreateRunFn(ctx, run, rows)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*gradscout.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter gradscout.RunFilter) ([]*gradscout.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRows(ctx context.Context, runID string) ([]*gradscout.StoredRow, error) {
	return s.FindRowsFn(ctx, runID)
}
