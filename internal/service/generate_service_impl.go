package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/repository"
	"github.com/RodolfoSilva/planneer-sub000/internal/scheduler"
	"github.com/RodolfoSilva/planneer-sub000/internal/skeleton"
)

type generateService struct {
	schedules repository.ScheduleRepo
	observer  UseCaseObserver
}

// NewGenerateService creates the skeleton-to-schedule use case.
func NewGenerateService(schedules repository.ScheduleRepo, observers ...UseCaseObserver) GenerateService {
	return &generateService{
		schedules: schedules,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *generateService) Generate(ctx context.Context, req GenerateRequest) (sched *domain.Schedule, err error) {
	started := time.Now()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "generate", started, err, fields)
	}()

	if req.Skeleton == nil {
		return nil, errors.New("generating schedule: nil skeleton")
	}
	if req.StartDate.IsZero() {
		return nil, errors.New("generating schedule: start date is required")
	}
	fields["activities"] = len(req.Skeleton.Activities)

	// Ordering problems degrade rather than fail, but they are worth
	// a log line: the resulting dates may not honor every dependency.
	if issues := skeleton.Validate(req.Skeleton); len(issues) > 0 {
		fields["validation_issues"] = len(issues)
	}

	dated, err := scheduler.Schedule(req.StartDate, req.Skeleton)
	if err != nil {
		return nil, fmt.Errorf("scheduling skeleton: %w", err)
	}

	stored, err := s.schedules.Save(ctx, dated)
	if err != nil {
		return nil, fmt.Errorf("persisting generated schedule: %w", err)
	}
	return stored, nil
}
