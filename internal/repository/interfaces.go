package repository

import (
	"context"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
)

// ScheduleSummary is the joined listing view of a stored schedule.
type ScheduleSummary struct {
	ID            string
	Name          string
	StartDate     time.Time
	EndDate       time.Time
	ActivityCount int
}

// ScheduleRepo persists schedules. Save performs the remap boundary
// crossing: every temporary identifier the scheduler handed out is
// replaced with a durable key while parent, WBS and predecessor
// linkage is preserved. Save returns the remapped schedule as a new
// value; the input is not mutated.
type ScheduleRepo interface {
	Save(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	List(ctx context.Context) ([]ScheduleSummary, error)
	Delete(ctx context.Context, id string) error
}
