package testutil

import (
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/skeleton"
)

// DateP returns a pointer to a UTC midnight date.
func DateP(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// Date returns a UTC midnight date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StrP returns a pointer to s.
func StrP(s string) *string {
	return &s
}

// SampleSchedule builds a small fully-resolved schedule: two WBS
// nodes (parent and child), three activities including a milestone,
// one dependency chain and one resource assignment.
func SampleSchedule() *domain.Schedule {
	start := Date(2024, time.March, 4)
	end := Date(2024, time.March, 22)
	return &domain.Schedule{
		ID:          "sched-1",
		Name:        "Warehouse Rollout",
		Description: "Pilot deployment",
		StartDate:   start,
		EndDate:     end,
		ProjectName: "Warehouse Rollout",
		WBS: []domain.WBSNode{
			{ID: "w-1", Code: "1", Name: "Phase 1", Level: 1, SortOrder: 1},
			{ID: "w-2", ParentID: StrP("w-1"), Code: "1.1", Name: "Site prep", Level: 2, SortOrder: 2},
		},
		Activities: []domain.Activity{
			{
				ID: "a-1", WBSID: StrP("w-1"), Code: "KICKOFF", Name: "Kickoff",
				DurationDays: 0, Kind: domain.KindMilestone,
				StartDate: DateP(2024, time.March, 4), EndDate: DateP(2024, time.March, 4),
			},
			{
				ID: "a-2", WBSID: StrP("w-2"), Code: "SURVEY", Name: "Site survey",
				DurationDays: 5, Kind: domain.KindTask,
				StartDate: DateP(2024, time.March, 5), EndDate: DateP(2024, time.March, 12),
				Predecessors: []domain.Predecessor{
					{Activity: domain.ByID("a-1", "KICKOFF"), Type: domain.FinishToStart},
				},
				Assignments: []domain.ResourceAssignment{
					{Resource: domain.Resource{ID: "r-1", Code: "ENG", Name: "Engineer"}, Units: 1.5},
				},
			},
			{
				ID: "a-3", WBSID: StrP("w-2"), Code: "FITOUT", Name: "Fit-out",
				DurationDays: 8, Kind: domain.KindTask,
				StartDate: DateP(2024, time.March, 13), EndDate: DateP(2024, time.March, 22),
				Predecessors: []domain.Predecessor{
					{Activity: domain.ByID("a-2", "SURVEY"), Type: domain.FinishToStart, LagDays: 1},
				},
			},
		},
	}
}

// SampleSkeleton builds a dependency-ordered skeleton matching the
// concrete scheduling scenario used across scheduler tests.
func SampleSkeleton() *skeleton.Skeleton {
	return &skeleton.Skeleton{
		Name: "Pilot",
		WBS: []skeleton.WBSEntry{
			{Code: "1", Name: "Phase 1", Level: 1},
		},
		Activities: []skeleton.ActivityEntry{
			{Code: "A", WBSCode: StrP("1"), Name: "Start", DurationDays: 0, Kind: "milestone"},
			{Code: "B", WBSCode: StrP("1"), Name: "Build", DurationDays: 5, Kind: "task",
				Predecessors: []skeleton.PredecessorEntry{{Code: "A"}}},
		},
	}
}
