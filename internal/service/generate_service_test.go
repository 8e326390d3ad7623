package service

import (
	"context"
	"testing"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/repository"
	"github.com/RodolfoSilva/planneer-sub000/internal/skeleton"
	"github.com/RodolfoSilva/planneer-sub000/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EndToEnd(t *testing.T) {
	repo := repository.NewSQLiteScheduleRepo(testutil.NewTestDB(t))
	svc := NewGenerateService(repo)

	stored, err := svc.Generate(context.Background(), GenerateRequest{
		StartDate: testutil.Date(2024, time.March, 1),
		Skeleton:  testutil.SampleSkeleton(),
	})
	require.NoError(t, err)

	// The returned schedule carries durable ids, not the temporary
	// ones the scheduling pass handed out.
	_, err = uuid.Parse(stored.ID)
	assert.NoError(t, err)
	require.Len(t, stored.Activities, 2)
	assert.NotContains(t, stored.Activities[0].ID, "tmp")

	b := stored.ActivityByCode("B")
	require.NotNil(t, b)
	require.NotNil(t, b.StartDate)
	assert.Equal(t, testutil.Date(2024, time.March, 2), *b.StartDate)
	assert.Equal(t, testutil.Date(2024, time.March, 8), *b.EndDate)

	// And it is actually persisted.
	loaded, err := repo.GetByID(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Activities, 2)
}

func TestGenerate_OutOfOrderSkeletonStillSucceeds(t *testing.T) {
	repo := repository.NewSQLiteScheduleRepo(testutil.NewTestDB(t))
	svc := NewGenerateService(repo)

	sk := &skeleton.Skeleton{
		Name: "OutOfOrder",
		Activities: []skeleton.ActivityEntry{
			{Code: "B", Name: "Build", DurationDays: 5,
				Predecessors: []skeleton.PredecessorEntry{{Code: "A"}}},
			{Code: "A", Name: "Start", Kind: "milestone"},
		},
	}
	start := testutil.Date(2024, time.March, 1)
	stored, err := svc.Generate(context.Background(), GenerateRequest{StartDate: start, Skeleton: sk})
	require.NoError(t, err, "ordering problems degrade, they do not fail")

	b := stored.ActivityByCode("B")
	require.NotNil(t, b)
	assert.Equal(t, start, *b.StartDate)
}

func TestGenerate_NilSkeleton(t *testing.T) {
	svc := NewGenerateService(repository.NewSQLiteScheduleRepo(testutil.NewTestDB(t)))
	_, err := svc.Generate(context.Background(), GenerateRequest{
		StartDate: testutil.Date(2024, time.March, 1),
	})
	require.Error(t, err)
}

func TestGenerate_MissingStartDate(t *testing.T) {
	svc := NewGenerateService(repository.NewSQLiteScheduleRepo(testutil.NewTestDB(t)))
	_, err := svc.Generate(context.Background(), GenerateRequest{
		Skeleton: testutil.SampleSkeleton(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date")
}
