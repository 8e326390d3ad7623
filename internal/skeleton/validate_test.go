package skeleton_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RodolfoSilva/planneer-sub000/internal/skeleton"
	"github.com/RodolfoSilva/planneer-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanSkeleton(t *testing.T) {
	assert.Empty(t, skeleton.Validate(testutil.SampleSkeleton()))
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	sk := &skeleton.Skeleton{
		Name: "Broken",
		WBS: []skeleton.WBSEntry{
			{Code: "1", Name: "Phase 1"},
			{Code: "1", Name: "Duplicate"},
			{Code: "", Name: "Nameless"},
		},
		Activities: []skeleton.ActivityEntry{
			{Code: "A", Name: "a", DurationDays: -2},
			{Code: "A", Name: "dup"},
		},
	}
	errs := skeleton.Validate(sk)
	require.Len(t, errs, 4)
}

func TestValidate_ParentMustComeFirst(t *testing.T) {
	sk := &skeleton.Skeleton{
		WBS: []skeleton.WBSEntry{
			{Code: "1.1", Name: "Child", ParentCode: testutil.StrP("1")},
			{Code: "1", Name: "Parent"},
		},
	}
	errs := skeleton.Validate(sk)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "not defined earlier")
}

func TestValidate_UnknownWBSCode(t *testing.T) {
	sk := &skeleton.Skeleton{
		WBS: []skeleton.WBSEntry{{Code: "1", Name: "Phase 1"}},
		Activities: []skeleton.ActivityEntry{
			{Code: "A", Name: "a", WBSCode: testutil.StrP("nope")},
		},
	}
	errs := skeleton.Validate(sk)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "wbs_code")
}

func TestValidate_MilestoneWithDuration(t *testing.T) {
	sk := &skeleton.Skeleton{
		Activities: []skeleton.ActivityEntry{
			{Code: "M", Name: "m", Kind: "milestone", DurationDays: 3},
		},
	}
	errs := skeleton.Validate(sk)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "zero duration")
}

func TestValidate_ForwardPredecessorReference(t *testing.T) {
	sk := &skeleton.Skeleton{
		Activities: []skeleton.ActivityEntry{
			{Code: "A", Name: "a", Predecessors: []skeleton.PredecessorEntry{{Code: "B"}}},
			{Code: "B", Name: "b"},
		},
	}
	errs := skeleton.Validate(sk)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `predecessor "B"`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sk.json")
	content := `{
	  "name": "Pilot",
	  "wbs": [{"code": "1", "name": "Phase 1", "level": 1}],
	  "activities": [
	    {"code": "A", "wbs_code": "1", "name": "Start", "duration_days": 0, "kind": "milestone"},
	    {"code": "B", "wbs_code": "1", "name": "Build", "duration_days": 5,
	     "predecessors": [{"code": "A", "lag_days": 1}]}
	  ]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sk, err := skeleton.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Pilot", sk.Name)
	require.Len(t, sk.WBS, 1)
	require.Len(t, sk.Activities, 2)
	require.Len(t, sk.Activities[1].Predecessors, 1)
	assert.Equal(t, 1, sk.Activities[1].Predecessors[0].LagDays)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := skeleton.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
	_, err := skeleton.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing skeleton file")
}
