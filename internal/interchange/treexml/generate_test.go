package treexml

import (
	"strings"
	"testing"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Structure(t *testing.T) {
	out, err := Generate(testutil.SampleSchedule())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "<APIBusinessObjects>")
	assert.Contains(t, out, "</APIBusinessObjects>")
	assert.Equal(t, 2, strings.Count(out, "<WBS>"))
	assert.Equal(t, 3, strings.Count(out, "<Activity>"))
	assert.Equal(t, 2, strings.Count(out, "<Relationship>"))
	assert.Equal(t, 1, strings.Count(out, "<Resource>"))
	assert.Equal(t, 1, strings.Count(out, "<ResourceAssignment>"))
}

func TestGenerate_AscendingObjectIDsPerType(t *testing.T) {
	out, err := Generate(testutil.SampleSchedule())
	require.NoError(t, err)

	// Each element type restarts its ObjectId sequence at 1, so the
	// second WBS node and the second activity both carry ObjectId 2.
	assert.Contains(t, out, "<ObjectId>2</ObjectId>\n      <Code>1.1</Code>")
	assert.Contains(t, out, "<ObjectId>2</ObjectId>\n      <Id>SURVEY</Id>")
}

func TestGenerate_ParentObjectIDOnlyWhenResolved(t *testing.T) {
	s := testutil.SampleSchedule()
	out, err := Generate(s)
	require.NoError(t, err)
	assert.Contains(t, out, "<ParentObjectId>1</ParentObjectId>")

	// Orphan the child: no ParentObjectId element at all.
	bogus := "no-such-node"
	s.WBS[1].ParentID = &bogus
	out, err = Generate(s)
	require.NoError(t, err)
	assert.NotContains(t, out, "<ParentObjectId>")
}

func TestGenerate_DurationsAsISOHours(t *testing.T) {
	out, err := Generate(testutil.SampleSchedule())
	require.NoError(t, err)
	// SURVEY is 5 days = PT40H; the milestone is PT0H.
	assert.Contains(t, out, "<PlannedDuration>PT40H</PlannedDuration>")
	assert.Contains(t, out, "<PlannedDuration>PT0H</PlannedDuration>")
}

func TestGenerate_EscapesMetacharacters(t *testing.T) {
	s := testutil.SampleSchedule()
	s.Activities[1].Name = `<R&D> "phase" 'one'`
	out, err := Generate(s)
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;R&amp;D&gt; &quot;phase&quot; &apos;one&apos;")
	assert.NotContains(t, out, `<R&D>`)
}

func TestGenerate_NoResourceElementsWithoutAssignments(t *testing.T) {
	s := testutil.SampleSchedule()
	for i := range s.Activities {
		s.Activities[i].Assignments = nil
	}
	out, err := Generate(s)
	require.NoError(t, err)
	assert.NotContains(t, out, "<Resource>")
	assert.NotContains(t, out, "<ResourceAssignment>")
}

func TestGenerate_DanglingPredecessorDropped(t *testing.T) {
	s := testutil.SampleSchedule()
	s.Activities[2].Predecessors = []domain.Predecessor{
		{Activity: domain.ByCode("NO-SUCH"), Type: domain.FinishToStart},
	}
	out, err := Generate(s)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "<Relationship>"))
}

func TestGenerate_NilSchedule(t *testing.T) {
	_, err := Generate(nil)
	require.Error(t, err)
}

func TestRoundTrip_EntityCounts(t *testing.T) {
	s := testutil.SampleSchedule()
	out, err := Generate(s)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)

	counts := doc.CountEntities()
	assert.Equal(t, len(s.Activities), counts.Activities)
	assert.Equal(t, len(s.WBS), counts.WBSNodes)
	assert.Equal(t, 2, counts.Predecessors)
	assert.Equal(t, 1, counts.Resources)
}

func TestRoundTrip_ExactDurationSymmetry(t *testing.T) {
	// Hour re-expression is exact both ways: d days become d*8 hours
	// and divide back without remainder.
	for _, days := range []int{0, 1, 3, 7, 40, 250} {
		s := testutil.SampleSchedule()
		s.Activities[2].DurationDays = days

		out, err := Generate(s)
		require.NoError(t, err)
		doc, err := Parse(out)
		require.NoError(t, err)

		got := doc.Schedule.ActivityByCode("FITOUT")
		require.NotNil(t, got)
		assert.Equal(t, days, got.DurationDays, "days=%d", days)
	}
}

func TestRoundTrip_HierarchyAndEdges(t *testing.T) {
	s := testutil.SampleSchedule()
	out, err := Generate(s)
	require.NoError(t, err)
	doc, err := Parse(out)
	require.NoError(t, err)

	require.Len(t, doc.Schedule.WBS, 2)
	child := doc.Schedule.WBS[1]
	require.NotNil(t, child.ParentID)
	assert.Equal(t, doc.Schedule.WBS[0].ID, *child.ParentID)
	assert.Equal(t, 2, child.Level)

	fitout := doc.Schedule.ActivityByCode("FITOUT")
	require.NotNil(t, fitout)
	require.Len(t, fitout.Predecessors, 1)
	assert.Equal(t, "SURVEY", fitout.Predecessors[0].Activity.Code)
	assert.Equal(t, 1, fitout.Predecessors[0].LagDays)

	kick := doc.Schedule.ActivityByCode("KICKOFF")
	require.NotNil(t, kick)
	assert.Equal(t, domain.KindMilestone, kick.Kind)
}

func TestRoundTrip_EscapedTextRestored(t *testing.T) {
	s := testutil.SampleSchedule()
	s.Activities[1].Name = `<R&D> "phase" 'one'`
	out, err := Generate(s)
	require.NoError(t, err)
	doc, err := Parse(out)
	require.NoError(t, err)

	surv := doc.Schedule.ActivityByCode("SURVEY")
	require.NotNil(t, surv)
	assert.Equal(t, `<R&D> "phase" 'one'`, surv.Name)
}
