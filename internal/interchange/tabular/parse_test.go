package tabular

import (
	"strings"
	"testing"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleFile is a small but complete tabular interchange file: two WBS
// nodes, three tasks (one milestone), one dependency and one resource.
const sampleFile = "ERMHDR\t8.4\t2024-03-04\tAcme\tRollout\n" +
	"%T\tPROJECT\n" +
	"%F\tproj_id\tproj_short_name\tproj_name\tplan_start_date\tplan_end_date\n" +
	"%R\t1\tROLL\tRollout\t2024-03-04\t2024-03-22\n" +
	"%T\tPROJWBS\n" +
	"%F\twbs_id\tproj_id\tparent_wbs_id\tseq_num\twbs_short_name\twbs_name\tproj_node_flag\n" +
	"%R\t10\t1\t\t1\t1\tPhase 1\tN\n" +
	"%R\t11\t1\t10\t2\t1.1\tSite prep\tN\n" +
	"%T\tTASK\n" +
	"%F\ttask_id\tproj_id\twbs_id\tclndr_id\ttask_code\ttask_name\ttask_type\ttarget_drtn_hr_cnt\ttarget_start_date\ttarget_end_date\ttask_notes\n" +
	"%R\t100\t1\t10\t1\tKICK\tKickoff\tTT_Mile\t0\t2024-03-04\t2024-03-04\t\n" +
	"%R\t101\t1\t11\t1\tSURV\tSite survey\tTT_Task\t200\t2024-03-05\t2024-04-08\tWalk the site\n" +
	"%R\t102\t1\t11\t1\tFIT\tFit-out\tTT_Task\t40\t\t\t\n" +
	"%T\tTASKPRED\n" +
	"%F\ttask_pred_id\ttask_id\tpred_task_id\tpred_type\tlag_hr_cnt\n" +
	"%R\t1\t101\t100\tPR_FS\t0\n" +
	"%T\tRSRC\n" +
	"%F\trsrc_id\trsrc_short_name\trsrc_name\n" +
	"%R\t7\tENG\tEngineer\n" +
	"%T\tTASKRSRC\n" +
	"%F\ttaskrsrc_id\ttask_id\trsrc_id\ttarget_qty\n" +
	"%R\t1\t101\t7\t1.5\n" +
	"%E\n"

func TestParse_SampleFile(t *testing.T) {
	doc, err := Parse(sampleFile)
	require.NoError(t, err)

	assert.Equal(t, domain.FormatTabular, doc.Format)
	assert.Equal(t, "Rollout", doc.Schedule.Name)
	require.Len(t, doc.Schedule.WBS, 2)
	require.Len(t, doc.Schedule.Activities, 3)
}

func TestParse_WBSHierarchy(t *testing.T) {
	doc, err := Parse(sampleFile)
	require.NoError(t, err)

	root := doc.Schedule.WBS[0]
	child := doc.Schedule.WBS[1]
	assert.Equal(t, 1, root.Level)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, 2, child.Level)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestParse_DurationHeuristic(t *testing.T) {
	doc, err := Parse(sampleFile)
	require.NoError(t, err)

	byCode := map[string]int{}
	for _, a := range doc.Schedule.Activities {
		byCode[a.Code] = a.DurationDays
	}
	// 200 exceeds 100, so it is an hour count: 200/8 = 25 days.
	assert.Equal(t, 25, byCode["SURV"])
	// 40 does not exceed 100, so it is already days.
	assert.Equal(t, 40, byCode["FIT"])
	assert.Equal(t, 0, byCode["KICK"])
}

func TestParse_PredecessorsResolveToCodes(t *testing.T) {
	doc, err := Parse(sampleFile)
	require.NoError(t, err)

	surv := doc.Schedule.ActivityByCode("SURV")
	require.NotNil(t, surv)
	require.Len(t, surv.Predecessors, 1)
	assert.Equal(t, "KICK", surv.Predecessors[0].Activity.Code)
	assert.False(t, surv.Predecessors[0].Activity.IsResolved(),
		"parsed references carry codes, not durable ids")
	assert.Equal(t, domain.FinishToStart, surv.Predecessors[0].Type)
}

func TestParse_MilestoneKind(t *testing.T) {
	doc, err := Parse(sampleFile)
	require.NoError(t, err)

	kick := doc.Schedule.ActivityByCode("KICK")
	require.NotNil(t, kick)
	assert.Equal(t, domain.KindMilestone, kick.Kind)
	assert.Equal(t, 0, kick.DurationDays)
}

func TestParse_ResourceJoin(t *testing.T) {
	doc, err := Parse(sampleFile)
	require.NoError(t, err)

	surv := doc.Schedule.ActivityByCode("SURV")
	require.NotNil(t, surv)
	require.Len(t, surv.Assignments, 1)
	assert.Equal(t, "Engineer", surv.Assignments[0].Resource.Name)
	assert.Equal(t, 1.5, surv.Assignments[0].Units)
}

func TestParse_TotalDuration(t *testing.T) {
	doc, err := Parse(sampleFile)
	require.NoError(t, err)
	assert.Equal(t, 65, doc.TotalDurationDays)
}

func TestParse_MissingTaskTable(t *testing.T) {
	in := "ERMHDR\t8.4\n%T\tPROJECT\n%F\tproj_id\tproj_short_name\tproj_name\tplan_start_date\tplan_end_date\n%R\t1\tX\tX\t\t\n%E\n"
	_, err := Parse(in)
	require.Error(t, err)
	var perr *interchange.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "TASK", perr.Section)
}

func TestParse_RecordWiderThanFields(t *testing.T) {
	in := "ERMHDR\t8.4\n%T\tTASK\n%F\ttask_id\ttask_code\n%R\t1\tA\textra\textra2\n%E\n"
	_, err := Parse(in)
	require.Error(t, err)
	var perr *interchange.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParse_BadDuration(t *testing.T) {
	in := "ERMHDR\t8.4\n%T\tTASK\n%F\ttask_id\ttask_code\ttarget_drtn_hr_cnt\n%R\t1\tA\tnot-a-number\n%E\n"
	_, err := Parse(in)
	require.Error(t, err)
}

func TestParse_DanglingReferencesDegrade(t *testing.T) {
	// WBS 99 and predecessor task 999 do not exist; both degrade
	// silently instead of failing the parse.
	in := "ERMHDR\t8.4\n" +
		"%T\tTASK\n" +
		"%F\ttask_id\twbs_id\ttask_code\ttask_name\ttarget_drtn_hr_cnt\n" +
		"%R\t1\t99\tA\tAlpha\t8\n" +
		"%T\tTASKPRED\n" +
		"%F\ttask_pred_id\ttask_id\tpred_task_id\tpred_type\tlag_hr_cnt\n" +
		"%R\t1\t1\t999\tPR_FS\t0\n" +
		"%E\n"
	doc, err := Parse(in)
	require.NoError(t, err)
	a := doc.Schedule.ActivityByCode("A")
	require.NotNil(t, a)
	assert.Nil(t, a.WBSID, "unknown wbs id attaches to the implicit root")
	assert.Empty(t, a.Predecessors, "dangling predecessor link is dropped")
}

func TestParse_SynthesizedCode(t *testing.T) {
	in := "ERMHDR\t8.4\n%T\tTASK\n%F\ttask_id\ttask_code\ttask_name\n%R\t\t\tUnnamed\n%E\n"
	doc, err := Parse(in)
	require.NoError(t, err)
	require.Len(t, doc.Schedule.Activities, 1)
	assert.Equal(t, "A1", doc.Schedule.Activities[0].Code)
}

func TestParse_CRLFInput(t *testing.T) {
	doc, err := Parse(strings.ReplaceAll(sampleFile, "\n", "\r\n"))
	require.NoError(t, err)
	assert.Len(t, doc.Schedule.Activities, 3)
}
