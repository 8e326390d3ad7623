// Package tabular implements the tab-delimited, table-oriented
// interchange format: a header line followed by record blocks, each
// block a table-name marker, a field-name marker and zero or more
// record rows, closed by an end-of-file marker. Third-party importers
// require the exact table and field layouts below, so the generator
// reproduces them verbatim.
package tabular

// Line markers. Every non-header line starts with one of these.
const (
	markerTable  = "%T"
	markerFields = "%F"
	markerRecord = "%R"
	markerEnd    = "%E"
)

// headerPrefix opens the first line of every file.
const headerPrefix = "ERMHDR"

// Table names, in emission order.
const (
	tableProject  = "PROJECT"
	tableWBS      = "PROJWBS"
	tableCalendar = "CALENDAR"
	tableTask     = "TASK"
	tableTaskPred = "TASKPRED"
	tableResource = "RSRC"
	tableTaskRsrc = "TASKRSRC"
)

// Field layouts. Order matters: generated %R rows align positionally
// with these %F lines.
var (
	projectFields = []string{
		"proj_id", "proj_short_name", "proj_name",
		"plan_start_date", "plan_end_date",
	}
	wbsFields = []string{
		"wbs_id", "proj_id", "parent_wbs_id", "seq_num",
		"wbs_short_name", "wbs_name", "proj_node_flag",
	}
	calendarFields = []string{
		"clndr_id", "clndr_name", "day_hr_cnt", "week_hr_cnt",
	}
	taskFields = []string{
		"task_id", "proj_id", "wbs_id", "clndr_id", "task_code",
		"task_name", "task_type", "target_drtn_hr_cnt",
		"target_start_date", "target_end_date", "task_notes",
	}
	taskPredFields = []string{
		"task_pred_id", "task_id", "pred_task_id", "pred_type", "lag_hr_cnt",
	}
	resourceFields = []string{
		"rsrc_id", "rsrc_short_name", "rsrc_name",
	}
	taskRsrcFields = []string{
		"taskrsrc_id", "task_id", "rsrc_id", "target_qty",
	}
)

// Activity type codes used in the task_type field.
const (
	taskTypeTask      = "TT_Task"
	taskTypeMilestone = "TT_Mile"
	taskTypeSummary   = "TT_WBS"
)

// Relationship type codes used in the pred_type field.
const (
	predTypeFS = "PR_FS"
	predTypeFF = "PR_FF"
	predTypeSS = "PR_SS"
	predTypeSF = "PR_SF"
)

// hoursPerDay converts between the format's hour-denominated duration
// fields and the model's whole-day durations.
const hoursPerDay = 8

// dateLayout is the date format used in all date-bearing fields.
const dateLayout = "2006-01-02"

// dateTimeLayout is tolerated on parse; some producers append a time.
const dateTimeLayout = "2006-01-02 15:04"
