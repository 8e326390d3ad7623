package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange"
)

// record is one %R row keyed by the field names of its table.
type record map[string]string

// Parse decodes tabular interchange text into a normalized document.
// Cross-references between tables go through the surrogate integer ids
// carried in the file; those ids are meaningless outside this one file,
// so the parsed schedule keeps codes and leaves durable ids empty
// except where a later remap needs the file-local linkage (WBS nodes).
//
// Structural failures (missing required table, a row wider than its
// field list) abort the parse. Dangling cross-references do not: they
// degrade to root attachment or a dropped link.
func Parse(text string) (*interchange.Document, error) {
	tables, err := splitTables(text)
	if err != nil {
		return nil, err
	}
	if _, ok := tables[tableTask]; !ok {
		return nil, interchange.NewParseError("tabular", tableTask, "missing required table", nil)
	}

	sched := domain.Schedule{}

	if rows := tables[tableProject]; len(rows) > 0 {
		p := rows[0]
		sched.Name = p["proj_name"]
		sched.ProjectName = p["proj_name"]
		if t := parseDate(p["plan_start_date"]); t != nil {
			sched.StartDate = *t
		}
		if t := parseDate(p["plan_end_date"]); t != nil {
			sched.EndDate = *t
		}
	}

	wbsByID := parseWBS(tables[tableWBS], &sched)
	codeByTaskID, err := parseTasks(tables[tableTask], wbsByID, &sched)
	if err != nil {
		return nil, err
	}
	attachPredecessors(tables[tableTaskPred], codeByTaskID, &sched)
	attachResources(tables[tableResource], tables[tableTaskRsrc], codeByTaskID, &sched)

	return &interchange.Document{
		Format:            domain.FormatTabular,
		Schedule:          sched,
		TotalDurationDays: sched.TotalDurationDays(),
	}, nil
}

// splitTables scans the line stream into per-table record lists.
func splitTables(text string) (map[string][]record, error) {
	tables := make(map[string][]record)
	var current string
	var fields []string

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if line == "" || strings.HasPrefix(line, headerPrefix) {
			continue
		}
		parts := strings.Split(line, "\t")
		switch parts[0] {
		case markerTable:
			if len(parts) < 2 || parts[1] == "" {
				return nil, interchange.NewParseError("tabular", "", fmt.Sprintf("line %d: table marker without a name", i+1), nil)
			}
			current = parts[1]
			fields = nil
			if _, ok := tables[current]; !ok {
				tables[current] = nil
			}
		case markerFields:
			if current == "" {
				return nil, interchange.NewParseError("tabular", "", fmt.Sprintf("line %d: field marker outside a table", i+1), nil)
			}
			fields = parts[1:]
		case markerRecord:
			if current == "" || fields == nil {
				return nil, interchange.NewParseError("tabular", current, fmt.Sprintf("line %d: record outside a table block", i+1), nil)
			}
			values := parts[1:]
			if len(values) > len(fields) {
				return nil, interchange.NewParseError("tabular", current,
					fmt.Sprintf("line %d: record has %d values for %d fields", i+1, len(values), len(fields)), nil)
			}
			rec := make(record, len(fields))
			for fi, name := range fields {
				if fi < len(values) {
					rec[name] = values[fi]
				} else {
					rec[name] = ""
				}
			}
			tables[current] = append(tables[current], rec)
		case markerEnd:
			return tables, nil
		}
	}
	return tables, nil
}

// parseWBS fills the schedule's WBS list and returns the surrogate-id
// to list-index map used to resolve task and parent references.
func parseWBS(rows []record, sched *domain.Schedule) map[string]int {
	byID := make(map[string]int, len(rows))
	for i, row := range rows {
		id := row["wbs_id"]
		if id == "" {
			continue
		}
		// The generator's implicit project root is framing, not a
		// real hierarchy node.
		if row["proj_node_flag"] == "Y" {
			continue
		}
		node := domain.WBSNode{
			ID:        id,
			Code:      row["wbs_short_name"],
			Name:      row["wbs_name"],
			SortOrder: atoiOr(row["seq_num"], i),
		}
		if parent := row["parent_wbs_id"]; parent != "" {
			p := parent
			node.ParentID = &p
		}
		byID[id] = len(sched.WBS)
		sched.WBS = append(sched.WBS, node)
	}

	// Resolve levels after all nodes are known. A parent id that does
	// not exist in the file degrades to a root attachment.
	for i := range sched.WBS {
		sched.WBS[i].Level = wbsLevel(sched.WBS, byID, i, 0)
		if sched.WBS[i].ParentID != nil {
			if _, ok := byID[*sched.WBS[i].ParentID]; !ok {
				sched.WBS[i].ParentID = nil
			}
		}
	}
	return byID
}

// wbsLevel walks the parent chain; root = 1. The depth guard turns a
// malformed cyclic chain into a root-level node instead of recursing
// forever.
func wbsLevel(nodes []domain.WBSNode, byID map[string]int, i, depth int) int {
	if nodes[i].ParentID == nil || depth > len(nodes) {
		return 1
	}
	pi, ok := byID[*nodes[i].ParentID]
	if !ok {
		return 1
	}
	return wbsLevel(nodes, byID, pi, depth+1) + 1
}

// parseTasks fills the schedule's activity list and returns the
// surrogate-id to code index for the link tables.
func parseTasks(rows []record, wbsByID map[string]int, sched *domain.Schedule) (map[string]string, error) {
	codeByTaskID := make(map[string]string, len(rows))
	for i, row := range rows {
		code := row["task_code"]
		if code == "" {
			code = row["task_id"]
		}
		if code == "" {
			code = fmt.Sprintf("A%d", i+1)
		}

		days, err := parseDurationDays(row["target_drtn_hr_cnt"])
		if err != nil {
			return nil, interchange.NewParseError("tabular", tableTask,
				fmt.Sprintf("task %q: bad duration %q", code, row["target_drtn_hr_cnt"]), err)
		}

		act := domain.Activity{
			Code:         code,
			Name:         row["task_name"],
			Description:  row["task_notes"],
			DurationDays: days,
			Kind:         kindFromTaskType(row["task_type"]),
			StartDate:    parseDate(row["target_start_date"]),
			EndDate:      parseDate(row["target_end_date"]),
		}
		if wbsID := row["wbs_id"]; wbsID != "" {
			if _, ok := wbsByID[wbsID]; ok {
				id := wbsID
				act.WBSID = &id
			}
		}

		sched.Activities = append(sched.Activities, act)
		if id := row["task_id"]; id != "" {
			codeByTaskID[id] = code
		}
	}
	return codeByTaskID, nil
}

// attachPredecessors joins the predecessor-link table back to activity
// codes. A link whose endpoints are not both present is dropped.
func attachPredecessors(rows []record, codeByTaskID map[string]string, sched *domain.Schedule) {
	for _, row := range rows {
		succCode, ok := codeByTaskID[row["task_id"]]
		if !ok {
			continue
		}
		predCode, ok := codeByTaskID[row["pred_task_id"]]
		if !ok {
			continue
		}
		succ := sched.ActivityByCode(succCode)
		if succ == nil {
			continue
		}
		lagDays := 0
		if hrs, err := strconv.ParseFloat(row["lag_hr_cnt"], 64); err == nil {
			lagDays = int(math.Round(hrs / hoursPerDay))
		}
		succ.Predecessors = append(succ.Predecessors, domain.Predecessor{
			Activity: domain.ByCode(predCode),
			Type:     relationFromPredType(row["pred_type"]),
			LagDays:  lagDays,
		})
	}
}

// attachResources joins RSRC through TASKRSRC onto activities.
func attachResources(resources, links []record, codeByTaskID map[string]string, sched *domain.Schedule) {
	byID := make(map[string]domain.Resource, len(resources))
	for _, row := range resources {
		id := row["rsrc_id"]
		if id == "" {
			continue
		}
		byID[id] = domain.Resource{
			ID:   id,
			Code: row["rsrc_short_name"],
			Name: row["rsrc_name"],
		}
	}
	for _, row := range links {
		code, ok := codeByTaskID[row["task_id"]]
		if !ok {
			continue
		}
		rsrc, ok := byID[row["rsrc_id"]]
		if !ok {
			continue
		}
		act := sched.ActivityByCode(code)
		if act == nil {
			continue
		}
		units := 1.0
		if q, err := strconv.ParseFloat(row["target_qty"], 64); err == nil {
			units = q
		}
		act.Assignments = append(act.Assignments, domain.ResourceAssignment{
			Resource: rsrc,
			Units:    units,
		})
	}
}

// parseDurationDays reads a duration that may be denominated in hours.
// A magnitude above 100 is taken as an hour count and divided by 8;
// anything else is already days. Empty means zero.
func parseDurationDays(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.Abs(v) > 100 {
		v /= hoursPerDay
	}
	return int(math.Round(v)), nil
}

func kindFromTaskType(s string) domain.ActivityKind {
	switch s {
	case taskTypeMilestone, "TT_FinMile":
		return domain.KindMilestone
	case taskTypeSummary:
		return domain.KindSummary
	default:
		return domain.KindTask
	}
}

func relationFromPredType(s string) domain.RelationType {
	switch s {
	case predTypeFF:
		return domain.FinishToFinish
	case predTypeSS:
		return domain.StartToStart
	case predTypeSF:
		return domain.StartToFinish
	default:
		return domain.FinishToStart
	}
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{dateTimeLayout, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func atoiOr(s string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return fallback
}
