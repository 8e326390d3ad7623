package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
)

// surrogates assigns the ascending integer ids one generation pass
// hands out per record type. Ids are unique and ascending within a
// single call only; they carry no meaning across files.
type surrogates struct {
	next  int
	byKey map[string]int
}

func newSurrogates() *surrogates {
	return &surrogates{next: 1, byKey: make(map[string]int)}
}

// assign mints the next id and records it under key when key is non-empty.
func (s *surrogates) assign(key string) int {
	id := s.next
	s.next++
	if key != "" {
		s.byKey[key] = id
	}
	return id
}

func (s *surrogates) lookup(key string) (int, bool) {
	id, ok := s.byKey[key]
	return id, ok
}

// Generate emits tabular interchange text for a fully-resolved
// schedule. Emission order is fixed: header, PROJECT, PROJWBS (with an
// implicit root), CALENDAR, TASK, TASKPRED, then RSRC and TASKRSRC only
// when at least one resource assignment exists, closed by the end
// marker. Every WBS node and activity in the input appears in the
// output. WBS nodes must be listed parent-before-child; a node whose
// parent has not been seen yet attaches to the implicit root.
func Generate(s *domain.Schedule) (string, error) {
	if s == nil {
		return "", errors.New("generating tabular file: nil schedule")
	}

	var b strings.Builder
	writeHeader(&b, s)

	// PROJECT: a single record describing the schedule itself.
	writeTable(&b, tableProject, projectFields)
	writeRecord(&b,
		"1",
		headerCode(s),
		s.Name,
		formatDate(s.StartDate),
		formatDate(s.EndDate),
	)

	// PROJWBS: implicit root first, then every node in list order.
	wbsIDs := newSurrogates()
	rootID := wbsIDs.assign("")
	writeTable(&b, tableWBS, wbsFields)
	writeRecord(&b,
		strconv.Itoa(rootID), "1", "", "0",
		headerCode(s), s.Name, "Y",
	)
	for i, node := range s.WBS {
		id := wbsIDs.assign(node.ID)
		parent := rootID
		if node.ParentID != nil {
			if pid, ok := wbsIDs.lookup(*node.ParentID); ok {
				parent = pid
			}
		}
		writeRecord(&b,
			strconv.Itoa(id), "1",
			strconv.Itoa(parent),
			strconv.Itoa(orderOr(node.SortOrder, i+1)),
			node.Code, node.Name, "N",
		)
	}

	// CALENDAR: one fixed default business calendar.
	writeTable(&b, tableCalendar, calendarFields)
	writeRecord(&b, "1", "Standard 5-Day Workweek", "8", "40")

	// TASK: surrogate ids assigned in list order.
	taskIDs := newSurrogates()
	writeTable(&b, tableTask, taskFields)
	for _, act := range s.Activities {
		id := taskIDs.assign(taskKey(act))
		wbsRef := rootID
		if act.WBSID != nil {
			if wid, ok := wbsIDs.lookup(*act.WBSID); ok {
				wbsRef = wid
			}
		}
		writeRecord(&b,
			strconv.Itoa(id), "1",
			strconv.Itoa(wbsRef), "1",
			act.Code, act.Name,
			taskTypeOf(act.Kind),
			strconv.Itoa(act.DurationDays*hoursPerDay),
			formatDate(dateOr(act.StartDate, s.StartDate)),
			formatDate(dateOr(act.EndDate, s.EndDate)),
			act.Description,
		)
	}

	// TASKPRED: one record per resolvable predecessor edge.
	writeTable(&b, tableTaskPred, taskPredFields)
	predIDs := newSurrogates()
	for _, act := range s.Activities {
		succID, _ := taskIDs.lookup(taskKey(act))
		for _, pred := range act.Predecessors {
			predID, ok := resolveTaskRef(taskIDs, s, pred.Activity)
			if !ok {
				// Dangling reference: the edge is dropped, the file
				// stays loadable.
				continue
			}
			writeRecord(&b,
				strconv.Itoa(predIDs.assign("")),
				strconv.Itoa(succID),
				strconv.Itoa(predID),
				predTypeOf(pred.Type),
				strconv.Itoa(pred.LagDays*hoursPerDay),
			)
		}
	}

	writeResources(&b, s, taskIDs)

	b.WriteString(markerEnd + "\n")
	return b.String(), nil
}

// writeResources emits RSRC and TASKRSRC, skipped entirely when no
// activity carries an assignment.
func writeResources(b *strings.Builder, s *domain.Schedule, taskIDs *surrogates) {
	resources := s.DistinctResources()
	if len(resources) == 0 {
		return
	}

	rsrcIDs := newSurrogates()
	writeTable(b, tableResource, resourceFields)
	for _, r := range resources {
		id := rsrcIDs.assign(resourceKey(r))
		writeRecord(b, strconv.Itoa(id), r.Code, r.Name)
	}

	linkIDs := newSurrogates()
	writeTable(b, tableTaskRsrc, taskRsrcFields)
	for _, act := range s.Activities {
		taskID, _ := taskIDs.lookup(taskKey(act))
		for _, ra := range act.Assignments {
			rsrcID, ok := rsrcIDs.lookup(resourceKey(ra.Resource))
			if !ok {
				continue
			}
			writeRecord(b,
				strconv.Itoa(linkIDs.assign("")),
				strconv.Itoa(taskID),
				strconv.Itoa(rsrcID),
				strconv.FormatFloat(ra.Units, 'f', -1, 64),
			)
		}
	}
}

func writeHeader(b *strings.Builder, s *domain.Schedule) {
	fmt.Fprintf(b, "%s\t8.4\t%s\t%s\t%s\n",
		headerPrefix,
		formatDate(s.StartDate),
		sanitize(s.OrganizationName),
		sanitize(s.ProjectName),
	)
}

func writeTable(b *strings.Builder, name string, fields []string) {
	b.WriteString(markerTable + "\t" + name + "\n")
	b.WriteString(markerFields + "\t" + strings.Join(fields, "\t") + "\n")
}

func writeRecord(b *strings.Builder, values ...string) {
	b.WriteString(markerRecord)
	for _, v := range values {
		b.WriteString("\t")
		b.WriteString(sanitize(v))
	}
	b.WriteString("\n")
}

// sanitize strips the two characters that would corrupt the framing.
func sanitize(v string) string {
	v = strings.ReplaceAll(v, "\t", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.ReplaceAll(v, "\r", "")
}

// taskKey identifies an activity within one generation pass: durable id
// when present, code otherwise.
func taskKey(a domain.Activity) string {
	if a.ID != "" {
		return "id:" + a.ID
	}
	return "code:" + a.Code
}

func resourceKey(r domain.Resource) string {
	if r.ID != "" {
		return "id:" + r.ID
	}
	return "code:" + r.Code
}

// resolveTaskRef maps a predecessor reference to the surrogate id
// assigned earlier in the same pass, trying the durable id first and
// falling back to the code.
func resolveTaskRef(ids *surrogates, s *domain.Schedule, ref domain.Ref) (int, bool) {
	if ref.ID != "" {
		if id, ok := ids.lookup("id:" + ref.ID); ok {
			return id, true
		}
		if a := s.ActivityByID(ref.ID); a != nil {
			return ids.lookup(taskKey(*a))
		}
	}
	if ref.Code != "" {
		if id, ok := ids.lookup("code:" + ref.Code); ok {
			return id, true
		}
		if a := s.ActivityByCode(ref.Code); a != nil {
			return ids.lookup(taskKey(*a))
		}
	}
	return 0, false
}

func headerCode(s *domain.Schedule) string {
	if s.ProjectName != "" {
		return s.ProjectName
	}
	return s.Name
}

func taskTypeOf(k domain.ActivityKind) string {
	switch k {
	case domain.KindMilestone:
		return taskTypeMilestone
	case domain.KindSummary:
		return taskTypeSummary
	default:
		return taskTypeTask
	}
}

func predTypeOf(t domain.RelationType) string {
	switch t {
	case domain.FinishToFinish:
		return predTypeFF
	case domain.StartToStart:
		return predTypeSS
	case domain.StartToFinish:
		return predTypeSF
	default:
		return predTypeFS
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func dateOr(t *time.Time, fallback time.Time) time.Time {
	if t != nil {
		return *t
	}
	return fallback
}

func orderOr(order, fallback int) int {
	if order > 0 {
		return order
	}
	return fallback
}
