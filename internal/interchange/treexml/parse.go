package treexml

import (
	"encoding/xml"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange"
)

var isoHoursPattern = regexp.MustCompile(`(?i)^PT(-?\d+(?:\.\d+)?)H$`)

// Parse decodes tree-XML interchange text into a normalized document.
// The root container and project elements are required; everything else
// degrades: dangling ObjectId references drop the link or attach to the
// root, exactly as the tabular codec does.
func Parse(text string) (*interchange.Document, error) {
	var root node
	if err := xml.Unmarshal([]byte(text), &root); err != nil {
		return nil, interchange.NewParseError("tree-xml", "", "malformed document", err)
	}

	container := findContainer(&root)
	if container == nil {
		return nil, interchange.NewParseError("tree-xml", elemRoot,
			fmt.Sprintf("no business-object container (root is %q)", root.XMLName.Local), nil)
	}

	projects := container.children(elemProject)
	if len(projects) == 0 {
		return nil, interchange.NewParseError("tree-xml", elemProject, "missing required element", nil)
	}
	project := projects[0]

	sched := domain.Schedule{
		Name:        project.text(elemName),
		ProjectName: project.text(elemName),
		Description: project.text(elemDescription),
	}
	if t := parseDate(project.text(elemStartDate)); t != nil {
		sched.StartDate = *t
	}
	if t := parseDate(project.text(elemFinishDate)); t != nil {
		sched.EndDate = *t
	}

	wbsByObjectID := parseWBS(project, &sched)
	codeByObjectID := parseActivities(project, wbsByObjectID, &sched)
	attachRelationships(project, codeByObjectID, &sched)
	attachAssignments(project, codeByObjectID, &sched)

	return &interchange.Document{
		Format:            domain.FormatTreeXML,
		Schedule:          sched,
		TotalDurationDays: sched.TotalDurationDays(),
	}, nil
}

// findContainer locates the business-object container, accepting the
// known root spellings either as the document root itself or one level
// below a wrapper.
func findContainer(root *node) *node {
	if isContainerName(root.XMLName.Local) {
		return root
	}
	for _, name := range rootContainerNames {
		if c := root.child(name); c != nil {
			return c
		}
	}
	return nil
}

func isContainerName(name string) bool {
	for _, candidate := range rootContainerNames {
		if strings.EqualFold(name, candidate) {
			return true
		}
	}
	return false
}

func parseWBS(project *node, sched *domain.Schedule) map[string]int {
	byObjectID := make(map[string]int)
	for i, w := range project.children(elemWBS) {
		objectID := w.text(elemObjectID)
		if objectID == "" {
			continue
		}
		n := domain.WBSNode{
			ID:        objectID,
			Code:      w.text(elemCode),
			Name:      w.text(elemName),
			SortOrder: atoiOr(w.text(elemSeqNum), i),
		}
		if parent := w.text(elemParentObjectID); parent != "" {
			p := parent
			n.ParentID = &p
		}
		byObjectID[objectID] = len(sched.WBS)
		sched.WBS = append(sched.WBS, n)
	}

	for i := range sched.WBS {
		sched.WBS[i].Level = wbsLevel(sched.WBS, byObjectID, i, 0)
		if sched.WBS[i].ParentID != nil {
			if _, ok := byObjectID[*sched.WBS[i].ParentID]; !ok {
				sched.WBS[i].ParentID = nil
			}
		}
	}
	return byObjectID
}

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

func parseActivities(project *node, wbsByObjectID map[string]int, sched *domain.Schedule) map[string]string {
	codeByObjectID := make(map[string]string)
	for i, a := range project.children(elemActivity) {
		code := a.text(elemID)
		if code == "" {
			code = a.text(elemObjectID)
		}
		if code == "" {
			code = fmt.Sprintf("A%d", i+1)
		}

		act := domain.Activity{
			Code:         code,
			Name:         a.text(elemName),
			Description:  a.text(elemDescription),
			DurationDays: parseDurationDays(a.text(elemDuration)),
			Kind:         kindFromType(a.text(elemType)),
			StartDate:    parseDate(a.text(elemStartDate)),
			EndDate:      parseDate(a.text(elemFinishDate)),
		}
		if wbsRef := a.text(elemWBSObjectID); wbsRef != "" {
			if _, ok := wbsByObjectID[wbsRef]; ok {
				id := wbsRef
				act.WBSID = &id
			}
		}

		sched.Activities = append(sched.Activities, act)
		if objectID := a.text(elemObjectID); objectID != "" {
			codeByObjectID[objectID] = code
		}
	}
	return codeByObjectID
}

func attachRelationships(project *node, codeByObjectID map[string]string, sched *domain.Schedule) {
	for _, r := range project.children(elemRelationship) {
		succCode, ok := codeByObjectID[r.text(elemSuccessorID)]
		if !ok {
			continue
		}
		predCode, ok := codeByObjectID[r.text(elemPredecessorID)]
		if !ok {
			continue
		}
		succ := sched.ActivityByCode(succCode)
		if succ == nil {
			continue
		}
		succ.Predecessors = append(succ.Predecessors, domain.Predecessor{
			Activity: domain.ByCode(predCode),
			Type:     relationFromType(r.text(elemType)),
			LagDays:  parseDurationDays(r.text(elemLag)),
		})
	}
}

func attachAssignments(project *node, codeByObjectID map[string]string, sched *domain.Schedule) {
	resources := make(map[string]domain.Resource)
	for _, r := range project.children(elemResource) {
		objectID := r.text(elemObjectID)
		if objectID == "" {
			continue
		}
		resources[objectID] = domain.Resource{
			ID:   objectID,
			Code: r.text(elemID),
			Name: r.text(elemName),
		}
	}
	for _, ra := range project.children(elemAssignment) {
		code, ok := codeByObjectID[ra.text(elemActivityID)]
		if !ok {
			continue
		}
		rsrc, ok := resources[ra.text(elemResourceID)]
		if !ok {
			continue
		}
		act := sched.ActivityByCode(code)
		if act == nil {
			continue
		}
		units := 1.0
		if q, err := strconv.ParseFloat(ra.text(elemUnits), 64); err == nil {
			units = q
		}
		act.Assignments = append(act.Assignments, domain.ResourceAssignment{
			Resource: rsrc,
			Units:    units,
		})
	}
}

// parseDurationDays reads either an ISO-8601 hour duration ("PT40H",
// divided by 8 into days) or a bare numeric string already in days.
// Anything else is zero.
func parseDurationDays(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if m := isoHoursPattern.FindStringSubmatch(s); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		return int(math.Round(hours / hoursPerDay))
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(v))
	}
	return 0
}

func kindFromType(s string) domain.ActivityKind {
	switch {
	case strings.Contains(strings.ToLower(s), "milestone"):
		return domain.KindMilestone
	case strings.EqualFold(s, typeSummary):
		return domain.KindSummary
	default:
		return domain.KindTask
	}
}

func relationFromType(s string) domain.RelationType {
	switch {
	case strings.EqualFold(s, relFF):
		return domain.FinishToFinish
	case strings.EqualFold(s, relSS):
		return domain.StartToStart
	case strings.EqualFold(s, relSF):
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
	for _, layout := range []string{time.RFC3339, dateLayout + "T15:04:05", dateLayout} {
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
