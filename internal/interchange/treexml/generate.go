package treexml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
)

// escaper rewrites the five XML metacharacters in text-bearing fields.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Generate emits tree-XML interchange text for a fully-resolved
// schedule, mirroring the tabular block order as nested elements: WBS,
// activities, relationships, then resources and assignments only when
// at least one assignment exists. ObjectIds are ascending integers
// assigned per element type within this one call.
func Generate(s *domain.Schedule) (string, error) {
	if s == nil {
		return "", errors.New("generating tree-xml file: nil schedule")
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<" + elemRoot + ">\n")
	b.WriteString("  <" + elemProject + ">\n")
	writeField(&b, 4, elemObjectID, "1")
	writeField(&b, 4, elemName, s.Name)
	if s.Description != "" {
		writeField(&b, 4, elemDescription, s.Description)
	}
	writeField(&b, 4, elemStartDate, formatDate(s.StartDate))
	writeField(&b, 4, elemFinishDate, formatDate(s.EndDate))

	wbsIDs := make(map[string]int, len(s.WBS))
	for i, node := range s.WBS {
		objectID := i + 1
		wbsIDs[node.ID] = objectID
		b.WriteString("    <" + elemWBS + ">\n")
		writeField(&b, 6, elemObjectID, strconv.Itoa(objectID))
		writeField(&b, 6, elemCode, node.Code)
		writeField(&b, 6, elemName, node.Name)
		writeField(&b, 6, elemSeqNum, strconv.Itoa(node.SortOrder))
		if node.ParentID != nil {
			if pid, ok := wbsIDs[*node.ParentID]; ok {
				writeField(&b, 6, elemParentObjectID, strconv.Itoa(pid))
			}
		}
		b.WriteString("    </" + elemWBS + ">\n")
	}

	actIDs := make(map[string]int, len(s.Activities))
	for i, act := range s.Activities {
		objectID := i + 1
		actIDs[actKey(act)] = objectID
		b.WriteString("    <" + elemActivity + ">\n")
		writeField(&b, 6, elemObjectID, strconv.Itoa(objectID))
		writeField(&b, 6, elemID, act.Code)
		writeField(&b, 6, elemName, act.Name)
		if act.Description != "" {
			writeField(&b, 6, elemDescription, act.Description)
		}
		writeField(&b, 6, elemType, typeOf(act.Kind))
		writeField(&b, 6, elemDuration, fmt.Sprintf("PT%dH", act.DurationDays*hoursPerDay))
		if act.WBSID != nil {
			if wid, ok := wbsIDs[*act.WBSID]; ok {
				writeField(&b, 6, elemWBSObjectID, strconv.Itoa(wid))
			}
		}
		writeField(&b, 6, elemStartDate, formatDate(dateOr(act.StartDate, s.StartDate)))
		writeField(&b, 6, elemFinishDate, formatDate(dateOr(act.EndDate, s.EndDate)))
		b.WriteString("    </" + elemActivity + ">\n")
	}

	relID := 1
	for _, act := range s.Activities {
		succID := actIDs[actKey(act)]
		for _, pred := range act.Predecessors {
			predID, ok := resolveActivityRef(actIDs, s, pred.Activity)
			if !ok {
				continue
			}
			b.WriteString("    <" + elemRelationship + ">\n")
			writeField(&b, 6, elemObjectID, strconv.Itoa(relID))
			writeField(&b, 6, elemPredecessorID, strconv.Itoa(predID))
			writeField(&b, 6, elemSuccessorID, strconv.Itoa(succID))
			writeField(&b, 6, elemType, relTypeOf(pred.Type))
			writeField(&b, 6, elemLag, fmt.Sprintf("PT%dH", pred.LagDays*hoursPerDay))
			b.WriteString("    </" + elemRelationship + ">\n")
			relID++
		}
	}

	writeResources(&b, s, actIDs)

	b.WriteString("  </" + elemProject + ">\n")
	b.WriteString("</" + elemRoot + ">\n")
	return b.String(), nil
}

func writeResources(b *strings.Builder, s *domain.Schedule, actIDs map[string]int) {
	resources := s.DistinctResources()
	if len(resources) == 0 {
		return
	}

	rsrcIDs := make(map[string]int, len(resources))
	for i, r := range resources {
		objectID := i + 1
		rsrcIDs[resourceKey(r)] = objectID
		b.WriteString("    <" + elemResource + ">\n")
		writeField(b, 6, elemObjectID, strconv.Itoa(objectID))
		writeField(b, 6, elemID, r.Code)
		writeField(b, 6, elemName, r.Name)
		b.WriteString("    </" + elemResource + ">\n")
	}

	assignID := 1
	for _, act := range s.Activities {
		actID := actIDs[actKey(act)]
		for _, ra := range act.Assignments {
			rsrcID, ok := rsrcIDs[resourceKey(ra.Resource)]
			if !ok {
				continue
			}
			b.WriteString("    <" + elemAssignment + ">\n")
			writeField(b, 6, elemObjectID, strconv.Itoa(assignID))
			writeField(b, 6, elemActivityID, strconv.Itoa(actID))
			writeField(b, 6, elemResourceID, strconv.Itoa(rsrcID))
			writeField(b, 6, elemUnits, strconv.FormatFloat(ra.Units, 'f', -1, 64))
			b.WriteString("    </" + elemAssignment + ">\n")
			assignID++
		}
	}
}

func writeField(b *strings.Builder, indent int, name, value string) {
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString("<" + name + ">")
	b.WriteString(escaper.Replace(value))
	b.WriteString("</" + name + ">\n")
}

func actKey(a domain.Activity) string {
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

// resolveActivityRef maps a predecessor reference to the ObjectId
// assigned earlier in this pass, durable id first, code as fallback.
func resolveActivityRef(actIDs map[string]int, s *domain.Schedule, ref domain.Ref) (int, bool) {
	if ref.ID != "" {
		if id, ok := actIDs["id:"+ref.ID]; ok {
			return id, true
		}
		if a := s.ActivityByID(ref.ID); a != nil {
			id, ok := actIDs[actKey(*a)]
			return id, ok
		}
	}
	if ref.Code != "" {
		if id, ok := actIDs["code:"+ref.Code]; ok {
			return id, true
		}
		if a := s.ActivityByCode(ref.Code); a != nil {
			id, ok := actIDs[actKey(*a)]
			return id, ok
		}
	}
	return 0, false
}

func typeOf(k domain.ActivityKind) string {
	switch k {
	case domain.KindMilestone:
		return typeMilestone
	case domain.KindSummary:
		return typeSummary
	default:
		return typeTask
	}
}

func relTypeOf(t domain.RelationType) string {
	switch t {
	case domain.FinishToFinish:
		return relFF
	case domain.StartToStart:
		return relSS
	case domain.StartToFinish:
		return relSF
	default:
		return relFS
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
