package formatter

import (
	"fmt"
	"strings"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange"
	"github.com/RodolfoSilva/planneer-sub000/internal/repository"
)

const dateLayout = "2006-01-02"

// FormatSchedule renders a schedule as a WBS tree with its activities
// nested under their nodes.
func FormatSchedule(s *domain.Schedule) string {
	var b strings.Builder
	b.WriteString(Header(titleOf(s)) + "\n")
	if !s.StartDate.IsZero() {
		fmt.Fprintf(&b, "%s %s → %s\n", Dim("dates:"),
			s.StartDate.Format(dateLayout), s.EndDate.Format(dateLayout))
	}

	byWBS := make(map[string][]domain.Activity)
	var unassigned []domain.Activity
	for _, a := range s.Activities {
		if a.WBSID == nil {
			unassigned = append(unassigned, a)
			continue
		}
		byWBS[*a.WBSID] = append(byWBS[*a.WBSID], a)
	}

	for _, node := range s.WBS {
		indent := strings.Repeat("  ", node.Level-1)
		fmt.Fprintf(&b, "%s%s %s\n", indent, StyleBold.Render(node.Code), node.Name)
		for _, a := range byWBS[node.ID] {
			b.WriteString(formatActivity(a, indent+"  "))
		}
	}
	if len(unassigned) > 0 {
		b.WriteString(Dim("(unassigned)") + "\n")
		for _, a := range unassigned {
			b.WriteString(formatActivity(a, "  "))
		}
	}
	return b.String()
}

func formatActivity(a domain.Activity, indent string) string {
	dates := ""
	if a.StartDate != nil && a.EndDate != nil {
		dates = fmt.Sprintf("  %s → %s", a.StartDate.Format(dateLayout), a.EndDate.Format(dateLayout))
	}
	preds := ""
	if len(a.Predecessors) > 0 {
		var codes []string
		for _, p := range a.Predecessors {
			codes = append(codes, p.Activity.Code)
		}
		preds = Dim(fmt.Sprintf("  after %s", strings.Join(codes, ", ")))
	}
	return fmt.Sprintf("%s%s %s %s (%dd)%s%s\n",
		indent, KindBadge(a.Kind), StyleFg.Render(a.Code), a.Name,
		a.DurationDays, Dim(dates), preds)
}

// FormatIngest renders the metadata derived from one parsed file.
func FormatIngest(counts interchange.Counts, format domain.SourceFormat, totalDays int) string {
	var b strings.Builder
	b.WriteString(Header("file summary") + "\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("format:"), string(format))
	fmt.Fprintf(&b, "%s %d\n", Dim("activities:"), counts.Activities)
	fmt.Fprintf(&b, "%s %d\n", Dim("wbs nodes:"), counts.WBSNodes)
	fmt.Fprintf(&b, "%s %d\n", Dim("predecessors:"), counts.Predecessors)
	fmt.Fprintf(&b, "%s %d\n", Dim("resources:"), counts.Resources)
	fmt.Fprintf(&b, "%s %dd\n", Dim("total duration:"), totalDays)
	return b.String()
}

// FormatScheduleList renders stored schedule summaries one per line.
func FormatScheduleList(items []repository.ScheduleSummary) string {
	if len(items) == 0 {
		return Dim("no schedules stored") + "\n"
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s  %s  %s → %s  %s\n",
			Dim(it.ID[:8]), StyleBold.Render(it.Name),
			it.StartDate.Format(dateLayout), it.EndDate.Format(dateLayout),
			Dim(fmt.Sprintf("(%d activities)", it.ActivityCount)))
	}
	return b.String()
}

func titleOf(s *domain.Schedule) string {
	if s.Name != "" {
		return s.Name
	}
	return "schedule"
}
