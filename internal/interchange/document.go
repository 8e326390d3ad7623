// Package interchange defines the surface shared by the two legacy
// codec formats: the parse result, structural parse errors, and source
// format detection.
package interchange

import "github.com/RodolfoSilva/planneer-sub000/internal/domain"

// Document is the result of parsing one interchange file: the
// normalized schedule (codes populated, durable identifiers empty)
// plus best-effort derived metadata.
type Document struct {
	Format   domain.SourceFormat
	Schedule domain.Schedule

	// TotalDurationDays is the sum of all activity durations.
	// Informational metadata only.
	TotalDurationDays int
}

// Counts summarizes a parsed document for ingestion callers.
type Counts struct {
	Activities   int
	WBSNodes     int
	Predecessors int
	Resources    int
}

// CountEntities derives entity counts from the parsed schedule.
func (d *Document) CountEntities() Counts {
	c := Counts{
		Activities: len(d.Schedule.Activities),
		WBSNodes:   len(d.Schedule.WBS),
	}
	for _, a := range d.Schedule.Activities {
		c.Predecessors += len(a.Predecessors)
	}
	c.Resources = len(d.Schedule.DistinctResources())
	return c
}
