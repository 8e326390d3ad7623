package domain

import "time"

// Schedule is the normalized exchange model shared by the codecs, the
// scheduler and the persistence layer. Instances are values: every
// transformation returns a new Schedule and never mutates its input.
type Schedule struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	WBS         []WBSNode
	Activities  []Activity

	// Display-only header fields for generated interchange files.
	ProjectName      string
	OrganizationName string
}

// WBSNode is one entry of the work breakdown structure.
// ParentID nil means the node hangs off the hierarchy root.
type WBSNode struct {
	ID        string
	ParentID  *string
	Code      string
	Name      string
	Level     int // root = 1; always parent level + 1
	SortOrder int
}

// Activity is a schedulable unit of work. Milestones carry a zero
// duration and identical start and end dates.
type Activity struct {
	ID           string
	WBSID        *string // nil attaches the activity to the implicit root
	Code         string
	Name         string
	Description  string
	DurationDays int
	StartDate    *time.Time
	EndDate      *time.Time
	Kind         ActivityKind
	Predecessors []Predecessor
	Assignments  []ResourceAssignment
}

// Predecessor is a dependency edge pointing at another activity.
type Predecessor struct {
	Activity Ref
	Type     RelationType
	LagDays  int // may be negative
}

// Resource is a named resource referenced by assignments.
type Resource struct {
	ID   string
	Code string
	Name string
}

// ResourceAssignment binds a resource to an activity with a unit count.
type ResourceAssignment struct {
	Resource Resource
	Units    float64
}

// ActivityByID returns the activity with the given identifier, or nil.
func (s *Schedule) ActivityByID(id string) *Activity {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			return &s.Activities[i]
		}
	}
	return nil
}

// ActivityByCode returns the activity with the given code, or nil.
func (s *Schedule) ActivityByCode(code string) *Activity {
	for i := range s.Activities {
		if s.Activities[i].Code == code {
			return &s.Activities[i]
		}
	}
	return nil
}

// DistinctResources returns every resource referenced by at least one
// assignment, first reference wins, in activity order.
func (s *Schedule) DistinctResources() []Resource {
	seen := make(map[string]bool)
	var out []Resource
	for _, a := range s.Activities {
		for _, ra := range a.Assignments {
			key := ra.Resource.ID
			if key == "" {
				key = ra.Resource.Code
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, ra.Resource)
		}
	}
	return out
}

// TotalDurationDays sums the durations of all activities. Informational
// only; it is not a project-length computation.
func (s *Schedule) TotalDurationDays() int {
	total := 0
	for _, a := range s.Activities {
		total += a.DurationDays
	}
	return total
}
