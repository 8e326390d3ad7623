package domain

type ActivityKind string

const (
	KindTask      ActivityKind = "task"
	KindMilestone ActivityKind = "milestone"
	KindSummary   ActivityKind = "summary"
)

// ValidActivityKinds is the canonical set of accepted activity kind strings.
var ValidActivityKinds = map[string]bool{
	"task": true, "milestone": true, "summary": true,
}

// ParseActivityKind maps a raw kind string to an ActivityKind,
// defaulting unknown values to KindTask.
func ParseActivityKind(s string) ActivityKind {
	if ValidActivityKinds[s] {
		return ActivityKind(s)
	}
	return KindTask
}

type RelationType string

const (
	FinishToStart  RelationType = "finish-to-start"
	FinishToFinish RelationType = "finish-to-finish"
	StartToStart   RelationType = "start-to-start"
	StartToFinish  RelationType = "start-to-finish"
)

type SourceFormat string

const (
	FormatTabular SourceFormat = "tabular"
	FormatTreeXML SourceFormat = "tree-xml"
	FormatUnknown SourceFormat = "unknown"
)
