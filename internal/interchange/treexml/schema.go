// Package treexml implements the nested XML business-object interchange
// format. The schema in the wild is inconsistently shaped: the root
// container name varies in case and spelling, single children appear
// where lists are expected, and cross-references go through ObjectId
// attributes rather than element position. Parsing therefore works on a
// generic node tree with case-insensitive, always-a-list child lookup.
package treexml

// Accepted spellings of the root business-object container, compared
// case-insensitively.
var rootContainerNames = []string{
	"APIBusinessObjects",
	"BusinessObjects",
	"ScheduleObjects",
}

// Element names used by the generator and recognized by the parser.
const (
	elemRoot         = "APIBusinessObjects"
	elemProject      = "Project"
	elemWBS          = "WBS"
	elemActivity     = "Activity"
	elemRelationship = "Relationship"
	elemResource     = "Resource"
	elemAssignment   = "ResourceAssignment"

	elemObjectID       = "ObjectId"
	elemParentObjectID = "ParentObjectId"
	elemWBSObjectID    = "WBSObjectId"
	elemPredecessorID  = "PredecessorActivityObjectId"
	elemSuccessorID    = "SuccessorActivityObjectId"

	elemID          = "Id"
	elemCode        = "Code"
	elemName        = "Name"
	elemDescription = "Description"
	elemSeqNum      = "SequenceNumber"
	elemType        = "Type"
	elemDuration    = "PlannedDuration"
	elemLag         = "Lag"
	elemStartDate   = "StartDate"
	elemFinishDate  = "FinishDate"
	elemUnits       = "PlannedUnits"
	elemResourceID  = "ResourceObjectId"
	elemActivityID  = "ActivityObjectId"
)

// Activity type strings used in the Type element.
const (
	typeTask      = "Task Dependent"
	typeMilestone = "Start Milestone"
	typeSummary   = "Level of Effort"
)

// Relationship type strings used in the Type element.
const (
	relFS = "Finish to Start"
	relFF = "Finish to Finish"
	relSS = "Start to Start"
	relSF = "Start to Finish"
)

const (
	hoursPerDay = 8
	dateLayout  = "2006-01-02"
)
