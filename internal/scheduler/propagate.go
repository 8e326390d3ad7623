// Package scheduler turns an unordered requirements skeleton into a
// fully dated, id-resolved schedule through a single forward
// date-propagation sweep over the working-day calendar.
//
// The sweep is order-sensitive by contract: WBS entries must be listed
// parent-before-child and activities in dependency order. References
// that do not resolve at the point they are needed never abort the
// pass; they degrade to a root attachment or the project start date.
// Callers that want to surface such input run skeleton.Validate first.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/calendar"
	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/skeleton"
)

// arena assigns the temporary identifiers one scheduling pass hands
// out: an append-only id list plus a code-to-id index, built once per
// call and discarded with it. The persistence layer later remaps these
// ids to durable keys.
type arena struct {
	prefix string
	ids    []string
	byCode map[string]string
}

func newArena(prefix string) *arena {
	return &arena{prefix: prefix, byCode: make(map[string]string)}
}

func (a *arena) assign(code string) string {
	id := fmt.Sprintf("%s-%d", a.prefix, len(a.ids)+1)
	a.ids = append(a.ids, id)
	if code != "" {
		a.byCode[code] = id
	}
	return id
}

func (a *arena) lookup(code string) (string, bool) {
	id, ok := a.byCode[code]
	return id, ok
}

// dateSpan is one entry of the running date table.
type dateSpan struct {
	start time.Time
	end   time.Time
}

// Schedule computes dates and temporary identifiers for every entry of
// the skeleton. Every activity comes back with non-nil start and end
// dates; milestones have start == end; no activity starts before the
// project start. The only error case is an impossible input; malformed
// skeletons degrade silently.
func Schedule(start time.Time, sk *skeleton.Skeleton) (*domain.Schedule, error) {
	if sk == nil {
		return nil, errors.New("scheduling: nil skeleton")
	}

	sched := &domain.Schedule{
		Name:        sk.Name,
		Description: sk.Description,
		StartDate:   start,
		EndDate:     start,
	}

	// Pass 1: WBS entries, parent resolved through codes seen so far.
	wbsIDs := newArena("wbs-tmp")
	for _, w := range sk.WBS {
		node := domain.WBSNode{
			ID:        wbsIDs.assign(w.Code),
			Code:      w.Code,
			Name:      w.Name,
			Level:     w.Level,
			SortOrder: len(sched.WBS) + 1,
		}
		if w.ParentCode != nil {
			if pid, ok := wbsIDs.lookup(*w.ParentCode); ok {
				node.ParentID = &pid
			}
		}
		if node.Level < 1 {
			node.Level = levelOf(sched.WBS, node.ParentID)
		}
		sched.WBS = append(sched.WBS, node)
	}

	// Pass 2: activities, dated in list order against the running
	// date table. A predecessor not yet in the table contributes
	// nothing, which is exactly the documented degradation.
	actIDs := newArena("act-tmp")
	dates := make(map[string]dateSpan, len(sk.Activities))
	for _, entry := range sk.Activities {
		act := domain.Activity{
			ID:           actIDs.assign(entry.Code),
			Code:         entry.Code,
			Name:         entry.Name,
			DurationDays: entry.DurationDays,
			Kind:         domain.ParseActivityKind(entry.Kind),
		}
		if act.Kind == domain.KindMilestone {
			act.DurationDays = 0
		}
		if entry.WBSCode != nil {
			if wid, ok := wbsIDs.lookup(*entry.WBSCode); ok {
				act.WBSID = &wid
			}
		}

		actStart := start
		for _, p := range entry.Predecessors {
			act.Predecessors = append(act.Predecessors, domain.Predecessor{
				Activity: predecessorRef(actIDs, p.Code),
				Type:     relationFromString(p.Type),
				LagDays:  p.LagDays,
			})
			span, ok := dates[p.Code]
			if !ok {
				continue
			}
			candidate := span.end.AddDate(0, 0, 1)
			if candidate.After(actStart) {
				actStart = candidate
			}
		}

		actEnd := actStart
		if act.DurationDays > 0 {
			actEnd = calendar.AddBusinessDays(actStart, act.DurationDays)
		}

		s, e := actStart, actEnd
		act.StartDate = &s
		act.EndDate = &e
		dates[entry.Code] = dateSpan{start: actStart, end: actEnd}

		if actEnd.After(sched.EndDate) {
			sched.EndDate = actEnd
		}
		sched.Activities = append(sched.Activities, act)
	}

	return sched, nil
}

// predecessorRef resolves a predecessor code against the ids assigned
// so far. Forward references stay unresolved and keep only the code.
func predecessorRef(ids *arena, code string) domain.Ref {
	if id, ok := ids.lookup(code); ok {
		return domain.ByID(id, code)
	}
	return domain.ByCode(code)
}

// levelOf derives a missing level from the resolved parent: parent
// level + 1, or 1 at the root.
func levelOf(nodes []domain.WBSNode, parentID *string) int {
	if parentID == nil {
		return 1
	}
	for _, n := range nodes {
		if n.ID == *parentID {
			return n.Level + 1
		}
	}
	return 1
}

func relationFromString(s string) domain.RelationType {
	switch s {
	case string(domain.FinishToFinish):
		return domain.FinishToFinish
	case string(domain.StartToStart):
		return domain.StartToStart
	case string(domain.StartToFinish):
		return domain.StartToFinish
	default:
		return domain.FinishToStart
	}
}
