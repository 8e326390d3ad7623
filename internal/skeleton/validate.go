package skeleton

import "fmt"

// Validate reports every ordering and reference problem in the
// skeleton. The scheduler itself never fails on these: it resolves what
// it can and silently attaches the rest to the root or the project
// start. Validation exists so callers can surface out-of-order input
// instead of discovering it through wrong dates.
func Validate(sk *Skeleton) []error {
	var errs []error

	wbsSeen := make(map[string]bool, len(sk.WBS))
	for i, w := range sk.WBS {
		if w.Code == "" {
			errs = append(errs, fmt.Errorf("wbs[%d]: code is required", i))
			continue
		}
		if wbsSeen[w.Code] {
			errs = append(errs, fmt.Errorf("wbs[%d]: duplicate code %q", i, w.Code))
		}
		if w.ParentCode != nil && !wbsSeen[*w.ParentCode] {
			errs = append(errs, fmt.Errorf("wbs[%d] %q: parent %q not defined earlier in the list", i, w.Code, *w.ParentCode))
		}
		wbsSeen[w.Code] = true
	}

	actSeen := make(map[string]bool, len(sk.Activities))
	for i, a := range sk.Activities {
		if a.Code == "" {
			errs = append(errs, fmt.Errorf("activities[%d]: code is required", i))
			continue
		}
		if actSeen[a.Code] {
			errs = append(errs, fmt.Errorf("activities[%d]: duplicate code %q", i, a.Code))
		}
		if a.WBSCode != nil && !wbsSeen[*a.WBSCode] {
			errs = append(errs, fmt.Errorf("activities[%d] %q: wbs_code %q does not match any wbs entry", i, a.Code, *a.WBSCode))
		}
		if a.DurationDays < 0 {
			errs = append(errs, fmt.Errorf("activities[%d] %q: duration_days must not be negative", i, a.Code))
		}
		if a.Kind == "milestone" && a.DurationDays != 0 {
			errs = append(errs, fmt.Errorf("activities[%d] %q: milestones must have zero duration", i, a.Code))
		}
		for _, p := range a.Predecessors {
			if !actSeen[p.Code] {
				errs = append(errs, fmt.Errorf("activities[%d] %q: predecessor %q not defined earlier in the list", i, a.Code, p.Code))
			}
		}
		actSeen[a.Code] = true
	}

	return errs
}
