package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/google/uuid"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db *sql.DB
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(db *sql.DB) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: db}
}

// Save stores the schedule under fresh durable identifiers. The remap
// table is built in node-processing order: WBS nodes first (so parents
// resolve when listed parent-first), then activities, then resources.
// Predecessor references are remapped through the activity table by
// temporary id or, failing that, by code; a reference that resolves
// neither way is stored unresolved with its code kept.
func (r *SQLiteScheduleRepo) Save(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting save transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	out := cloneSchedule(s)
	out.ID = uuid.New().String()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schedules (id, name, description, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.Name, out.Description,
		out.StartDate.Format(dateLayout), out.EndDate.Format(dateLayout),
		now, now,
	); err != nil {
		return nil, fmt.Errorf("inserting schedule: %w", err)
	}

	// WBS nodes: remap temporary ids in list order.
	wbsIDMap := make(map[string]string, len(out.WBS))
	for i := range out.WBS {
		oldID := out.WBS[i].ID
		newID := uuid.New().String()
		if oldID != "" {
			wbsIDMap[oldID] = newID
		}
		out.WBS[i].ID = newID
		if out.WBS[i].ParentID != nil {
			if mapped, ok := wbsIDMap[*out.WBS[i].ParentID]; ok {
				out.WBS[i].ParentID = &mapped
			} else {
				// Parent listed after child or missing entirely:
				// attach to the root.
				out.WBS[i].ParentID = nil
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO wbs_nodes (id, schedule_id, parent_id, code, name, level, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			out.WBS[i].ID, out.ID, nullableString(out.WBS[i].ParentID),
			out.WBS[i].Code, out.WBS[i].Name, out.WBS[i].Level, out.WBS[i].SortOrder,
		); err != nil {
			return nil, fmt.Errorf("inserting wbs node %q: %w", out.WBS[i].Code, err)
		}
	}

	// Activities: remap ids, then resolve WBS and predecessor links.
	actIDMap := make(map[string]string, len(out.Activities))
	actIDByCode := make(map[string]string, len(out.Activities))
	for i := range out.Activities {
		oldID := out.Activities[i].ID
		newID := uuid.New().String()
		if oldID != "" {
			actIDMap[oldID] = newID
		}
		if code := out.Activities[i].Code; code != "" {
			actIDByCode[code] = newID
		}
		out.Activities[i].ID = newID

		if out.Activities[i].WBSID != nil {
			if mapped, ok := wbsIDMap[*out.Activities[i].WBSID]; ok {
				out.Activities[i].WBSID = &mapped
			} else {
				out.Activities[i].WBSID = nil
			}
		}

		a := &out.Activities[i]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO activities (id, schedule_id, wbs_id, code, name, description,
			 duration_days, start_date, end_date, kind)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, out.ID, nullableString(a.WBSID), a.Code, a.Name, a.Description,
			a.DurationDays,
			nullableTimeToString(a.StartDate, dateLayout),
			nullableTimeToString(a.EndDate, dateLayout),
			string(a.Kind),
		); err != nil {
			return nil, fmt.Errorf("inserting activity %q: %w", a.Code, err)
		}
	}

	// Predecessors: remapped through the activity table.
	for i := range out.Activities {
		a := &out.Activities[i]
		for j := range a.Predecessors {
			p := &a.Predecessors[j]
			if p.Activity.ID != "" {
				if mapped, ok := actIDMap[p.Activity.ID]; ok {
					p.Activity.ID = mapped
				} else {
					p.Activity.ID = ""
				}
			}
			if p.Activity.ID == "" && p.Activity.Code != "" {
				if mapped, ok := actIDByCode[p.Activity.Code]; ok {
					p.Activity.ID = mapped
				}
			}
			var predID any
			if p.Activity.ID != "" {
				predID = p.Activity.ID
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO predecessors (successor_id, predecessor_id, predecessor_code, relation_type, lag_days)
				 VALUES (?, ?, ?, ?, ?)`,
				a.ID, predID, p.Activity.Code, string(p.Type), p.LagDays,
			); err != nil {
				return nil, fmt.Errorf("inserting predecessor of %q: %w", a.Code, err)
			}
		}
	}

	// Resources and assignments.
	rsrcIDMap := make(map[string]string)
	for i := range out.Activities {
		a := &out.Activities[i]
		for j := range a.Assignments {
			ra := &a.Assignments[j]
			key := ra.Resource.ID
			if key == "" {
				key = "code:" + ra.Resource.Code
			}
			newID, ok := rsrcIDMap[key]
			if !ok {
				newID = uuid.New().String()
				rsrcIDMap[key] = newID
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO resources (id, schedule_id, code, name) VALUES (?, ?, ?, ?)`,
					newID, out.ID, ra.Resource.Code, ra.Resource.Name,
				); err != nil {
					return nil, fmt.Errorf("inserting resource %q: %w", ra.Resource.Code, err)
				}
			}
			ra.Resource.ID = newID
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO assignments (activity_id, resource_id, units) VALUES (?, ?, ?)`,
				a.ID, newID, ra.Units,
			); err != nil {
				return nil, fmt.Errorf("inserting assignment for %q: %w", a.Code, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing save: %w", err)
	}
	committed = true
	return out, nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	var s domain.Schedule
	var start, end string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, start_date, end_date FROM schedules WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &start, &end)
	if err != nil {
		return nil, fmt.Errorf("loading schedule %s: %w", id, err)
	}
	if t, err := time.Parse(dateLayout, start); err == nil {
		s.StartDate = t
	}
	if t, err := time.Parse(dateLayout, end); err == nil {
		s.EndDate = t
	}

	if err := r.loadWBS(ctx, &s); err != nil {
		return nil, err
	}
	if err := r.loadActivities(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteScheduleRepo) loadWBS(ctx context.Context, s *domain.Schedule) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, parent_id, code, name, level, sort_order
		 FROM wbs_nodes WHERE schedule_id = ? ORDER BY sort_order, id`, s.ID)
	if err != nil {
		return fmt.Errorf("listing wbs nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var n domain.WBSNode
		var parent sql.NullString
		if err := rows.Scan(&n.ID, &parent, &n.Code, &n.Name, &n.Level, &n.SortOrder); err != nil {
			return fmt.Errorf("scanning wbs node: %w", err)
		}
		n.ParentID = stringPtr(parent)
		s.WBS = append(s.WBS, n)
	}
	return rows.Err()
}

func (r *SQLiteScheduleRepo) loadActivities(ctx context.Context, s *domain.Schedule) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, wbs_id, code, name, description, duration_days, start_date, end_date, kind
		 FROM activities WHERE schedule_id = ? ORDER BY rowid`, s.ID)
	if err != nil {
		return fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()
	codeByID := make(map[string]string)
	for rows.Next() {
		var a domain.Activity
		var wbsID, start, end sql.NullString
		var kind string
		if err := rows.Scan(&a.ID, &wbsID, &a.Code, &a.Name, &a.Description,
			&a.DurationDays, &start, &end, &kind); err != nil {
			return fmt.Errorf("scanning activity: %w", err)
		}
		a.WBSID = stringPtr(wbsID)
		a.StartDate = nullableStringToTime(start, dateLayout)
		a.EndDate = nullableStringToTime(end, dateLayout)
		a.Kind = domain.ActivityKind(kind)
		codeByID[a.ID] = a.Code
		s.Activities = append(s.Activities, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range s.Activities {
		if err := r.loadPredecessors(ctx, &s.Activities[i], codeByID); err != nil {
			return err
		}
		if err := r.loadAssignments(ctx, &s.Activities[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteScheduleRepo) loadPredecessors(ctx context.Context, a *domain.Activity, codeByID map[string]string) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT predecessor_id, predecessor_code, relation_type, lag_days
		 FROM predecessors WHERE successor_id = ?`, a.ID)
	if err != nil {
		return fmt.Errorf("listing predecessors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var predID sql.NullString
		var code, rel string
		var lag int
		if err := rows.Scan(&predID, &code, &rel, &lag); err != nil {
			return fmt.Errorf("scanning predecessor: %w", err)
		}
		ref := domain.ByCode(code)
		if predID.Valid {
			if code == "" {
				code = codeByID[predID.String]
			}
			ref = domain.ByID(predID.String, code)
		}
		a.Predecessors = append(a.Predecessors, domain.Predecessor{
			Activity: ref,
			Type:     domain.RelationType(rel),
			LagDays:  lag,
		})
	}
	return rows.Err()
}

func (r *SQLiteScheduleRepo) loadAssignments(ctx context.Context, a *domain.Activity) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.code, r.name, asg.units
		 FROM assignments asg JOIN resources r ON asg.resource_id = r.id
		 WHERE asg.activity_id = ?`, a.ID)
	if err != nil {
		return fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ra domain.ResourceAssignment
		if err := rows.Scan(&ra.Resource.ID, &ra.Resource.Code, &ra.Resource.Name, &ra.Units); err != nil {
			return fmt.Errorf("scanning assignment: %w", err)
		}
		a.Assignments = append(a.Assignments, ra)
	}
	return rows.Err()
}

func (r *SQLiteScheduleRepo) List(ctx context.Context) ([]ScheduleSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.name, s.start_date, s.end_date,
		        (SELECT COUNT(*) FROM activities a WHERE a.schedule_id = s.id)
		 FROM schedules s ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()
	var out []ScheduleSummary
	for rows.Next() {
		var sum ScheduleSummary
		var start, end string
		if err := rows.Scan(&sum.ID, &sum.Name, &start, &end, &sum.ActivityCount); err != nil {
			return nil, fmt.Errorf("scanning schedule summary: %w", err)
		}
		if t, err := time.Parse(dateLayout, start); err == nil {
			sum.StartDate = t
		}
		if t, err := time.Parse(dateLayout, end); err == nil {
			sum.EndDate = t
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// cloneSchedule deep-copies a schedule so Save never mutates its input.
func cloneSchedule(s *domain.Schedule) *domain.Schedule {
	out := *s
	out.WBS = make([]domain.WBSNode, len(s.WBS))
	copy(out.WBS, s.WBS)
	out.Activities = make([]domain.Activity, len(s.Activities))
	for i, a := range s.Activities {
		na := a
		na.Predecessors = make([]domain.Predecessor, len(a.Predecessors))
		copy(na.Predecessors, a.Predecessors)
		na.Assignments = make([]domain.ResourceAssignment, len(a.Assignments))
		copy(na.Assignments, a.Assignments)
		out.Activities[i] = na
	}
	return &out
}
