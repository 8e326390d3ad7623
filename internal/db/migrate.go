package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedules (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wbs_nodes (
		id          TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		parent_id   TEXT REFERENCES wbs_nodes(id) ON DELETE CASCADE,
		code        TEXT NOT NULL,
		name        TEXT NOT NULL,
		level       INTEGER NOT NULL DEFAULT 1,
		sort_order  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id            TEXT PRIMARY KEY,
		schedule_id   TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		wbs_id        TEXT REFERENCES wbs_nodes(id) ON DELETE SET NULL,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		duration_days INTEGER NOT NULL DEFAULT 0,
		start_date    TEXT,
		end_date      TEXT,
		kind          TEXT NOT NULL DEFAULT 'task'
		              CHECK(kind IN ('task','milestone','summary'))
	)`,
	`CREATE TABLE IF NOT EXISTS predecessors (
		successor_id   TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		predecessor_id TEXT REFERENCES activities(id) ON DELETE CASCADE,
		predecessor_code TEXT NOT NULL DEFAULT '',
		relation_type  TEXT NOT NULL DEFAULT 'finish-to-start'
		               CHECK(relation_type IN ('finish-to-start','finish-to-finish','start-to-start','start-to-finish')),
		lag_days       INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS resources (
		id          TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		code        TEXT NOT NULL,
		name        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		units       REAL NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_nodes_schedule ON wbs_nodes(schedule_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_nodes_parent ON wbs_nodes(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_schedule ON activities(schedule_id)`,
	`CREATE INDEX IF NOT EXISTS idx_predecessors_successor ON predecessors(successor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_activity ON assignments(activity_id)`,
}
