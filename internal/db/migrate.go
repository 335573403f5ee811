package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Categories, grading scales, and recurrence rules are JSON text columns.
// External references are flattened into ext_provider / ext_id / ext_status;
// the (user_id, ext_provider, ext_id) unique indexes are the only guard
// against duplicate imports. NULL ext ids never collide, so manual records
// are unaffected.
//
// assignments.course_id carries no ON DELETE CASCADE: deleting a course
// with assignments fails until the caller removes them explicitly.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		name          TEXT NOT NULL,
		code          TEXT NOT NULL DEFAULT '',
		credits       REAL NOT NULL DEFAULT 3 CHECK(credits >= 0),
		color         TEXT NOT NULL DEFAULT '',
		grading_scale TEXT,
		categories    TEXT NOT NULL DEFAULT '[]',
		ext_provider  TEXT CHECK(ext_provider IN ('canvas','blackboard','moodle')),
		ext_id        TEXT,
		sync_enabled  INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_courses_user ON courses(user_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_courses_external ON courses(user_id, ext_provider, ext_id)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		course_id       TEXT NOT NULL REFERENCES courses(id),
		category_id     TEXT NOT NULL DEFAULT '',
		title           TEXT NOT NULL,
		details         TEXT NOT NULL DEFAULT '',
		due_date        TEXT,
		points_possible REAL NOT NULL DEFAULT 0,
		points_earned   REAL,
		ext_provider    TEXT CHECK(ext_provider IN ('canvas','blackboard','moodle')),
		ext_id          TEXT,
		ext_status      TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_user ON assignments(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_course ON assignments(course_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_due ON assignments(due_date)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_external ON assignments(user_id, ext_provider, ext_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		title           TEXT NOT NULL,
		due_date        TEXT,
		priority        TEXT NOT NULL DEFAULT 'medium'
		                CHECK(priority IN ('low','medium','high')),
		est_minutes     INTEGER NOT NULL DEFAULT 0 CHECK(est_minutes >= 0),
		completed       INTEGER NOT NULL DEFAULT 0,
		recurrence_rule TEXT,
		parent_task_id  TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_occurrence ON tasks(parent_task_id, due_date)`,

	`CREATE TABLE IF NOT EXISTS lms_connections (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		provider     TEXT NOT NULL CHECK(provider IN ('canvas','blackboard','moodle')),
		instance_url TEXT NOT NULL DEFAULT '',
		access_token TEXT NOT NULL DEFAULT '',
		last_sync    TEXT,
		sync_status  TEXT NOT NULL DEFAULT 'never'
		             CHECK(sync_status IN ('never','success','error')),
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_lms_connections_instance ON lms_connections(user_id, provider, instance_url)`,
}
