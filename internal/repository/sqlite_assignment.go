package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(db db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: db}
}

const assignmentColumns = `id, user_id, course_id, category_id, title, details, due_date,
	points_possible, points_earned, ext_provider, ext_id, ext_status, created_at, updated_at`

func assignmentArgs(a *domain.Assignment) []any {
	provider, extID, status := externalColumns(a.ExternalRef)
	return []any{
		a.ID,
		a.UserID,
		a.CourseID,
		a.CategoryID,
		a.Title,
		a.Details,
		nullableTimeToString(a.DueDate, time.RFC3339),
		a.PointsPossible,
		nullableFloat(a.PointsEarned),
		provider,
		extID,
		status,
		formatTimestamp(a.CreatedAt),
		formatTimestamp(a.UpdatedAt),
	}
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (` + assignmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, assignmentArgs(a)...); err != nil {
		return writeErr("inserting assignment", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = ?`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("assignment", id)
	}
	return a, err
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context, userID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE user_id = ?
		ORDER BY due_date IS NULL, due_date, created_at`
	return r.query(ctx, query, userID)
}

func (r *SQLiteAssignmentRepo) ListByCourse(ctx context.Context, courseID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE course_id = ?
		ORDER BY due_date IS NULL, due_date, created_at`
	return r.query(ctx, query, courseID)
}

func (r *SQLiteAssignmentRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	args := assignmentArgs(a)
	query := `UPDATE assignments SET course_id = ?, category_id = ?, title = ?, details = ?,
		due_date = ?, points_possible = ?, points_earned = ?, ext_provider = ?, ext_id = ?,
		ext_status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, append(args[2:12:12], args[13], a.ID)...)
	if err != nil {
		return writeErr("updating assignment", err)
	}
	return requireAffected(res, "assignment", a.ID)
}

// Upsert inserts the assignment or updates it in place when the id exists.
func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (` + assignmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			course_id = excluded.course_id,
			category_id = excluded.category_id,
			title = excluded.title,
			details = excluded.details,
			due_date = excluded.due_date,
			points_possible = excluded.points_possible,
			points_earned = excluded.points_earned,
			ext_provider = excluded.ext_provider,
			ext_id = excluded.ext_id,
			ext_status = excluded.ext_status,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, assignmentArgs(a)...); err != nil {
		return writeErr("upserting assignment", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return requireAffected(res, "assignment", id)
}

// DeleteByCourse removes every assignment of a course and reports how many
// rows went.
func (r *SQLiteAssignmentRepo) DeleteByCourse(ctx context.Context, courseID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE course_id = ?`, courseID)
	if err != nil {
		return 0, fmt.Errorf("deleting assignments for course %s: %w", courseID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking affected rows: %w", err)
	}
	return int(n), nil
}

func scanAssignment(s rowScanner) (*domain.Assignment, error) {
	var a domain.Assignment
	var dueDate, provider, extID sql.NullString
	var earned sql.NullFloat64
	var status, createdAt, updatedAt string

	err := s.Scan(
		&a.ID, &a.UserID, &a.CourseID, &a.CategoryID, &a.Title, &a.Details,
		&dueDate, &a.PointsPossible, &earned,
		&provider, &extID, &status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}

	a.DueDate = parseNullableTime(dueDate, time.RFC3339)
	a.PointsEarned = floatFromNull(earned)
	a.ExternalRef = externalRef(provider, extID, status)

	a.CreatedAt, a.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
