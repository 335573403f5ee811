package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(db db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: db}
}

const courseColumns = `id, user_id, name, code, credits, color, grading_scale, categories,
	ext_provider, ext_id, sync_enabled, created_at, updated_at`

// courseArgs maps a course onto courseColumns, in order.
func courseArgs(c *domain.Course) ([]any, error) {
	scale, err := nullableJSON(c.GradingScale)
	if err != nil {
		return nil, fmt.Errorf("encoding grading_scale: %w", err)
	}
	cats := c.Categories
	if cats == nil {
		cats = []domain.Category{}
	}
	catJSON, err := json.Marshal(cats)
	if err != nil {
		return nil, fmt.Errorf("encoding categories: %w", err)
	}
	provider, extID, _ := externalColumns(c.ExternalRef)
	return []any{
		c.ID,
		c.UserID,
		c.Name,
		c.Code,
		c.Credits,
		c.Color,
		scale,
		string(catJSON),
		provider,
		extID,
		boolToInt(c.SyncEnabled),
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	}, nil
}

func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.Course) error {
	args, err := courseArgs(c)
	if err != nil {
		return err
	}
	query := `INSERT INTO courses (` + courseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeErr("inserting course", err)
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	c, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("course", id)
	}
	return c, err
}

func (r *SQLiteCourseRepo) List(ctx context.Context, userID string) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE user_id = ? ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return courses, nil
}

// Update rewrites every mutable column. The owning user and creation time
// never change.
func (r *SQLiteCourseRepo) Update(ctx context.Context, c *domain.Course) error {
	args, err := courseArgs(c)
	if err != nil {
		return err
	}
	query := `UPDATE courses SET name = ?, code = ?, credits = ?, color = ?, grading_scale = ?,
		categories = ?, ext_provider = ?, ext_id = ?, sync_enabled = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, append(args[2:11:11], args[12], c.ID)...)
	if err != nil {
		return writeErr("updating course", err)
	}
	return requireAffected(res, "course", c.ID)
}

// Upsert inserts the course or, when the id already exists, updates it.
// A collision on the external key still fails with domain.ErrConflict.
func (r *SQLiteCourseRepo) Upsert(ctx context.Context, c *domain.Course) error {
	args, err := courseArgs(c)
	if err != nil {
		return err
	}
	query := `INSERT INTO courses (` + courseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			code = excluded.code,
			credits = excluded.credits,
			color = excluded.color,
			grading_scale = excluded.grading_scale,
			categories = excluded.categories,
			ext_provider = excluded.ext_provider,
			ext_id = excluded.ext_id,
			sync_enabled = excluded.sync_enabled,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeErr("upserting course", err)
	}
	return nil
}

func (r *SQLiteCourseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return requireAffected(res, "course", id)
}

func scanCourse(s rowScanner) (*domain.Course, error) {
	var c domain.Course
	var scaleJSON, provider, extID sql.NullString
	var catJSON, createdAt, updatedAt string
	var syncEnabled int

	err := s.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Code, &c.Credits, &c.Color,
		&scaleJSON, &catJSON,
		&provider, &extID, &syncEnabled,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}

	var scale []domain.GradeThreshold
	if err := unmarshalNullableJSON(scaleJSON, &scale); err != nil {
		return nil, fmt.Errorf("decoding grading_scale for course %s: %w", c.ID, err)
	}
	if scale != nil {
		c.GradingScale = domain.GradingScale(scale)
	}
	if err := json.Unmarshal([]byte(catJSON), &c.Categories); err != nil {
		return nil, fmt.Errorf("decoding categories for course %s: %w", c.ID, err)
	}
	c.ExternalRef = externalRef(provider, extID, "")
	c.SyncEnabled = intToBool(syncEnabled)

	c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
