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

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

const taskColumns = `id, user_id, title, due_date, priority, est_minutes, completed,
	recurrence_rule, parent_task_id, created_at, updated_at`

func taskArgs(t *domain.Task) ([]any, error) {
	var rule any
	if t.RecurrenceRule != nil {
		data, err := json.Marshal(t.RecurrenceRule)
		if err != nil {
			return nil, fmt.Errorf("encoding recurrence_rule: %w", err)
		}
		rule = string(data)
	}
	var parent any
	if t.ParentTaskID != nil {
		parent = *t.ParentTaskID
	}
	return []any{
		t.ID,
		t.UserID,
		t.Title,
		nullableTimeToString(t.DueDate, dateLayout),
		string(t.Priority),
		t.EstMinutes,
		boolToInt(t.Completed),
		rule,
		parent,
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	}, nil
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	args, err := taskArgs(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeErr("inserting task", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("task", id)
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?
		ORDER BY due_date IS NULL, due_date, created_at`
	return r.query(ctx, query, userID)
}

// ListRecurringTemplates returns the user's recurrence parents.
func (r *SQLiteTaskRepo) ListRecurringTemplates(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND recurrence_rule IS NOT NULL AND parent_task_id IS NULL
		ORDER BY created_at`
	return r.query(ctx, query, userID)
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	args, err := taskArgs(t)
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET title = ?, due_date = ?, priority = ?, est_minutes = ?,
		completed = ?, recurrence_rule = ?, parent_task_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, append(args[2:9:9], args[10], t.ID)...)
	if err != nil {
		return writeErr("updating task", err)
	}
	return requireAffected(res, "task", t.ID)
}

// Delete removes a task; generated occurrences of a template go with it.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var t domain.Task
	var dueDate, rule, parent sql.NullString
	var priority, createdAt, updatedAt string
	var completed int

	err := s.Scan(
		&t.ID, &t.UserID, &t.Title, &dueDate, &priority, &t.EstMinutes, &completed,
		&rule, &parent, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.DueDate = parseNullableTime(dueDate, dateLayout)
	t.Priority = domain.TaskPriority(priority)
	t.Completed = intToBool(completed)
	if rule.Valid && rule.String != "" {
		var rr domain.RecurrenceRule
		if err := json.Unmarshal([]byte(rule.String), &rr); err != nil {
			return nil, fmt.Errorf("decoding recurrence_rule for task %s: %w", t.ID, err)
		}
		t.RecurrenceRule = &rr
	}
	if parent.Valid {
		p := parent.String
		t.ParentTaskID = &p
	}

	t.CreatedAt, t.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
