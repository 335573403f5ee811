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

// SQLiteConnectionRepo implements ConnectionRepo using a SQLite database.
type SQLiteConnectionRepo struct {
	db db.DBTX
}

// NewSQLiteConnectionRepo creates a new SQLiteConnectionRepo.
func NewSQLiteConnectionRepo(db db.DBTX) *SQLiteConnectionRepo {
	return &SQLiteConnectionRepo{db: db}
}

const connectionColumns = `id, user_id, provider, instance_url, access_token, last_sync,
	sync_status, created_at, updated_at`

func (r *SQLiteConnectionRepo) Create(ctx context.Context, c *domain.LMSConnection) error {
	query := `INSERT INTO lms_connections (` + connectionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		string(c.Provider),
		c.InstanceURL,
		c.AccessToken,
		nullableTimeToString(c.LastSync, time.RFC3339),
		domain.CoalesceStr(string(c.SyncStatus), string(domain.SyncNever)),
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting lms connection", err)
	}
	return nil
}

func (r *SQLiteConnectionRepo) GetByID(ctx context.Context, id string) (*domain.LMSConnection, error) {
	query := `SELECT ` + connectionColumns + ` FROM lms_connections WHERE id = ?`
	c, err := scanConnection(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("lms connection", id)
	}
	return c, err
}

func (r *SQLiteConnectionRepo) List(ctx context.Context, userID string) ([]*domain.LMSConnection, error) {
	query := `SELECT ` + connectionColumns + ` FROM lms_connections WHERE user_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing lms connections: %w", err)
	}
	defer rows.Close()

	var out []*domain.LMSConnection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lms connections: %w", err)
	}
	return out, nil
}

func (r *SQLiteConnectionRepo) Update(ctx context.Context, c *domain.LMSConnection) error {
	query := `UPDATE lms_connections SET instance_url = ?, access_token = ?, last_sync = ?,
		sync_status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.InstanceURL,
		c.AccessToken,
		nullableTimeToString(c.LastSync, time.RFC3339),
		string(c.SyncStatus),
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return writeErr("updating lms connection", err)
	}
	return requireAffected(res, "lms connection", c.ID)
}

func (r *SQLiteConnectionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lms_connections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lms connection: %w", err)
	}
	return requireAffected(res, "lms connection", id)
}

func scanConnection(s rowScanner) (*domain.LMSConnection, error) {
	var c domain.LMSConnection
	var lastSync sql.NullString
	var provider, status, createdAt, updatedAt string

	err := s.Scan(
		&c.ID, &c.UserID, &provider, &c.InstanceURL, &c.AccessToken,
		&lastSync, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning lms connection: %w", err)
	}

	c.Provider = domain.Provider(provider)
	c.SyncStatus = domain.SyncStatus(status)
	c.LastSync = parseNullableTime(lastSync, time.RFC3339)

	c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
