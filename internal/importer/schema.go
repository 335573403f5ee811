package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SnapshotVersion is the only backup format version this build reads.
const SnapshotVersion = 1

// Snapshot is the top-level JSON structure of a backup file. Field names
// here are the on-disk mapping; domain types never leave this package in
// serialised form.
type Snapshot struct {
	Version     int                `json:"version" validate:"required,eq=1"`
	ExportedAt  string             `json:"exported_at,omitempty"`
	Courses     []CourseRecord     `json:"courses" validate:"dive"`
	Assignments []AssignmentRecord `json:"assignments" validate:"dive"`
	Tasks       []TaskRecord       `json:"tasks" validate:"dive"`
}

type CourseRecord struct {
	ID           string            `json:"id" validate:"required"`
	Name         string            `json:"name" validate:"required"`
	Code         string            `json:"code,omitempty"`
	Credits      float64           `json:"credits" validate:"gte=0"`
	Color        string            `json:"color,omitempty"`
	GradingScale []ThresholdRecord `json:"grading_scale,omitempty" validate:"dive"`
	Categories   []CategoryRecord  `json:"categories" validate:"dive"`
	External     *ExternalRecord   `json:"external,omitempty"`
	SyncEnabled  bool              `json:"sync_enabled,omitempty"`
}

type CategoryRecord struct {
	ID     string  `json:"id" validate:"required"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

type ThresholdRecord struct {
	Label      string  `json:"label" validate:"required"`
	MinPercent float64 `json:"min_percent"`
}

type ExternalRecord struct {
	Provider   string `json:"provider" validate:"required,oneof=canvas blackboard moodle"`
	ExternalID string `json:"external_id" validate:"required"`
	Status     string `json:"status,omitempty"`
}

type AssignmentRecord struct {
	ID             string          `json:"id" validate:"required"`
	CourseID       string          `json:"course_id" validate:"required"`
	CategoryID     string          `json:"category_id,omitempty"`
	Title          string          `json:"title" validate:"required"`
	Details        string          `json:"details,omitempty"`
	DueDate        *string         `json:"due_date,omitempty"`
	PointsPossible float64         `json:"points_possible" validate:"gte=0"`
	PointsEarned   *float64        `json:"points_earned,omitempty" validate:"omitempty,gte=0"`
	External       *ExternalRecord `json:"external,omitempty"`
}

type TaskRecord struct {
	ID           string            `json:"id" validate:"required"`
	Title        string            `json:"title" validate:"required"`
	DueDate      *string           `json:"due_date,omitempty"`
	Priority     string            `json:"priority" validate:"required,oneof=low medium high"`
	EstMinutes   int               `json:"est_minutes" validate:"gte=0"`
	Completed    bool              `json:"completed,omitempty"`
	Recurrence   *RecurrenceRecord `json:"recurrence,omitempty"`
	ParentTaskID *string           `json:"parent_task_id,omitempty"`
}

type RecurrenceRecord struct {
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly"`
	Interval  int    `json:"interval,omitempty" validate:"gte=0"`
}

// LoadSnapshot reads and parses a backup file.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f)
}

func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing backup: %w", err)
	}
	return &s, nil
}

// WriteSnapshot encodes s as indented JSON.
func WriteSnapshot(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}
