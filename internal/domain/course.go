package domain

import (
	"fmt"
	"time"
)

// Category is a weighted grading bucket owned by a single course.
type Category struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// ExternalRef identifies where a record came from in a third-party LMS.
// (Provider, ExternalID) is the only reconciliation key.
type ExternalRef struct {
	Provider   Provider
	ExternalID string
	Status     string
}

// Key returns the deduplication key for the reference.
func (r ExternalRef) Key() string {
	return string(r.Provider) + ":" + r.ExternalID
}

type Course struct {
	ID           string
	UserID       string
	Name         string
	Code         string
	Credits      float64
	Color        string
	GradingScale GradingScale
	Categories   []Category
	ExternalRef  *ExternalRef
	SyncEnabled  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category looks up a category by id. Assignments reference categories
// weakly, so a miss is normal and not an error.
func (c *Course) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// TotalWeight sums every category weight, graded or not.
func (c *Course) TotalWeight() float64 {
	var total float64
	for _, cat := range c.Categories {
		total += cat.Weight
	}
	return total
}

// ValidateCategories checks that category ids are unique and non-empty and
// that no weight is negative. Weights need not sum to 100.
func (c *Course) ValidateCategories() error {
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.ID == "" {
			return NewValidationError(fmt.Sprintf("categories[%d].id", i), "is required")
		}
		if seen[cat.ID] {
			return NewValidationError(fmt.Sprintf("categories[%d].id", i), fmt.Sprintf("duplicate id %q", cat.ID))
		}
		seen[cat.ID] = true
		if cat.Weight < 0 {
			return NewValidationError(fmt.Sprintf("categories[%d].weight", i), "must not be negative")
		}
	}
	return nil
}

// IsExternal reports whether the course was imported from an LMS.
func (c *Course) IsExternal() bool {
	return c.ExternalRef != nil && c.ExternalRef.ExternalID != ""
}

// DisplayCode prefers the course code and falls back to the name.
func (c *Course) DisplayCode() string {
	return CoalesceStr(c.Code, c.Name)
}
