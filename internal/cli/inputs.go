package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

// parseCategory accepts "name:weight" or "id:name:weight". Without an
// explicit id the name is slugged.
func parseCategory(s string) (domain.Category, error) {
	parts := strings.Split(s, ":")
	var id, name, weight string
	switch len(parts) {
	case 2:
		name, weight = parts[0], parts[1]
		id = slug(name)
	case 3:
		id, name, weight = parts[0], parts[1], parts[2]
	default:
		return domain.Category{}, fmt.Errorf("category %q: want name:weight or id:name:weight", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(weight), "%"), 64)
	if err != nil {
		return domain.Category{}, fmt.Errorf("category %q: invalid weight %q", s, weight)
	}
	return domain.Category{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name), Weight: w}, nil
}

func parseCategories(values []string) ([]domain.Category, error) {
	cats := make([]domain.Category, 0, len(values))
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			c, err := parseCategory(strings.TrimSpace(item))
			if err != nil {
				return nil, err
			}
			cats = append(cats, c)
		}
	}
	return cats, nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// parseDeadline reads an assignment due date. A bare date means the end of
// that day in local time.
func parseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		t = t.UTC()
		return &t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC3339)", s)
	}
	t := d.Add(23*time.Hour + 59*time.Minute).UTC()
	return &t, nil
}

// parseDate reads a task due date, which is a calendar day.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return &d, nil
}

// parseEarned reads a score; "none" or "-" clears it.
func parseEarned(s string) (*float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "-", "":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid score %q", s)
	}
	return &v, nil
}

// parseFraction reads "earned/possible".
func parseFraction(s string) (earned, possible float64, err error) {
	a, b, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("score %q: want earned/possible", s)
	}
	if earned, err = strconv.ParseFloat(strings.TrimSpace(a), 64); err != nil {
		return 0, 0, fmt.Errorf("score %q: invalid earned points", s)
	}
	if possible, err = strconv.ParseFloat(strings.TrimSpace(b), 64); err != nil || possible <= 0 {
		return 0, 0, fmt.Errorf("score %q: possible points must be positive", s)
	}
	return earned, possible, nil
}

func validateOptionalFloat(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateCategoryList(s string) error {
	_, err := parseCategories([]string{s})
	return err
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}
