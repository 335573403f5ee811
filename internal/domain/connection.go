package domain

import (
	"strings"
	"time"
)

// MockTokenPrefix marks access tokens that route to simulated provider data.
const MockTokenPrefix = "mock_token_"

// LMSConnection is a user's link to one LMS instance.
type LMSConnection struct {
	ID          string
	UserID      string
	Provider    Provider
	InstanceURL string
	AccessToken string
	LastSync    *time.Time
	SyncStatus  SyncStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSimulated reports whether the connection has no real credentials.
func (c *LMSConnection) IsSimulated() bool {
	return c.AccessToken == "" || strings.HasPrefix(c.AccessToken, MockTokenPrefix)
}

// BaseURL normalises the instance URL to include a scheme.
func (c *LMSConnection) BaseURL(fallbackHost string) string {
	host := CoalesceStr(c.InstanceURL, fallbackHost)
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return strings.TrimRight(host, "/")
	}
	return "https://" + strings.TrimRight(host, "/")
}

// MarkSynced records the outcome of a sync run.
func (c *LMSConnection) MarkSynced(status SyncStatus, now time.Time) {
	c.SyncStatus = status
	c.UpdatedAt = now
	if status == SyncSuccess {
		c.LastSync = &now
	}
}
