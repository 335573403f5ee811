package lms

import (
	"testing"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRouter_For(t *testing.T) {
	live := NewCanvasClient(DefaultConfig(), nil)
	sim := NewSimulatedProvider(nil)
	r := NewRouter(live, sim)

	tests := []struct {
		name string
		conn domain.LMSConnection
		want Provider
	}{
		{"canvas with token", domain.LMSConnection{Provider: domain.ProviderCanvas, AccessToken: "real"}, live},
		{"canvas without token", domain.LMSConnection{Provider: domain.ProviderCanvas}, sim},
		{"canvas mock token", domain.LMSConnection{Provider: domain.ProviderCanvas, AccessToken: "mock_token_1"}, sim},
		{"moodle with token", domain.LMSConnection{Provider: domain.ProviderMoodle, AccessToken: "real"}, sim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, r.For(&tt.conn))
		})
	}
}
