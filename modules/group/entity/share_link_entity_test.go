package entity

import (
	"testing"
	"time"
)

func TestShareLinkState(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		link ShareLink
		want ShareLinkState
	}{
		{"no expiry", ShareLink{}, ShareLinkStateActive},
		{"not yet expired", ShareLink{ExpiresAt: &future}, ShareLinkStateActive},
		{"expires exactly now", ShareLink{ExpiresAt: &now}, ShareLinkStateActive},
		{"expired", ShareLink{ExpiresAt: &past}, ShareLinkStateExpired},
		{"single use unused", ShareLink{SingleUse: true}, ShareLinkStateActive},
		{"single use used", ShareLink{SingleUse: true, UsedAt: &past}, ShareLinkStateUsed},
		{"used and expired", ShareLink{SingleUse: true, UsedAt: &past, ExpiresAt: &past}, ShareLinkStateUsed},
		{"multi use with used_at", ShareLink{UsedAt: &past}, ShareLinkStateActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.link.State(now); got != tt.want {
				t.Fatalf("State() = %s, want %s", got, tt.want)
			}
		})
	}
}
