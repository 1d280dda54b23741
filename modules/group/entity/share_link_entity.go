package entity

import (
	"time"

	"terminfinder-api/core/entity"

	"github.com/google/uuid"
)

type ShareLinkState string

const (
	ShareLinkStateActive  ShareLinkState = "active"
	ShareLinkStateUsed    ShareLinkState = "used"
	ShareLinkStateExpired ShareLinkState = "expired"
)

// ShareLink stores only the sha256 hash of the bearer token.
type ShareLink struct {
	ID        uuid.UUID  `db:"id"`
	GroupCode string     `db:"group_code"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt *time.Time `db:"expires_at"`
	SingleUse bool       `db:"single_use"`
	UsedAt    *time.Time `db:"used_at"`

	entity.BaseEntity
}

// State reports the link state at now. A link expires only once now is
// strictly after ExpiresAt; used and expired are terminal.
func (l *ShareLink) State(now time.Time) ShareLinkState {
	if l.SingleUse && l.UsedAt != nil {
		return ShareLinkStateUsed
	}
	if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
		return ShareLinkStateExpired
	}
	return ShareLinkStateActive
}
