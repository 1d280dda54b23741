package entity

import (
	"terminfinder-api/core/entity"
)

// Group is created on the first successful authentication for its code.
type Group struct {
	Code         string `db:"code"`
	PasswordHash string `db:"password_hash"`

	entity.BaseEntity
}
