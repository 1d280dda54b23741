package entity

import "time"

// Availability is one stored (group, user, date, slot) row.
type Availability struct {
	ID        int64     `db:"id"`
	GroupCode string    `db:"group_code"`
	UserName  string    `db:"user_name"`
	Date      string    `db:"avail_date"`
	TimeSlot  string    `db:"time_slot"`
	CreatedAt time.Time `db:"created_at"`
}

// UserAvailability maps a date (YYYY-MM-DD) to the slots marked free on it.
type UserAvailability map[string][]string

// Snapshot maps each participant of a group to their availability.
type Snapshot map[string]UserAvailability

// SlotCount returns the number of (date, slot) entries.
func (u UserAvailability) SlotCount() int {
	n := 0
	for _, slots := range u {
		n += len(slots)
	}
	return n
}
