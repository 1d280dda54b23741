package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AvailabilityEntry is the list form used by older clients.
type AvailabilityEntry struct {
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	TimeSlotSnake string `json:"time_slot"`
	Available     *bool  `json:"available"`
}

// Slot returns whichever slot field the client filled in.
func (e AvailabilityEntry) Slot() string {
	if e.TimeSlot != "" {
		return e.TimeSlot
	}
	return e.TimeSlotSnake
}

// AvailabilityPayload accepts either {"2024-03-01": ["morning"]} or
// [{"date": "2024-03-01", "timeSlot": "morning", "available": true}].
// null or an absent payload clears the user's availability.
type AvailabilityPayload struct {
	ByDate  map[string][]string
	Entries []AvailabilityEntry
}

func (p *AvailabilityPayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*p = AvailabilityPayload{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		p.ByDate = make(map[string][]string, len(raw))
		for date, value := range raw {
			var slots []string
			if err := json.Unmarshal(value, &slots); err != nil {
				return fmt.Errorf("slots for %q must be an array of strings", date)
			}
			p.ByDate[date] = slots
		}
		return nil
	case '[':
		return json.Unmarshal(trimmed, &p.Entries)
	default:
		return fmt.Errorf("availability must be an object or an array")
	}
}

func (p AvailabilityPayload) IsEmpty() bool {
	return len(p.ByDate) == 0 && len(p.Entries) == 0
}

type SaveAvailabilityRequest struct {
	Availability AvailabilityPayload `json:"availability"`
}

type SaveAvailabilityResponse struct {
	GroupCode string `json:"group_code"`
	UserName  string `json:"user_name"`
	Dates     int    `json:"dates"`
	Slots     int    `json:"slots"`
	Cleared   bool   `json:"cleared"`
}

type UserAvailabilityResponse struct {
	GroupCode    string              `json:"group_code"`
	UserName     string              `json:"user_name"`
	Availability map[string][]string `json:"availability"`
}

type GroupDataResponse struct {
	GroupCode    string                         `json:"group_code"`
	Participants []string                       `json:"participants"`
	Availability map[string]map[string][]string `json:"availability"`
}

type ParticipantsResponse struct {
	GroupCode    string   `json:"group_code"`
	Participants []string `json:"participants"`
}
