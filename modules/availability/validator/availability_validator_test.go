package validator

import (
	"encoding/json"
	"reflect"
	"testing"

	"terminfinder-api/core/validation"
	"terminfinder-api/modules/availability/dto"
	"terminfinder-api/modules/availability/entity"
)

func decode(t *testing.T, body string) dto.AvailabilityPayload {
	t.Helper()
	var req dto.SaveAvailabilityRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return req.Availability
}

func TestIsValidDate(t *testing.T) {
	tests := map[string]bool{
		"2024-03-01": true,
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-13-40": false,
		"2024-3-1":   false,
		"24-03-01":   false,
		"":           false,

		"2024-03-01T00:00:00Z": false,
	}
	for date, want := range tests {
		if got := IsValidDate(date); got != want {
			t.Errorf("IsValidDate(%q) = %v, want %v", date, got, want)
		}
	}
}

func TestCanonicalSlot(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"morning", "morning", true},
		{"Evening", "evening", true},
		{" afternoon ", "afternoon", true},
		{"09:30", "09:30", true},
		{"9:30", "09:30", true},
		{"23:59", "23:59", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"lunchtime", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalSlot(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalSlot(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSortSlots(t *testing.T) {
	slots := []string{"14:00", "evening", "09:00", "morning", "afternoon"}
	SortSlots(slots)
	want := []string{"morning", "afternoon", "evening", "09:00", "14:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("SortSlots = %v, want %v", slots, want)
	}
}

func TestNormalizeAvailability(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    entity.UserAvailability
		wantErr bool
	}{
		{
			name: "object form",
			body: `{"availability": {"2024-03-01": ["afternoon", "morning", "morning"], "2024-03-02": ["9:00"]}}`,
			want: entity.UserAvailability{
				"2024-03-01": {"morning", "afternoon"},
				"2024-03-02": {"09:00"},
			},
		},
		{
			name: "list form skips unavailable",
			body: `{"availability": [
				{"date": "2024-03-01", "timeSlot": "morning", "available": true},
				{"date": "2024-03-01", "timeSlot": "evening", "available": false},
				{"date": "2024-03-02", "time_slot": "18:30", "available": true},
				{"date": "2024-03-03", "timeSlot": "morning"}
			]}`,
			want: entity.UserAvailability{
				"2024-03-01": {"morning"},
				"2024-03-02": {"18:30"},
			},
		},
		{
			name: "empty object clears",
			body: `{"availability": {}}`,
			want: entity.UserAvailability{},
		},
		{
			name: "null clears",
			body: `{"availability": null}`,
			want: entity.UserAvailability{},
		},
		{
			name:    "invalid date rejects whole payload",
			body:    `{"availability": {"2024-03-01": ["morning"], "2024-13-40": ["morning"]}}`,
			wantErr: true,
		},
		{
			name:    "invalid slot rejects whole payload",
			body:    `{"availability": {"2024-03-01": ["morning", "lunchtime"]}}`,
			wantErr: true,
		},
		{
			name:    "invalid list entry",
			body:    `{"availability": [{"date": "2024-03-01", "timeSlot": "morning", "available": true}, {"date": "2024-03-01", "timeSlot": "lunchtime", "available": true}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, result := NormalizeAvailability(decode(t, tt.body))
			if tt.wantErr {
				if !result.HasError() {
					t.Fatalf("expected validation error, got %v", got)
				}
				if got != nil {
					t.Fatalf("got availability %v alongside errors", got)
				}
				return
			}
			if result.HasError() {
				t.Fatalf("unexpected errors: %+v", result.Errors)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeAvailability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailabilityPayloadRejectsMalformedShapes(t *testing.T) {
	bodies := []string{
		`{"availability": "morning"}`,
		`{"availability": {"2024-03-01": "morning"}}`,
		`{"availability": 42}`,
	}
	for _, body := range bodies {
		var req dto.SaveAvailabilityRequest
		if err := json.Unmarshal([]byte(body), &req); err == nil {
			t.Errorf("expected decode error for %s", body)
		}
	}
}

func TestValidateUserName(t *testing.T) {
	tests := map[string]bool{
		"Alice":       false,
		"Anna Müller": false,
		"":            true,
		"a/b":         true,
	}
	for name, wantErr := range tests {
		result := validation.NewResult()
		ValidateUserName(result, name)
		if result.HasError() != wantErr {
			t.Errorf("ValidateUserName(%q) error = %v, want %v", name, result.HasError(), wantErr)
		}
	}
}
