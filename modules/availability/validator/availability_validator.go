package validator

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"terminfinder-api/core/constants"
	"terminfinder-api/core/validation"
	"terminfinder-api/modules/availability/dto"
	"terminfinder-api/modules/availability/entity"
)

const dateLayout = "2006-01-02"

// NamedSlots in display order.
var NamedSlots = []string{"morning", "afternoon", "evening"}

var clockSlotPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// IsValidDate accepts only real calendar dates written as YYYY-MM-DD.
func IsValidDate(date string) bool {
	parsed, err := time.Parse(dateLayout, date)
	return err == nil && parsed.Format(dateLayout) == date
}

// CanonicalSlot returns the stored form of a slot label: a lower case named
// slot or a zero padded HH:MM time.
func CanonicalSlot(slot string) (string, bool) {
	s := strings.TrimSpace(slot)
	for _, named := range NamedSlots {
		if strings.EqualFold(s, named) {
			return named, true
		}
	}
	m := clockSlotPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return hour + ":" + m[2], true
}

// SlotRank orders named slots before clock times.
func SlotRank(slot string) int {
	for i, named := range NamedSlots {
		if slot == named {
			return i
		}
	}
	return len(NamedSlots)
}

func SortSlots(slots []string) {
	sort.Slice(slots, func(i, j int) bool {
		ri, rj := SlotRank(slots[i]), SlotRank(slots[j])
		if ri != rj {
			return ri < rj
		}
		return slots[i] < slots[j]
	})
}

func ValidateUserName(result *validation.Result, name string) {
	switch {
	case name == "":
		result.Add("user_name", "user name is required")
	case len(name) > constants.MaxUserNameLength:
		result.Addf("user_name", "user name must be at most %d characters", constants.MaxUserNameLength)
	case strings.ContainsAny(name, "/\x00"):
		result.Add("user_name", "user name must not contain '/'")
	}
}

// NormalizeAvailability validates every entry of the payload and folds it
// into date -> sorted unique slots. Entries with available false or missing
// are skipped. One invalid entry fails the whole payload.
func NormalizeAvailability(payload dto.AvailabilityPayload) (entity.UserAvailability, *validation.Result) {
	result := validation.NewResult()
	sets := map[string]map[string]struct{}{}

	add := func(field, date, slot string) {
		if !IsValidDate(date) {
			result.Addf(field, "invalid date %q, expected YYYY-MM-DD", date)
			return
		}
		canonical, ok := CanonicalSlot(slot)
		if !ok {
			result.Addf(field, "invalid time slot %q", slot)
			return
		}
		if sets[date] == nil {
			sets[date] = map[string]struct{}{}
		}
		sets[date][canonical] = struct{}{}
	}

	for date, slots := range payload.ByDate {
		if !IsValidDate(date) {
			result.Addf("availability."+date, "invalid date %q, expected YYYY-MM-DD", date)
			continue
		}
		for _, slot := range slots {
			add("availability."+date, date, slot)
		}
	}

	for i, entry := range payload.Entries {
		if entry.Available == nil || !*entry.Available {
			continue
		}
		field := "availability[" + strconv.Itoa(i) + "]"
		add(field, strings.TrimSpace(entry.Date), entry.Slot())
	}

	if result.HasError() {
		sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].Field < result.Errors[j].Field })
		return nil, result
	}

	normalized := make(entity.UserAvailability, len(sets))
	for date, set := range sets {
		slots := make([]string, 0, len(set))
		for slot := range set {
			slots = append(slots, slot)
		}
		SortSlots(slots)
		normalized[date] = slots
	}
	return normalized, result
}
