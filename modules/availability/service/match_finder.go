package service

import (
	"sort"
	"strings"

	"terminfinder-api/modules/availability/entity"
	"terminfinder-api/modules/availability/validator"
)

// MatchFinder intersects participants' availability into full and partial
// matches.
type MatchFinder struct {
	// MinParticipants below which nothing is computed - default 2
	MinParticipants int
	// MinPartialPresent people a partial match needs - default 2, capped at
	// participants-1 so a pair still gets partial matches
	MinPartialPresent int
}

// NewMatchFinder creates a match finder with default settings
func NewMatchFinder() *MatchFinder {
	return &MatchFinder{
		MinParticipants:   2,
		MinPartialPresent: 2,
	}
}

type slotKey struct {
	date string
	slot string
}

// FindMatches computes the matches of a group snapshot
func (mf *MatchFinder) FindMatches(snapshot entity.Snapshot) *entity.MatchResult {
	participants := make([]string, 0, len(snapshot))
	for name := range snapshot {
		participants = append(participants, name)
	}
	sort.Strings(participants)

	result := &entity.MatchResult{
		Status:       entity.MatchStatusInsufficientParticipants,
		Participants: participants,
	}
	if len(participants) < mf.MinParticipants {
		return result
	}

	// 1. Index (date, slot) -> participants, visiting every entry once
	index := mf.buildIndex(snapshot, participants)

	// 2. Classify each key by how many participants share it
	total := len(participants)
	minPresent := mf.MinPartialPresent
	if minPresent > total-1 {
		minPresent = total - 1
	}
	if minPresent < 1 {
		minPresent = 1
	}

	fullByDate := map[string][]string{}
	partials := map[string]*entity.PartialMatch{}
	for key, present := range index {
		switch {
		case len(present) == total:
			fullByDate[key.date] = append(fullByDate[key.date], key.slot)
		case len(present) >= minPresent:
			// 3. Group partials by date and exact participant set
			groupKey := key.date + "\x00" + strings.Join(present, "\x00")
			pm, ok := partials[groupKey]
			if !ok {
				pm = &entity.PartialMatch{
					Date:    key.date,
					Present: present,
					Missing: mf.missing(participants, present),
				}
				partials[groupKey] = pm
			}
			pm.Slots = append(pm.Slots, key.slot)
		}
	}

	// 4. Sort for stable output
	result.Status = entity.MatchStatusComputed
	result.FullMatches = mf.sortFull(fullByDate)
	result.PartialMatches = mf.sortPartial(partials)
	return result
}

// buildIndex walks participants in sorted order so every participant list
// in the index comes out sorted.
func (mf *MatchFinder) buildIndex(snapshot entity.Snapshot, participants []string) map[slotKey][]string {
	index := map[slotKey][]string{}
	for _, name := range participants {
		for date, slots := range snapshot[name] {
			seen := map[string]bool{}
			for _, slot := range slots {
				if seen[slot] {
					continue
				}
				seen[slot] = true
				key := slotKey{date: date, slot: slot}
				index[key] = append(index[key], name)
			}
		}
	}
	return index
}

// missing returns all participants not in present; both inputs are sorted
func (mf *MatchFinder) missing(all, present []string) []string {
	out := make([]string, 0, len(all)-len(present))
	i := 0
	for _, name := range all {
		if i < len(present) && present[i] == name {
			i++
			continue
		}
		out = append(out, name)
	}
	return out
}

func (mf *MatchFinder) sortFull(byDate map[string][]string) []entity.FullMatch {
	full := make([]entity.FullMatch, 0, len(byDate))
	for date, slots := range byDate {
		validator.SortSlots(slots)
		full = append(full, entity.FullMatch{Date: date, Slots: slots})
	}
	sort.Slice(full, func(i, j int) bool {
		return full[i].Date < full[j].Date
	})
	return full
}

func (mf *MatchFinder) sortPartial(groups map[string]*entity.PartialMatch) []entity.PartialMatch {
	partial := make([]entity.PartialMatch, 0, len(groups))
	for _, pm := range groups {
		validator.SortSlots(pm.Slots)
		partial = append(partial, *pm)
	}
	sort.Slice(partial, func(i, j int) bool {
		if partial[i].Date != partial[j].Date {
			return partial[i].Date < partial[j].Date
		}
		return strings.Join(partial[i].Present, ", ") < strings.Join(partial[j].Present, ", ")
	})
	return partial
}
