package entity

type MatchStatus string

const (
	MatchStatusComputed                 MatchStatus = "computed"
	MatchStatusInsufficientParticipants MatchStatus = "insufficient_participants"
)

// FullMatch lists the slots on Date that every participant marked.
type FullMatch struct {
	Date  string
	Slots []string
}

// PartialMatch lists the slots on Date shared by exactly the Present subset.
type PartialMatch struct {
	Date    string
	Slots   []string
	Present []string
	Missing []string
}

type MatchResult struct {
	Status         MatchStatus
	Participants   []string
	FullMatches    []FullMatch
	PartialMatches []PartialMatch
}
