package dto

type FullMatchResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type PartialMatchResponse struct {
	Date    string   `json:"date"`
	Slots   []string `json:"slots"`
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// MatchResponse carries null match lists when status is
// insufficient_participants and (possibly empty) arrays otherwise.
type MatchResponse struct {
	GroupCode        string                 `json:"group_code"`
	Status           string                 `json:"status"`
	ParticipantCount int                    `json:"participant_count"`
	Participants     []string               `json:"participants"`
	FullMatches      []FullMatchResponse    `json:"full_matches"`
	PartialMatches   []PartialMatchResponse `json:"partial_matches"`
}
