package mapper

import (
	"terminfinder-api/modules/availability/dto"
	"terminfinder-api/modules/availability/entity"
)

func ToMatchResponse(groupCode string, result *entity.MatchResult) *dto.MatchResponse {
	response := &dto.MatchResponse{
		GroupCode:        groupCode,
		Status:           string(result.Status),
		ParticipantCount: len(result.Participants),
		Participants:     result.Participants,
	}
	if result.Status != entity.MatchStatusComputed {
		return response
	}

	response.FullMatches = make([]dto.FullMatchResponse, len(result.FullMatches))
	for i, fm := range result.FullMatches {
		response.FullMatches[i] = dto.FullMatchResponse{Date: fm.Date, Slots: fm.Slots}
	}

	response.PartialMatches = make([]dto.PartialMatchResponse, len(result.PartialMatches))
	for i, pm := range result.PartialMatches {
		response.PartialMatches[i] = dto.PartialMatchResponse{
			Date:    pm.Date,
			Slots:   pm.Slots,
			Present: pm.Present,
			Missing: pm.Missing,
		}
	}
	return response
}

func ToGroupDataResponse(groupCode string, snapshot entity.Snapshot, participants []string) *dto.GroupDataResponse {
	availability := make(map[string]map[string][]string, len(snapshot))
	for name, ua := range snapshot {
		availability[name] = ua
	}
	return &dto.GroupDataResponse{
		GroupCode:    groupCode,
		Participants: participants,
		Availability: availability,
	}
}
