package service

import (
	"context"
	"sort"

	"terminfinder-api/core/constants"
	"terminfinder-api/core/errors"
	"terminfinder-api/core/logger"
	"terminfinder-api/core/metrics"
	"terminfinder-api/modules/availability/dto"
	"terminfinder-api/modules/availability/mapper"
	"terminfinder-api/modules/availability/repository"
	"terminfinder-api/modules/availability/validator"
)

type AvailabilityServiceInterface interface {
	SaveAvailability(ctx context.Context, groupCode, userName string, payload dto.AvailabilityPayload) (*dto.SaveAvailabilityResponse, *errors.AppError)
	GetGroupData(ctx context.Context, groupCode string) (*dto.GroupDataResponse, *errors.AppError)
	GetUserAvailability(ctx context.Context, groupCode, userName string) (*dto.UserAvailabilityResponse, *errors.AppError)
	GetParticipants(ctx context.Context, groupCode string) (*dto.ParticipantsResponse, *errors.AppError)
	GetMatches(ctx context.Context, groupCode string) (*dto.MatchResponse, *errors.AppError)
}

type AvailabilityService struct {
	repo        repository.AvailabilityRepositoryInterface
	matchFinder *MatchFinder
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface) *AvailabilityService {
	return &AvailabilityService{
		repo:        repo,
		matchFinder: NewMatchFinder(),
	}
}

// SaveAvailability validates the whole payload before touching the store,
// then replaces the user's entries.
func (s *AvailabilityService) SaveAvailability(ctx context.Context, groupCode, userName string, payload dto.AvailabilityPayload) (*dto.SaveAvailabilityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	availability, validationResult := validator.NormalizeAvailability(payload)
	if validationResult.HasError() {
		metrics.AvailabilitySavesTotal.WithLabelValues("invalid").Inc()
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid availability data", nil).WithDetails(validationResult)
	}

	if err := s.repo.ReplaceUserAvailability(ctx, groupCode, userName, availability); err != nil {
		metrics.AvailabilitySavesTotal.WithLabelValues("error").Inc()
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "save availability failed", err)
	}

	cleared := len(availability) == 0
	metrics.AvailabilitySavesTotal.WithLabelValues("success").Inc()
	logger.Info("AvailabilityService:SaveAvailability:Saved",
		"group_code", groupCode,
		"user_name", userName,
		"dates", len(availability),
		"slots", availability.SlotCount(),
		"cleared", cleared,
	)
	return &dto.SaveAvailabilityResponse{
		GroupCode: groupCode,
		UserName:  userName,
		Dates:     len(availability),
		Slots:     availability.SlotCount(),
		Cleared:   cleared,
	}, nil
}

func (s *AvailabilityService) GetGroupData(ctx context.Context, groupCode string) (*dto.GroupDataResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	snapshot, err := s.repo.GetGroupSnapshot(ctx, groupCode)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group data failed", err)
	}

	participants := make([]string, 0, len(snapshot))
	for name := range snapshot {
		participants = append(participants, name)
	}
	sort.Strings(participants)

	return mapper.ToGroupDataResponse(groupCode, snapshot, participants), nil
}

func (s *AvailabilityService) GetUserAvailability(ctx context.Context, groupCode, userName string) (*dto.UserAvailabilityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	availability, err := s.repo.GetUserAvailability(ctx, groupCode, userName)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get availability failed", err)
	}
	return &dto.UserAvailabilityResponse{
		GroupCode:    groupCode,
		UserName:     userName,
		Availability: availability,
	}, nil
}

func (s *AvailabilityService) GetParticipants(ctx context.Context, groupCode string) (*dto.ParticipantsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	participants, err := s.repo.GetParticipants(ctx, groupCode)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participants failed", err)
	}
	return &dto.ParticipantsResponse{
		GroupCode:    groupCode,
		Participants: participants,
	}, nil
}

func (s *AvailabilityService) GetMatches(ctx context.Context, groupCode string) (*dto.MatchResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	snapshot, err := s.repo.GetGroupSnapshot(ctx, groupCode)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group data failed", err)
	}

	result := s.matchFinder.FindMatches(snapshot)

	metrics.MatchComputationsTotal.WithLabelValues(string(result.Status)).Inc()
	metrics.MatchParticipants.Observe(float64(len(result.Participants)))
	logger.Debug("AvailabilityService:GetMatches:Result",
		"group_code", groupCode,
		"status", result.Status,
		"full", len(result.FullMatches),
		"partial", len(result.PartialMatches),
	)
	return mapper.ToMatchResponse(groupCode, result), nil
}
