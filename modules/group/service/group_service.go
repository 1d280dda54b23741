package service

import (
	"context"
	"strconv"
	"time"

	"terminfinder-api/core/cache"
	"terminfinder-api/core/constants"
	"terminfinder-api/core/database"
	"terminfinder-api/core/errors"
	"terminfinder-api/core/logger"
	"terminfinder-api/core/metrics"
	"terminfinder-api/core/utils"
	"terminfinder-api/modules/group/dto"
	"terminfinder-api/modules/group/entity"
	"terminfinder-api/modules/group/mapper"
	"terminfinder-api/modules/group/repository"

	"github.com/google/uuid"
)

type GroupServiceInterface interface {
	AuthenticateGroup(ctx context.Context, req *dto.AuthenticateGroupRequest) (*dto.AuthenticateGroupResponse, *errors.AppError)
	CreateShareLink(ctx context.Context, req *dto.CreateShareLinkRequest) (*dto.ShareLinkResponse, *errors.AppError)
	AuthenticateWithToken(ctx context.Context, req *dto.TokenAuthRequest) (*dto.TokenAuthResponse, *errors.AppError)
	SuggestGroupCode(ctx context.Context, req *dto.SuggestCodeRequest) (*dto.SuggestCodeResponse, *errors.AppError)
}

type Settings struct {
	JWTSecret      string
	SessionTTL     time.Duration
	DefaultTTLDays int
}

type GroupService struct {
	groupRepo     repository.GroupRepositoryInterface
	shareLinkRepo repository.ShareLinkRepositoryInterface
	cache         cache.Cache
	settings      Settings
	now           func() time.Time
}

func NewGroupService(
	groupRepo repository.GroupRepositoryInterface,
	shareLinkRepo repository.ShareLinkRepositoryInterface,
	cache cache.Cache,
	settings Settings,
) *GroupService {
	return &GroupService{
		groupRepo:     groupRepo,
		shareLinkRepo: shareLinkRepo,
		cache:         cache,
		settings:      settings,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source.
func (s *GroupService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *GroupService) AuthenticateGroup(ctx context.Context, req *dto.AuthenticateGroupRequest) (*dto.AuthenticateGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	outcome, appErr := s.authenticate(ctx, req.Code, req.Password, true)
	if appErr != nil {
		return nil, appErr
	}
	metrics.GroupAuthTotal.WithLabelValues(string(outcome)).Inc()

	response := &dto.AuthenticateGroupResponse{
		Outcome:   outcome,
		GroupCode: req.Code,
	}
	if outcome == dto.AuthOutcomeRejected {
		return response, nil
	}

	session, appErr := s.issueSession(req.Code)
	if appErr != nil {
		return nil, appErr
	}
	response.Session = session

	logger.Info("GroupService:AuthenticateGroup:Success", "group_code", req.Code, "outcome", outcome)
	return response, nil
}

// authenticate checks the password for code. With autoCreate an unseen code
// is registered with the given password.
func (s *GroupService) authenticate(ctx context.Context, code, password string, autoCreate bool) (dto.AuthOutcome, *errors.AppError) {
	if s.isBlocked(ctx, code) {
		return "", errors.NewAppError(errors.ErrTooManyRequests, "Too many failed attempts, try again later", nil)
	}

	group, err := s.groupRepo.GetByCode(ctx, code)
	if err != nil {
		return "", errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}

	if group == nil {
		if !autoCreate {
			return "", errors.NewAppError(errors.ErrNotFound, "Group not found", nil)
		}

		created, appErr := s.createGroup(ctx, code, password)
		if appErr != nil {
			return "", appErr
		}
		if created {
			return dto.AuthOutcomeCreated, nil
		}

		// lost the creation race, continue as a normal login
		group, err = s.groupRepo.GetByCode(ctx, code)
		if err != nil {
			return "", errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
		}
		if group == nil {
			return "", errors.NewAppError(errors.ErrConflict, "Group is being created, please retry", nil)
		}
	}

	if !utils.ComparePassword(group.PasswordHash, password) {
		s.recordFailure(ctx, code)
		logger.Warn("GroupService:authenticate:InvalidPassword", "group_code", code)
		return dto.AuthOutcomeRejected, nil
	}

	s.resetFailures(ctx, code)
	return dto.AuthOutcomeAuthenticated, nil
}

// createGroup reports false when another request created the code first.
func (s *GroupService) createGroup(ctx context.Context, code, password string) (bool, *errors.AppError) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, errors.NewAppError(errors.ErrInternalServer, "hash password failed", err)
	}

	now := s.now()
	group := &entity.Group{Code: code, PasswordHash: hash}
	group.CreatedAt = now
	group.UpdatedAt = now

	if err := s.groupRepo.Create(ctx, group); err != nil {
		if database.IsUniqueViolation(err) {
			logger.Info("GroupService:createGroup:DuplicateCode", "group_code", code)
			return false, nil
		}
		return false, errors.NewAppError(errors.ErrCreateFailed, "create group failed", err)
	}

	logger.Info("GroupService:createGroup:Created", "group_code", code)
	return true, nil
}

func (s *GroupService) CreateShareLink(ctx context.Context, req *dto.CreateShareLinkRequest) (*dto.ShareLinkResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	outcome, appErr := s.authenticate(ctx, req.Code, req.Password, false)
	if appErr != nil {
		return nil, appErr
	}
	if outcome == dto.AuthOutcomeRejected {
		return nil, errors.NewAppError(errors.ErrInvalidPassword, "Invalid password", nil)
	}

	ttlDays := s.settings.DefaultTTLDays
	if req.TTLDays != nil {
		ttlDays = *req.TTLDays
	}

	token, err := utils.GenerateShareToken(constants.ShareTokenBytes)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "generate token failed", err)
	}

	now := s.now()
	link := &entity.ShareLink{
		ID:        uuid.New(),
		GroupCode: req.Code,
		TokenHash: utils.HashShareToken(token),
		SingleUse: req.SingleUse,
	}
	if ttlDays > 0 {
		expiresAt := now.AddDate(0, 0, ttlDays)
		link.ExpiresAt = &expiresAt
	}
	link.CreatedAt = now
	link.UpdatedAt = now

	if err := s.shareLinkRepo.Create(ctx, link); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create share link failed", err)
	}

	metrics.ShareLinksCreatedTotal.WithLabelValues(strconv.FormatBool(link.SingleUse)).Inc()
	logger.Info("GroupService:CreateShareLink:Created",
		"group_code", link.GroupCode,
		"share_link_id", link.ID,
		"ttl_days", ttlDays,
		"single_use", link.SingleUse,
	)
	return mapper.ToShareLinkResponse(link, token), nil
}

func (s *GroupService) AuthenticateWithToken(ctx context.Context, req *dto.TokenAuthRequest) (*dto.TokenAuthResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	tokenHash := utils.HashShareToken(req.Token)
	link, err := s.shareLinkRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get share link failed", err)
	}
	if link == nil {
		metrics.TokenAuthTotal.WithLabelValues("invalid").Inc()
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid or expired token", nil)
	}

	now := s.now()
	switch link.State(now) {
	case entity.ShareLinkStateExpired:
		metrics.TokenAuthTotal.WithLabelValues("expired").Inc()
		return nil, errors.NewAppError(errors.ErrTokenExpired, "Token expired", nil)
	case entity.ShareLinkStateUsed:
		metrics.TokenAuthTotal.WithLabelValues("used").Inc()
		return nil, errors.NewAppError(errors.ErrTokenUsed, "Token already used", nil)
	}

	if link.SingleUse {
		consumed, err := s.shareLinkRepo.MarkUsed(ctx, tokenHash, now)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "redeem share link failed", err)
		}
		if !consumed {
			metrics.TokenAuthTotal.WithLabelValues("used").Inc()
			return nil, errors.NewAppError(errors.ErrTokenUsed, "Token already used", nil)
		}
	}

	session, appErr := s.issueSession(link.GroupCode)
	if appErr != nil {
		return nil, appErr
	}

	metrics.TokenAuthTotal.WithLabelValues("success").Inc()
	logger.Info("GroupService:AuthenticateWithToken:Success", "group_code", link.GroupCode, "share_link_id", link.ID)
	return &dto.TokenAuthResponse{
		GroupCode: link.GroupCode,
		Session:   session,
	}, nil
}

// SuggestGroupCode does not reserve the code.
func (s *GroupService) SuggestGroupCode(ctx context.Context, req *dto.SuggestCodeRequest) (*dto.SuggestCodeResponse, *errors.AppError) {
	code, err := utils.SuggestGroupCode(req.Name)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "generate code failed", err)
	}
	return &dto.SuggestCodeResponse{Code: code}, nil
}

func (s *GroupService) issueSession(code string) (*dto.Session, *errors.AppError) {
	token, expiresAt, err := utils.GenerateToken(code, s.settings.JWTSecret, s.settings.SessionTTL, s.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "issue session failed", err)
	}
	return &dto.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Lockout bookkeeping fails open.
func (s *GroupService) isBlocked(ctx context.Context, code string) bool {
	blocked, err := s.cache.IsLoginBlocked(ctx, code)
	if err != nil {
		logger.Error("GroupService:isBlocked", "group_code", code, "error", err)
		return false
	}
	return blocked
}

func (s *GroupService) recordFailure(ctx context.Context, code string) {
	if _, err := s.cache.IncrementLoginAttempt(ctx, code); err != nil {
		logger.Error("GroupService:recordFailure", "group_code", code, "error", err)
	}
}

func (s *GroupService) resetFailures(ctx context.Context, code string) {
	if err := s.cache.ResetLoginAttempts(ctx, code); err != nil {
		logger.Error("GroupService:resetFailures", "group_code", code, "error", err)
	}
}
