package controller

import (
	"terminfinder-api/core/controller"
	"terminfinder-api/core/errors"
	"terminfinder-api/core/logger"
	"terminfinder-api/modules/group/dto"
	"terminfinder-api/modules/group/service"
	"terminfinder-api/modules/group/validator"

	"github.com/labstack/echo/v4"
)

type GroupController struct {
	controller.BaseController
	service    service.GroupServiceInterface
	maxTTLDays int
}

func NewGroupController(service service.GroupServiceInterface, maxTTLDays int) *GroupController {
	return &GroupController{
		BaseController: controller.NewBaseController(),
		service:        service,
		maxTTLDays:     maxTTLDays,
	}
}

// Authenticate godoc
// @Summary Authenticate with a group password
// @Description Creates the group on first use of an unseen code
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.AuthenticateGroupRequest true "Group credentials"
// @Success 200 {object} controller.SuccessResponse{data=dto.AuthenticateGroupResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Router /groups/authenticate [post]
func (c *GroupController) Authenticate(ctx echo.Context) error {
	var req dto.AuthenticateGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateAuthenticateGroupRequest(&req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Group code and password are required", validationResult)
	}

	resp, appErr := c.service.AuthenticateGroup(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	switch resp.Outcome {
	case dto.AuthOutcomeCreated:
		return c.SuccessResponse(ctx, resp, "Group created successfully")
	case dto.AuthOutcomeAuthenticated:
		return c.SuccessResponse(ctx, resp, "Authentication successful")
	default:
		return c.Unauthorized(errors.ErrInvalidPassword, "Invalid password")
	}
}

// CreateShareLink godoc
// @Summary Create a share link
// @Description ttl_days defaults to 7, 0 means the link never expires
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.CreateShareLinkRequest true "Share link options"
// @Success 200 {object} controller.SuccessResponse{data=dto.ShareLinkResponse}
// @Router /groups/share-links [post]
func (c *GroupController) CreateShareLink(ctx echo.Context) error {
	var req dto.CreateShareLinkRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateCreateShareLinkRequest(&req, c.maxTTLDays)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid share link request", validationResult)
	}

	resp, appErr := c.service.CreateShareLink(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Share link created")
}

// AuthenticateWithToken godoc
// @Summary Join a group with a share token
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.TokenAuthRequest true "Share token"
// @Success 200 {object} controller.SuccessResponse{data=dto.TokenAuthResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Router /groups/token-auth [post]
func (c *GroupController) AuthenticateWithToken(ctx echo.Context) error {
	var req dto.TokenAuthRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateTokenAuthRequest(&req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Token is required", validationResult)
	}

	resp, appErr := c.service.AuthenticateWithToken(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Authentication successful")
}

// SuggestCode godoc
// @Summary Suggest a fresh group code
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.SuggestCodeRequest false "Group name"
// @Success 200 {object} controller.SuccessResponse{data=dto.SuggestCodeResponse}
// @Router /groups/suggest-code [post]
func (c *GroupController) SuggestCode(ctx echo.Context) error {
	var req dto.SuggestCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	resp, appErr := c.service.SuggestGroupCode(ctx.Request().Context(), &req)
	if appErr != nil {
		logger.Error("GroupController:SuggestCode", "error", appErr)
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "")
}
