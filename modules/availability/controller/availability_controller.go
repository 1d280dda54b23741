package controller

import (
	"net/url"
	"strings"

	"terminfinder-api/core/controller"
	"terminfinder-api/core/errors"
	"terminfinder-api/core/middleware"
	"terminfinder-api/core/validation"
	"terminfinder-api/modules/availability/dto"
	"terminfinder-api/modules/availability/entity"
	"terminfinder-api/modules/availability/service"
	"terminfinder-api/modules/availability/validator"

	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	service service.AvailabilityServiceInterface
}

func NewAvailabilityController(service service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// groupCode returns the group of the verified session, which the auth
// middleware already matched against the :code path parameter.
func (c *AvailabilityController) groupCode(ctx echo.Context) (string, *errors.AppError) {
	claims, appErr := middleware.GetTokenClaims(ctx)
	if appErr != nil {
		return "", appErr
	}
	return claims.GroupCode, nil
}

func userParam(ctx echo.Context) string {
	raw := ctx.Param("user")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return strings.TrimSpace(raw)
}

// GetGroupData godoc
// @Summary Availability of every participant
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param code path string true "Group code"
// @Success 200 {object} controller.SuccessResponse{data=dto.GroupDataResponse}
// @Router /groups/{code}/data [get]
func (c *AvailabilityController) GetGroupData(ctx echo.Context) error {
	code, appErr := c.groupCode(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	resp, appErr := c.service.GetGroupData(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "")
}

// GetParticipants godoc
// @Summary Participants with saved availability
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param code path string true "Group code"
// @Success 200 {object} controller.SuccessResponse{data=dto.ParticipantsResponse}
// @Router /groups/{code}/participants [get]
func (c *AvailabilityController) GetParticipants(ctx echo.Context) error {
	code, appErr := c.groupCode(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	resp, appErr := c.service.GetParticipants(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "")
}

// GetUserAvailability godoc
// @Summary Availability of one participant
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param code path string true "Group code"
// @Param user path string true "Participant name"
// @Success 200 {object} controller.SuccessResponse{data=dto.UserAvailabilityResponse}
// @Router /groups/{code}/availability/{user} [get]
func (c *AvailabilityController) GetUserAvailability(ctx echo.Context) error {
	code, appErr := c.groupCode(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	userName := userParam(ctx)
	validationResult := validation.NewResult()
	validator.ValidateUserName(validationResult, userName)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user name", validationResult)
	}

	resp, appErr := c.service.GetUserAvailability(ctx.Request().Context(), code, userName)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "")
}

// SaveAvailability godoc
// @Summary Replace a participant's availability
// @Description Accepts {date: [slots]} or [{date, timeSlot, available}]; an empty payload clears the participant
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Group code"
// @Param user path string true "Participant name"
// @Param request body dto.SaveAvailabilityRequest true "Availability"
// @Success 200 {object} controller.SuccessResponse{data=dto.SaveAvailabilityResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /groups/{code}/availability/{user} [put]
func (c *AvailabilityController) SaveAvailability(ctx echo.Context) error {
	code, appErr := c.groupCode(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	userName := userParam(ctx)
	validationResult := validation.NewResult()
	validator.ValidateUserName(validationResult, userName)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user name", validationResult)
	}

	var req dto.SaveAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid availability payload")
	}

	resp, appErr := c.service.SaveAvailability(ctx.Request().Context(), code, userName, req.Availability)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if resp.Cleared {
		return c.SuccessResponse(ctx, resp, "All availabilities cleared for user")
	}
	return c.SuccessResponse(ctx, resp, "Availability saved successfully")
}

// GetMatches godoc
// @Summary Full and partial matches of the group
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param code path string true "Group code"
// @Success 200 {object} controller.SuccessResponse{data=dto.MatchResponse}
// @Router /groups/{code}/matches [get]
func (c *AvailabilityController) GetMatches(ctx echo.Context) error {
	code, appErr := c.groupCode(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	resp, appErr := c.service.GetMatches(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if resp.Status != string(entity.MatchStatusComputed) {
		return c.SuccessResponse(ctx, resp, "At least 2 participants are needed for matches")
	}
	return c.SuccessResponse(ctx, resp, "")
}
