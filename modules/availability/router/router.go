package router

import (
	"terminfinder-api/core/middleware"
	"terminfinder-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	controller *controller.AvailabilityController
}

func NewAvailabilityRouter(controller *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		controller: controller,
	}
}

func (r *AvailabilityRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/groups/:code")
	group.Use(mw.AuthMiddleware())

	group.GET("/data", r.controller.GetGroupData)
	group.GET("/participants", r.controller.GetParticipants)
	group.GET("/availability/:user", r.controller.GetUserAvailability)
	group.PUT("/availability/:user", r.controller.SaveAvailability)
	group.GET("/matches", r.controller.GetMatches)
}
