package router

import (
	"terminfinder-api/core/middleware"
	"terminfinder-api/modules/group/controller"

	"github.com/labstack/echo/v4"
)

type GroupRouter struct {
	controller *controller.GroupController
}

func NewGroupRouter(controller *controller.GroupController) *GroupRouter {
	return &GroupRouter{
		controller: controller,
	}
}

func (r *GroupRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	groups := g.Group("/groups")

	groups.POST("/authenticate", r.controller.Authenticate, mw.RateLimit())
	groups.POST("/share-links", r.controller.CreateShareLink, mw.RateLimit())
	groups.POST("/token-auth", r.controller.AuthenticateWithToken, mw.RateLimit())
	groups.POST("/suggest-code", r.controller.SuggestCode)
}
