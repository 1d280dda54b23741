package group

import (
	"terminfinder-api/core/cache"
	"terminfinder-api/core/config"
	"terminfinder-api/core/database"
	"terminfinder-api/core/middleware"
	"terminfinder-api/modules/group/controller"
	"terminfinder-api/modules/group/repository"
	"terminfinder-api/modules/group/router"
	"terminfinder-api/modules/group/service"

	"github.com/labstack/echo/v4"
)

// Init wires the group module and returns its service.
func Init(g *echo.Group, db database.Database, c cache.Cache, cfg *config.Config, mw *middleware.Middleware) *service.GroupService {
	groupRepo := repository.NewGroupRepository(db)
	shareLinkRepo := repository.NewShareLinkRepository(db)
	svc := service.NewGroupService(groupRepo, shareLinkRepo, c, service.Settings{
		JWTSecret:      cfg.JWT.Secret,
		SessionTTL:     cfg.JWT.SessionTTL,
		DefaultTTLDays: cfg.ShareLink.DefaultTTLDays,
	})
	ctrl := controller.NewGroupController(svc, cfg.ShareLink.MaxTTLDays)
	r := router.NewGroupRouter(ctrl)

	r.Register(g, mw)

	return svc
}
