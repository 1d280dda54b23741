package availability

import (
	"terminfinder-api/core/database"
	"terminfinder-api/core/middleware"
	"terminfinder-api/modules/availability/controller"
	"terminfinder-api/modules/availability/repository"
	"terminfinder-api/modules/availability/router"
	"terminfinder-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) *service.AvailabilityService {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(svc)
	r := router.NewAvailabilityRouter(ctrl)

	r.Register(g, mw)

	return svc
}
