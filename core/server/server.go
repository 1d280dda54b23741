package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terminfinder-api/core/cache"
	"terminfinder-api/core/config"
	"terminfinder-api/core/controller"
	"terminfinder-api/core/database"
	"terminfinder-api/core/errors"
	"terminfinder-api/core/logger"
	appmiddleware "terminfinder-api/core/middleware"
	"terminfinder-api/modules/availability"
	"terminfinder-api/modules/group"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run loads the configuration, opens the database and cache and serves the
// API until SIGINT or SIGTERM.
func Run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.GetSafe()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := cache.New(cfg.Redis)
	if err != nil {
		return err
	}
	defer c.Close()

	e := New(cfg, db, c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", cfg.Addr(), "driver", db.Driver())
		if err := e.Start(cfg.Addr()); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server:Run:ShuttingDown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// New builds the echo instance with every module registered.
func New(cfg *config.Config, db database.Database, c cache.Cache) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))

	e.GET("/health", func(ctx echo.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			logger.Error("Server:Health:Database", err)
			return controller.NewErrorResponse(http.StatusServiceUnavailable, errors.ErrInternalServer, "database unavailable")
		}
		if err := c.Ping(pingCtx); err != nil {
			logger.Warn("Server:Health:Cache", "error", err)
		}
		return ctx.JSON(http.StatusOK, controller.NewSuccessResponse(map[string]string{"status": "ok"}, ""))
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	rateLimiter := appmiddleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	mw := appmiddleware.NewMiddleware(cfg.JWT.Secret, rateLimiter)

	v1 := e.Group("/api/v1")
	group.Init(v1, db, c, cfg, mw)
	availability.Init(v1, db, mw)

	return e
}

// errorHandler renders every error in the ErrorResponse envelope, including
// the plain ones echo itself produces for unknown routes or oversized bodies.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !stderrors.As(err, &he) {
		logger.Error("Server:ErrorHandler:Unhandled", "path", c.Path(), "error", err)
		he = echo.NewHTTPError(http.StatusInternalServerError)
	}

	body, ok := he.Message.(*controller.ErrorResponse)
	if !ok {
		message := http.StatusText(he.Code)
		if s, isString := he.Message.(string); isString && he.Code < http.StatusInternalServerError {
			message = s
		}
		body = controller.NewErrorBody(codeForStatus(he.Code), message)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, body)
	}
	if err != nil {
		logger.Error("Server:ErrorHandler:Write", err)
	}
}

func codeForStatus(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return errors.ErrInvalidRequestData
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return errors.ErrNotFound
	case http.StatusTooManyRequests:
		return errors.ErrTooManyRequests
	default:
		return errors.ErrInternalServer
	}
}
