package middleware

import (
	"strings"

	"terminfinder-api/core/constants"
	"terminfinder-api/core/controller"
	"terminfinder-api/core/errors"
	"terminfinder-api/core/logger"
	"terminfinder-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	controller.BaseController
	jwtSecret   string
	rateLimiter *RateLimiter
}

func NewMiddleware(jwtSecret string, rateLimiter *RateLimiter) *Middleware {
	return &Middleware{
		BaseController: controller.NewBaseController(),
		jwtSecret:      jwtSecret,
		rateLimiter:    rateLimiter,
	}
}

// AuthMiddleware requires a group session token. When the route has a :code
// parameter the session must belong to that group.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return m.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}

			scheme, raw, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				return m.Unauthorized(errors.ErrInvalidTokenFormat, "Invalid authorization header format")
			}

			claims, err := utils.ValidateAndParseToken(strings.TrimSpace(raw), m.jwtSecret)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return m.Unauthorized(errors.ErrUnauthorized, "Invalid or expired session")
			}

			if code := c.Param("code"); code != "" && code != claims.GroupCode {
				logger.Warn("Middleware:AuthMiddleware:GroupMismatch", "session_group", claims.GroupCode, "path_group", code)
				return m.Forbidden(errors.ErrForbidden, "Session does not grant access to this group")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RateLimit throttles requests per client IP.
func (m *Middleware) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.rateLimiter == nil {
				return next(c)
			}
			if !m.rateLimiter.Allow(c.RealIP()) {
				logger.Warn("Middleware:RateLimit:Exceeded", "ip", c.RealIP(), "path", c.Path())
				return m.TooManyRequests(errors.ErrTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}

// GetTokenClaims returns the session claims stored by AuthMiddleware.
func GetTokenClaims(c echo.Context) (*utils.TokenClaims, *errors.AppError) {
	tokenData := c.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token data not found in context", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data format", nil)
	}
	return claims, nil
}
