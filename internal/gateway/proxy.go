// Package gateway implements the path-based reverse proxy in front of the
// four services: resolve logical name, relay the request, inject trusted
// identity headers for authenticated callers.
package gateway

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/photoalbums-backend/internal/config"
	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/internal/models"
)

type Proxy struct {
	services map[string]string
	logger   *zap.Logger
}

func NewProxy(urls config.ServiceURLs, logger *zap.Logger) *Proxy {
	return &Proxy{
		services: map[string]string{
			"auth":   urls.Auth,
			"albums": urls.Albums,
			"photos": urls.Photos,
			"upload": urls.Upload,
		},
		logger: logger,
	}
}

// StripIdentityHeaders drops any identity headers presented by the
// outside world. Only the gateway itself may set them, after validating
// the bearer token.
func StripIdentityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Request().Header.Del(middleware.HeaderUserID)
		c.Request().Header.Del(middleware.HeaderUserEmail)
		return c.Next()
	}
}

// Forward relays the request to the named service, keeping method, body
// and path (minus the /api prefix). Upstream status and body come back
// verbatim; an unreachable upstream is a 503, an unknown name a 500.
func (p *Proxy) Forward(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		base, ok := p.services[service]
		if !ok {
			p.logger.Error("unknown upstream service", zap.String("service", service))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Unknown service"))
		}

		path := strings.TrimPrefix(c.OriginalURL(), "/api")
		url := base + path

		// Identity established by the auth middleware, if any.
		if userID, ok := c.Locals(middleware.LocalUserID).(uuid.UUID); ok {
			c.Request().Header.Set(middleware.HeaderUserID, userID.String())
			c.Request().Header.Set(middleware.HeaderUserEmail, middleware.UserEmail(c))
		}

		if err := proxy.Do(c, url); err != nil {
			p.logger.Error("upstream request failed",
				zap.String("service", service),
				zap.String("url", url),
				zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("Service unavailable"))
		}
		return nil
	}
}
