package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/pkg/jwt"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"

	LocalUserID    = "userID"
	LocalUserEmail = "userEmail"
)

// Auth validates a bearer access token and stores the caller identity in
// the request locals.
func Auth(tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, tokens)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid or missing token"))
		}
		return setIdentity(c, claims.Subject, claims.Email)
	}
}

// Internal trusts the identity headers injected by the gateway or a
// sibling service. It must only be mounted on services that are not
// reachable from an untrusted network path.
func Internal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		userEmail := c.Get(HeaderUserEmail)
		if userID == "" || userEmail == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Missing identity headers"))
		}
		return setIdentity(c, userID, userEmail)
	}
}

// Combined accepts internal headers first and falls back to a bearer
// token, so the same endpoints serve both the gateway and direct
// service-to-service calls.
func Combined(tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		userEmail := c.Get(HeaderUserEmail)
		if userID != "" && userEmail != "" {
			return setIdentity(c, userID, userEmail)
		}

		claims, err := bearerClaims(c, tokens)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}
		return setIdentity(c, claims.Subject, claims.Email)
	}
}

func bearerClaims(c *fiber.Ctx, tokens *jwt.Manager) (*jwt.Claims, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, jwt.ErrInvalidToken
	}
	return tokens.ValidateAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
}

func setIdentity(c *fiber.Ctx, userID, userEmail string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid user id"))
	}
	c.Locals(LocalUserID, id)
	c.Locals(LocalUserEmail, userEmail)
	return c.Next()
}

// UserID reads the authenticated caller id set by one of the middlewares.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(LocalUserID).(uuid.UUID)
	return id
}

func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalUserEmail).(string)
	return email
}
