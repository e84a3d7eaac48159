package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/photoalbums-backend/pkg/jwt"
)

func identityEchoApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected", handler, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": UserID(c).String(),
			"email":   UserEmail(c),
		})
	})
	return app
}

func TestAuth_ValidBearerToken(t *testing.T) {
	tokens := jwt.NewManager("test-secret", "photoalbums-test")
	userID := uuid.New()
	access, _, err := tokens.GenerateTokenPair(userID.String(), "ada@example.com")
	require.NoError(t, err)

	app := identityEchoApp(Auth(tokens))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+access)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_MissingOrBadToken(t *testing.T) {
	tokens := jwt.NewManager("test-secret", "photoalbums-test")
	app := identityEchoApp(Auth(tokens))

	for _, header := range []string{"", "Bearer garbage", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestInternal_RequiresBothHeaders(t *testing.T) {
	app := identityEchoApp(Internal())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderUserID, uuid.NewString())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "user id alone is not enough")

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderUserID, uuid.NewString())
	req.Header.Set(HeaderUserEmail, "internal@system")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInternal_RejectsMalformedUserID(t *testing.T) {
	app := identityEchoApp(Internal())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderUserID, "not-a-uuid")
	req.Header.Set(HeaderUserEmail, "internal@system")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCombined_PrefersHeadersOverToken(t *testing.T) {
	tokens := jwt.NewManager("test-secret", "photoalbums-test")
	headerID := uuid.New()
	tokenID := uuid.New()
	access, _, err := tokens.GenerateTokenPair(tokenID.String(), "token@example.com")
	require.NoError(t, err)

	var seen uuid.UUID
	app := fiber.New()
	app.Get("/protected", Combined(tokens), func(c *fiber.Ctx) error {
		seen = UserID(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderUserID, headerID.String())
	req.Header.Set(HeaderUserEmail, "header@example.com")
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+access)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, headerID, seen)
}

func TestCombined_FallsBackToBearer(t *testing.T) {
	tokens := jwt.NewManager("test-secret", "photoalbums-test")
	userID := uuid.New()
	access, _, err := tokens.GenerateTokenPair(userID.String(), "ada@example.com")
	require.NoError(t, err)

	app := identityEchoApp(Combined(tokens))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+access)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
