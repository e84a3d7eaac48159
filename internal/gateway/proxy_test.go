package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sefazor/photoalbums-backend/internal/config"
	"github.com/sefazor/photoalbums-backend/internal/middleware"
)

type echoedRequest struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
}

func startEchoUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echoedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			UserID:    r.Header.Get(middleware.HeaderUserID),
			UserEmail: r.Header.Get(middleware.HeaderUserEmail),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProxy(albumsURL string) *Proxy {
	return NewProxy(config.ServiceURLs{
		Auth:   "http://127.0.0.1:1",
		Albums: albumsURL,
		Photos: "http://127.0.0.1:1",
		Upload: "http://127.0.0.1:1",
	}, zap.NewNop())
}

func TestProxy_ForwardStripsApiPrefix(t *testing.T) {
	upstream := startEchoUpstream(t)
	p := newTestProxy(upstream.URL)

	app := fiber.New()
	app.All("/api/albums/*", p.Forward("albums"))

	req := httptest.NewRequest(http.MethodGet, "/api/albums/shared/tok123", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var echoed echoedRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&echoed))
	assert.Equal(t, http.MethodGet, echoed.Method)
	assert.Equal(t, "/albums/shared/tok123", echoed.Path)
}

func TestProxy_ForwardInjectsIdentity(t *testing.T) {
	upstream := startEchoUpstream(t)
	p := newTestProxy(upstream.URL)
	userID := uuid.New()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		// Stands in for the auth middleware.
		c.Locals(middleware.LocalUserID, userID)
		c.Locals(middleware.LocalUserEmail, "ada@example.com")
		return c.Next()
	})
	app.All("/api/albums/*", p.Forward("albums"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/albums/list", nil))
	require.NoError(t, err)

	var echoed echoedRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&echoed))
	assert.Equal(t, userID.String(), echoed.UserID)
	assert.Equal(t, "ada@example.com", echoed.UserEmail)
}

func TestProxy_StripsSpoofedIdentityHeaders(t *testing.T) {
	upstream := startEchoUpstream(t)
	p := newTestProxy(upstream.URL)

	app := fiber.New()
	app.Use(StripIdentityHeaders())
	app.All("/api/albums/*", p.Forward("albums"))

	req := httptest.NewRequest(http.MethodGet, "/api/albums/list", nil)
	req.Header.Set(middleware.HeaderUserID, uuid.NewString())
	req.Header.Set(middleware.HeaderUserEmail, "attacker@example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var echoed echoedRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&echoed))
	assert.Empty(t, echoed.UserID, "spoofed identity must not reach the upstream")
	assert.Empty(t, echoed.UserEmail)
}

func TestProxy_UnreachableUpstreamIs503(t *testing.T) {
	// Port 1 refuses connections.
	p := newTestProxy("http://127.0.0.1:1")

	app := fiber.New()
	app.All("/api/albums/*", p.Forward("albums"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/albums/list", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Service unavailable")
}

func TestProxy_UnknownServiceIs500(t *testing.T) {
	p := newTestProxy("http://127.0.0.1:1")

	app := fiber.New()
	app.All("/api/billing/*", p.Forward("billing"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/billing/invoices", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
