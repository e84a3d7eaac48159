package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/repository"
	"github.com/sefazor/photoalbums-backend/internal/service"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

type stubPhotosClient struct {
	count int64
}

func (s *stubPhotosClient) CountByAlbum(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return s.count, nil
}

func (s *stubPhotosClient) CreatePhoto(_ context.Context, _ uuid.UUID, _ string, req models.CreatePhotoRequest) (*models.Photo, error) {
	return &models.Photo{ID: uuid.New(), AlbumID: req.AlbumID, Title: req.Title}, nil
}

func setupAlbumApp(t *testing.T, photos *stubPhotosClient) (*fiber.App, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Album{}))

	albumService := service.NewAlbumService(repository.NewAlbumRepository(db), photos, zap.NewNop())
	h := NewAlbumHandler(albumService, utils.NewValidator())

	owner := uuid.New()
	app := fiber.New()
	albums := app.Group("/albums")
	albums.Get("/shared/:token", h.GetSharedAlbum)
	albums.Use(func(c *fiber.Ctx) error {
		// Stands in for the combined auth middleware.
		c.Locals(middleware.LocalUserID, owner)
		c.Locals(middleware.LocalUserEmail, "ada@example.com")
		return c.Next()
	})
	albums.Get("/", h.GetAlbums)
	albums.Post("/", h.CreateAlbum)
	albums.Get("/:id", h.GetAlbum)
	albums.Patch("/:id", h.UpdateAlbum)
	albums.Delete("/:id", h.DeleteAlbum)
	albums.Post("/:id/share", h.ShareAlbum)
	albums.Delete("/:id/share", h.UnshareAlbum)

	return app, owner
}

func doJSONRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, models.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env models.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestAlbumHandler_CreateAndList(t *testing.T) {
	app, _ := setupAlbumApp(t, &stubPhotosClient{})

	resp, env := doJSONRequest(t, app, http.MethodPost, "/albums/", models.CreateAlbumRequest{Title: "holiday"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = doJSONRequest(t, app, http.MethodGet, "/albums/?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var got struct {
		Data []models.Album  `json:"data"`
		Meta models.PageMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(page, &got))
	require.Len(t, got.Data, 1)
	assert.Equal(t, "holiday", got.Data[0].Title)
	assert.EqualValues(t, 1, got.Meta.Total)
	assert.Equal(t, 1, got.Meta.TotalPages)
}

func TestAlbumHandler_CreateRequiresTitle(t *testing.T) {
	app, _ := setupAlbumApp(t, &stubPhotosClient{})

	resp, env := doJSONRequest(t, app, http.MethodPost, "/albums/", fiber.Map{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestAlbumHandler_InvalidAndUnknownIDs(t *testing.T) {
	app, _ := setupAlbumApp(t, &stubPhotosClient{})

	resp, _ := doJSONRequest(t, app, http.MethodGet, "/albums/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSONRequest(t, app, http.MethodGet, "/albums/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAlbumHandler_DeleteBlockedByPhotos(t *testing.T) {
	photos := &stubPhotosClient{count: 2}
	app, _ := setupAlbumApp(t, photos)

	_, env := doJSONRequest(t, app, http.MethodPost, "/albums/", models.CreateAlbumRequest{Title: "full"})
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var album models.Album
	require.NoError(t, json.Unmarshal(raw, &album))

	resp, env := doJSONRequest(t, app, http.MethodDelete, "/albums/"+album.ID.String(), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error, "2 photo(s)")

	photos.count = 0
	resp, _ = doJSONRequest(t, app, http.MethodDelete, "/albums/"+album.ID.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAlbumHandler_ShareFlow(t *testing.T) {
	app, _ := setupAlbumApp(t, &stubPhotosClient{})

	_, env := doJSONRequest(t, app, http.MethodPost, "/albums/", models.CreateAlbumRequest{Title: "shared"})
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var album models.Album
	require.NoError(t, json.Unmarshal(raw, &album))

	resp, env := doJSONRequest(t, app, http.MethodPost, "/albums/"+album.ID.String()+"/share", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err = json.Marshal(env.Data)
	require.NoError(t, err)
	var share models.ShareAlbumResponse
	require.NoError(t, json.Unmarshal(raw, &share))
	require.NotEmpty(t, share.Token)

	// The public endpoint resolves the token without any identity.
	resp, _ = doJSONRequest(t, app, http.MethodGet, "/albums/shared/"+share.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSONRequest(t, app, http.MethodDelete, "/albums/"+album.ID.String()+"/share", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSONRequest(t, app, http.MethodGet, "/albums/shared/"+share.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
