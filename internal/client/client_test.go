package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/photoalbums-backend/internal/errs"
	"github.com/sefazor/photoalbums-backend/internal/models"
)

func TestPhotosClient_CountByAlbum(t *testing.T) {
	albumID := uuid.New()
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/album/"+albumID.String()+"/count", r.URL.Path)
		assert.Equal(t, userID.String(), r.Header.Get(HeaderUserID))
		assert.Equal(t, internalEmail, r.Header.Get(HeaderUserEmail))
		_ = json.NewEncoder(w).Encode(models.SuccessResponse(map[string]int64{"count": 7}, ""))
	}))
	defer srv.Close()

	count, err := NewPhotosClient(srv.URL).CountByAlbum(context.Background(), albumID, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, count)
}

func TestPhotosClient_CreatePhoto(t *testing.T) {
	albumID := uuid.New()
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/photos", r.URL.Path)
		assert.Equal(t, "ada@example.com", r.Header.Get(HeaderUserEmail))

		var req models.CreatePhotoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, albumID, req.AlbumID)

		photo := models.Photo{ID: uuid.New(), AlbumID: req.AlbumID, Title: req.Title, FileKey: req.FileKey}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.SuccessResponse(photo, ""))
	}))
	defer srv.Close()

	photo, err := NewPhotosClient(srv.URL).CreatePhoto(context.Background(), userID, "ada@example.com", models.CreatePhotoRequest{
		AlbumID:  albumID,
		Title:    "beach",
		FileKey:  "u/a/p.jpg",
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, albumID, photo.AlbumID)
	assert.Equal(t, "beach", photo.Title)
}

func TestAlbumsClient_GetSharedAlbum_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse("album not found or not shared"))
	}))
	defer srv.Close()

	_, err := NewAlbumsClient(srv.URL).GetSharedAlbum(context.Background(), "bogus")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestClients_NetworkFailureIsServiceUnavailable(t *testing.T) {
	// Nothing listens on port 1.
	_, err := NewAlbumsClient("http://127.0.0.1:1").GetSharedAlbum(context.Background(), "tok")
	assert.ErrorIs(t, err, errs.ErrServiceUnavailable)

	_, err = NewPhotosClient("http://127.0.0.1:1").CountByAlbum(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrServiceUnavailable)
}

func TestUsersClient_SetAvatar(t *testing.T) {
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/internal/avatar", r.URL.Path)
		assert.Equal(t, userID.String(), r.Header.Get(HeaderUserID))

		var req models.SetAvatarRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "avatars/"+userID.String()+".jpg", req.AvatarKey)
		_ = json.NewEncoder(w).Encode(models.SuccessResponse(nil, "Avatar updated"))
	}))
	defer srv.Close()

	err := NewUsersClient(srv.URL).SetAvatar(context.Background(), userID, "ada@example.com", "avatars/"+userID.String()+".jpg")
	assert.NoError(t, err)
}

func TestDoJSON_BadRequestCarriesUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse("album still contains 3 photo(s)"))
	}))
	defer srv.Close()

	_, err := NewAlbumsClient(srv.URL).GetSharedAlbum(context.Background(), "tok")
	require.ErrorIs(t, err, errs.ErrBadRequest)
	assert.Contains(t, err.Error(), "album still contains 3 photo(s)")
}
