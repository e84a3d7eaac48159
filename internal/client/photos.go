package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/sefazor/photoalbums-backend/internal/models"
)

// PhotosClient is what the albums and upload services need from the
// photos service.
type PhotosClient interface {
	CountByAlbum(ctx context.Context, albumID, userID uuid.UUID) (int64, error)
	CreatePhoto(ctx context.Context, userID uuid.UUID, userEmail string, req models.CreatePhotoRequest) (*models.Photo, error)
}

type photosClient struct {
	baseURL string
	http    *http.Client
}

func NewPhotosClient(baseURL string) PhotosClient {
	return &photosClient{
		baseURL: baseURL,
		http:    newHTTPClient(),
	}
}

func (c *photosClient) CountByAlbum(ctx context.Context, albumID, userID uuid.UUID) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	url := fmt.Sprintf("%s/photos/album/%s/count", c.baseURL, albumID)
	headers := map[string]string{
		HeaderUserID:    userID.String(),
		HeaderUserEmail: internalEmail,
	}
	if err := doJSON(ctx, c.http, http.MethodGet, url, headers, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *photosClient) CreatePhoto(ctx context.Context, userID uuid.UUID, userEmail string, req models.CreatePhotoRequest) (*models.Photo, error) {
	var photo models.Photo
	url := c.baseURL + "/photos"
	headers := map[string]string{
		HeaderUserID:    userID.String(),
		HeaderUserEmail: userEmail,
	}
	if err := doJSON(ctx, c.http, http.MethodPost, url, headers, req, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}
