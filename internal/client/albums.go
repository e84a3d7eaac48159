package client

import (
	"context"
	"net/http"

	"github.com/sefazor/photoalbums-backend/internal/models"
)

// AlbumsClient resolves shared albums for the photos service.
type AlbumsClient interface {
	GetSharedAlbum(ctx context.Context, token string) (*models.Album, error)
}

type albumsClient struct {
	baseURL string
	http    *http.Client
}

func NewAlbumsClient(baseURL string) AlbumsClient {
	return &albumsClient{
		baseURL: baseURL,
		http:    newHTTPClient(),
	}
}

func (c *albumsClient) GetSharedAlbum(ctx context.Context, token string) (*models.Album, error) {
	var album models.Album
	url := c.baseURL + "/albums/shared/" + token
	if err := doJSON(ctx, c.http, http.MethodGet, url, nil, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}
