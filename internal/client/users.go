package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sefazor/photoalbums-backend/internal/models"
)

// UsersClient lets the upload service push a freshly stored avatar key
// onto the user profile in the auth service.
type UsersClient interface {
	SetAvatar(ctx context.Context, userID uuid.UUID, userEmail, avatarKey string) error
}

type usersClient struct {
	baseURL string
	http    *http.Client
}

func NewUsersClient(baseURL string) UsersClient {
	return &usersClient{
		baseURL: baseURL,
		http:    newHTTPClient(),
	}
}

func (c *usersClient) SetAvatar(ctx context.Context, userID uuid.UUID, userEmail, avatarKey string) error {
	url := c.baseURL + "/auth/internal/avatar"
	headers := map[string]string{
		HeaderUserID:    userID.String(),
		HeaderUserEmail: userEmail,
	}
	req := models.SetAvatarRequest{AvatarKey: avatarKey}
	return doJSON(ctx, c.http, http.MethodPut, url, headers, req, nil)
}
