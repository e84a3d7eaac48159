package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Album struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description *string   `json:"description" gorm:"size:1000"`
	IsPublic    bool      `json:"is_public" gorm:"default:false"`
	// PublicToken and IsPublic are set and cleared together by
	// share/unshare. A row with a token but is_public=false is never
	// served.
	PublicToken  *string   `json:"public_token,omitempty" gorm:"size:64;uniqueIndex"`
	ThumbnailKey *string   `json:"thumbnail_key" gorm:"size:500"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Album) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type CreateAlbumRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateAlbumRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type SetThumbnailRequest struct {
	ThumbnailKey string `json:"thumbnail_key" validate:"required,max=500"`
}

type ShareAlbumResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
