package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AlbumID       uuid.UUID `json:"album_id" gorm:"type:uuid;not null;index"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Description   *string   `json:"description" gorm:"size:1000"`
	FileKey       string    `json:"file_key" gorm:"size:500;not null"`
	ThumbnailKey  *string   `json:"thumbnail_key" gorm:"size:500"`
	SizeBytes     int64     `json:"size_bytes" gorm:"not null"`
	MimeType      string    `json:"mime_type" gorm:"size:100;not null"`
	DominantColor string    `json:"dominant_color" gorm:"size:7;not null"`
	AcquiredAt    time.Time `json:"acquired_at" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *Photo) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CreatePhotoRequest is the internal payload posted by the upload service
// after the objects have been stored.
type CreatePhotoRequest struct {
	AlbumID       uuid.UUID `json:"album_id" validate:"required"`
	Title         string    `json:"title" validate:"required,max=255"`
	Description   *string   `json:"description" validate:"omitempty,max=1000"`
	FileKey       string    `json:"file_key" validate:"required,max=500"`
	ThumbnailKey  *string   `json:"thumbnail_key" validate:"omitempty,max=500"`
	SizeBytes     int64     `json:"size_bytes" validate:"required,min=1"`
	MimeType      string    `json:"mime_type" validate:"required,supported_image"`
	DominantColor string    `json:"dominant_color" validate:"required,len=7"`
	AcquiredAt    time.Time `json:"acquired_at" validate:"required"`
}

type UpdatePhotoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// PhotoSort is the list sort key for an album's photos.
type PhotoSort string

const (
	SortAcquiredAt PhotoSort = "acquired_at"
	SortCreatedAt  PhotoSort = "created_at"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)
