package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/photoalbums-backend/internal/client"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/pkg/imaging"
	"github.com/sefazor/photoalbums-backend/pkg/storage"
)

// UploadService is the one place with real multi-step failure exposure:
// two object writes and a record creation with no rollback. Failures
// leave orphans; every orphaned key is logged for offline cleanup.
type UploadService struct {
	storage storage.ObjectStorage
	photos  client.PhotosClient
	users   client.UsersClient
	logger  *zap.Logger
}

func NewUploadService(objectStorage storage.ObjectStorage, photos client.PhotosClient, users client.UsersClient, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage: objectStorage,
		photos:  photos,
		users:   users,
		logger:  logger,
	}
}

// UploadResult is the photo record plus the extraction tags, so callers
// can tell a real EXIF date or palette color from a fallback.
type UploadResult struct {
	Photo               *models.Photo  `json:"photo"`
	AcquiredAtSource    imaging.Source `json:"acquired_at_source"`
	DominantColorSource imaging.Source `json:"dominant_color_source"`
}

// UploadPhoto runs the ingest pipeline: validate and process the image,
// store original and thumbnail, then persist the record through the
// photos service. The upload id is minted once per attempt, not
// re-derived, so a future retry layer could dedup on it.
func (s *UploadService) UploadPhoto(ctx context.Context, userID uuid.UUID, userEmail string, albumID uuid.UUID, filename string, data []byte) (*UploadResult, error) {
	processed, err := imaging.Process(data)
	if err != nil {
		return nil, err
	}

	uploadID := uuid.New()
	fileKey := fmt.Sprintf("%s/%s/%s.jpg", userID, albumID, uploadID)
	thumbnailKey := fmt.Sprintf("%s/%s/%s_thumb.jpg", userID, albumID, uploadID)

	if err := s.storage.Put(ctx, fileKey, processed.Original, processed.Metadata.MimeType); err != nil {
		return nil, err
	}

	if err := s.storage.Put(ctx, thumbnailKey, processed.Thumbnail, "image/jpeg"); err != nil {
		s.logger.Error("thumbnail store failed after original was stored, object orphaned",
			zap.String("orphaned_key", fileKey),
			zap.Error(err))
		return nil, err
	}

	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if title == "" {
		title = uploadID.String()
	}

	photo, err := s.photos.CreatePhoto(ctx, userID, userEmail, models.CreatePhotoRequest{
		AlbumID:       albumID,
		Title:         title,
		FileKey:       fileKey,
		ThumbnailKey:  &thumbnailKey,
		SizeBytes:     processed.Metadata.SizeBytes,
		MimeType:      processed.Metadata.MimeType,
		DominantColor: processed.Metadata.DominantColor,
		AcquiredAt:    processed.Metadata.AcquiredAt,
	})
	if err != nil {
		s.logger.Error("photo record creation failed after objects were stored, objects orphaned",
			zap.String("orphaned_key", fileKey),
			zap.String("orphaned_thumbnail_key", thumbnailKey),
			zap.Error(err))
		return nil, err
	}

	return &UploadResult{
		Photo:               photo,
		AcquiredAtSource:    processed.Metadata.AcquiredAtSource,
		DominantColorSource: processed.Metadata.DominantColorSource,
	}, nil
}

// UploadAvatar stores the processed thumbnail under the fixed avatar key
// and pushes the key onto the user profile in the auth service.
func (s *UploadService) UploadAvatar(ctx context.Context, userID uuid.UUID, userEmail string, data []byte) (string, error) {
	processed, err := imaging.Process(data)
	if err != nil {
		return "", err
	}

	avatarKey := fmt.Sprintf("avatars/%s.jpg", userID)
	if err := s.storage.Put(ctx, avatarKey, processed.Thumbnail, "image/jpeg"); err != nil {
		return "", err
	}

	if err := s.users.SetAvatar(ctx, userID, userEmail, avatarKey); err != nil {
		s.logger.Error("profile update failed after avatar was stored, object orphaned",
			zap.String("orphaned_key", avatarKey),
			zap.Error(err))
		return "", err
	}

	return avatarKey, nil
}

func (s *UploadService) PresignedURL(ctx context.Context, key string) (string, error) {
	return s.storage.PresignedURL(ctx, key, storage.DefaultPresignTTL)
}

// DeletePhotoObjects removes both stored objects for a photo. Deletes are
// idempotent at the backend, so a missing thumbnail is not an error.
func (s *UploadService) DeletePhotoObjects(ctx context.Context, fileKey string, thumbnailKey *string) error {
	if err := s.storage.Delete(ctx, fileKey); err != nil {
		return err
	}
	if thumbnailKey != nil && *thumbnailKey != "" {
		return s.storage.Delete(ctx, *thumbnailKey)
	}
	return nil
}
