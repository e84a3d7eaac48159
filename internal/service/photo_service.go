package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sefazor/photoalbums-backend/internal/client"
	"github.com/sefazor/photoalbums-backend/internal/errs"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/repository"
)

const DefaultPhotoPageSize = 20

// PhotoService has no ownership checks of its own: authorization is
// established by the caller (the gateway plus the album lookup that
// preceded it). It must never be exposed to an untrusted network path.
type PhotoService struct {
	photoRepo *repository.PhotoRepository
	albums    client.AlbumsClient
}

func NewPhotoService(photoRepo *repository.PhotoRepository, albums client.AlbumsClient) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		albums:    albums,
	}
}

func (s *PhotoService) GetAlbumPhotos(albumID uuid.UUID, page, limit int, sort models.PhotoSort, order models.SortOrder) ([]models.Photo, models.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPhotoPageSize
	}
	if sort != models.SortCreatedAt {
		sort = models.SortAcquiredAt
	}
	if order != models.OrderAsc {
		order = models.OrderDesc
	}

	photos, total, err := s.photoRepo.GetByAlbumID(albumID, page, limit, sort, order)
	if err != nil {
		return nil, models.PageMeta{}, err
	}
	return photos, models.NewPageMeta(total, page, limit), nil
}

// GetSharedAlbumPhotos resolves the share token through the albums
// service before listing, so an unshared album stops serving photos
// immediately.
func (s *PhotoService) GetSharedAlbumPhotos(ctx context.Context, token string, page, limit int) ([]models.Photo, models.PageMeta, error) {
	album, err := s.albums.GetSharedAlbum(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, models.PageMeta{}, fmt.Errorf("%w: album not found or not shared", errs.ErrNotFound)
		}
		return nil, models.PageMeta{}, err
	}
	return s.GetAlbumPhotos(album.ID, page, limit, models.SortAcquiredAt, models.OrderDesc)
}

func (s *PhotoService) GetPhoto(id uuid.UUID) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Create(req models.CreatePhotoRequest) (*models.Photo, error) {
	photo := &models.Photo{
		AlbumID:       req.AlbumID,
		Title:         req.Title,
		Description:   req.Description,
		FileKey:       req.FileKey,
		ThumbnailKey:  req.ThumbnailKey,
		SizeBytes:     req.SizeBytes,
		MimeType:      req.MimeType,
		DominantColor: req.DominantColor,
		AcquiredAt:    req.AcquiredAt,
	}
	return s.photoRepo.Create(photo)
}

// Update patches title and description only; file metadata is immutable
// once ingested.
func (s *PhotoService) Update(id uuid.UUID, req models.UpdatePhotoRequest) (*models.Photo, error) {
	photo, err := s.GetPhoto(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		photo.Title = *req.Title
	}
	if req.Description != nil {
		photo.Description = req.Description
	}

	if err := s.photoRepo.Update(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Delete(id uuid.UUID) error {
	if _, err := s.GetPhoto(id); err != nil {
		return err
	}
	return s.photoRepo.Delete(id)
}

func (s *PhotoService) CountByAlbum(albumID uuid.UUID) (int64, error) {
	return s.photoRepo.CountByAlbumID(albumID)
}
