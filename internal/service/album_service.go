package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/photoalbums-backend/internal/client"
	"github.com/sefazor/photoalbums-backend/internal/errs"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/repository"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

const DefaultAlbumPageSize = 10

type AlbumService struct {
	albumRepo *repository.AlbumRepository
	photos    client.PhotosClient
	logger    *zap.Logger
}

func NewAlbumService(albumRepo *repository.AlbumRepository, photos client.PhotosClient, logger *zap.Logger) *AlbumService {
	return &AlbumService{
		albumRepo: albumRepo,
		photos:    photos,
		logger:    logger,
	}
}

func (s *AlbumService) GetUserAlbums(userID uuid.UUID, page, limit int) ([]models.Album, models.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultAlbumPageSize
	}

	albums, total, err := s.albumRepo.GetUserAlbums(userID, page, limit)
	if err != nil {
		return nil, models.PageMeta{}, err
	}
	return albums, models.NewPageMeta(total, page, limit), nil
}

// GetAlbum resolves an album for its owner. Missing and foreign albums
// are both ErrNotFound.
func (s *AlbumService) GetAlbum(id, userID uuid.UUID) (*models.Album, error) {
	album, err := s.albumRepo.GetByIDAndUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return album, nil
}

func (s *AlbumService) Create(userID uuid.UUID, req models.CreateAlbumRequest) (*models.Album, error) {
	album := &models.Album{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	return s.albumRepo.Create(album)
}

func (s *AlbumService) Update(id, userID uuid.UUID, req models.UpdateAlbumRequest) (*models.Album, error) {
	album, err := s.GetAlbum(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		album.Title = *req.Title
	}
	if req.Description != nil {
		album.Description = req.Description
	}

	if err := s.albumRepo.Update(album); err != nil {
		return nil, err
	}
	return album, nil
}

// Delete blocks while the album still owns photos. When the photos
// service cannot answer, the check is skipped and deletion proceeds:
// availability over consistency, and the orphan risk is logged.
func (s *AlbumService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	album, err := s.GetAlbum(id, userID)
	if err != nil {
		return err
	}

	count, err := s.photos.CountByAlbum(ctx, album.ID, userID)
	if err != nil {
		s.logger.Warn("could not check photo count before album deletion, proceeding",
			zap.String("album_id", album.ID.String()),
			zap.Error(err))
	} else if count > 0 {
		return fmt.Errorf("%w: album still contains %d photo(s), delete them first", errs.ErrBadRequest, count)
	}

	return s.albumRepo.Delete(album.ID)
}

// Share mints the public token once. Calling it again on an already
// public album returns the existing token unchanged.
func (s *AlbumService) Share(id, userID uuid.UUID) (*models.ShareAlbumResponse, error) {
	album, err := s.GetAlbum(id, userID)
	if err != nil {
		return nil, err
	}

	if album.PublicToken == nil {
		token, err := utils.GenerateSecureToken(32)
		if err != nil {
			return nil, err
		}
		album.PublicToken = &token
		album.IsPublic = true
		if err := s.albumRepo.Update(album); err != nil {
			return nil, err
		}
	}

	return &models.ShareAlbumResponse{
		Token: *album.PublicToken,
		URL:   "/shared/" + *album.PublicToken,
	}, nil
}

func (s *AlbumService) Unshare(id, userID uuid.UUID) error {
	album, err := s.GetAlbum(id, userID)
	if err != nil {
		return err
	}

	album.PublicToken = nil
	album.IsPublic = false
	return s.albumRepo.Update(album)
}

func (s *AlbumService) GetByPublicToken(token string) (*models.Album, error) {
	album, err := s.albumRepo.GetByPublicToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: album not found or not shared", errs.ErrNotFound)
		}
		return nil, err
	}
	return album, nil
}

func (s *AlbumService) SetThumbnail(id, userID uuid.UUID, thumbnailKey string) (*models.Album, error) {
	album, err := s.GetAlbum(id, userID)
	if err != nil {
		return nil, err
	}
	album.ThumbnailKey = &thumbnailKey
	if err := s.albumRepo.Update(album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *AlbumService) RemoveThumbnail(id, userID uuid.UUID) (*models.Album, error) {
	album, err := s.GetAlbum(id, userID)
	if err != nil {
		return nil, err
	}
	album.ThumbnailKey = nil
	if err := s.albumRepo.Update(album); err != nil {
		return nil, err
	}
	return album, nil
}
