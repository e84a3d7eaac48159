package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sefazor/photoalbums-backend/internal/models"
)

type AlbumRepository struct {
	db *gorm.DB
}

func NewAlbumRepository(db *gorm.DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

func (r *AlbumRepository) Create(album *models.Album) (*models.Album, error) {
	if err := r.db.Create(album).Error; err != nil {
		return nil, err
	}
	return album, nil
}

// GetUserAlbums returns one reverse-chronological page plus the total row
// count for the pagination meta.
func (r *AlbumRepository) GetUserAlbums(userID uuid.UUID, page, limit int) ([]models.Album, int64, error) {
	var total int64
	if err := r.db.Model(&models.Album{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var albums []models.Album
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&albums).Error
	return albums, total, err
}

// GetByIDAndUser scopes the lookup to the owner. A foreign album comes
// back as record-not-found, same as a missing one.
func (r *AlbumRepository) GetByIDAndUser(id, userID uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

// GetByPublicToken only ever returns albums with the public flag still
// set; a stale token on an unshared row is not served.
func (r *AlbumRepository) GetByPublicToken(token string) (*models.Album, error) {
	var album models.Album
	if err := r.db.Where("public_token = ? AND is_public = ?", token, true).First(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *AlbumRepository) Update(album *models.Album) error {
	return r.db.Save(album).Error
}

func (r *AlbumRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Album{}, "id = ?", id).Error
}
