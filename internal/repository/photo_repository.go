package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sefazor/photoalbums-backend/internal/models"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *models.Photo) (*models.Photo, error) {
	if err := r.db.Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

func (r *PhotoRepository) GetByID(id uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.First(&photo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetByAlbumID pages through an album's photos. The sort column is
// whitelisted here; anything unknown falls back to the default of
// acquisition time, newest first.
func (r *PhotoRepository) GetByAlbumID(albumID uuid.UUID, page, limit int, sort models.PhotoSort, order models.SortOrder) ([]models.Photo, int64, error) {
	var total int64
	if err := r.db.Model(&models.Photo{}).Where("album_id = ?", albumID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := "acquired_at"
	if sort == models.SortCreatedAt {
		column = "created_at"
	}
	direction := "DESC"
	if order == models.OrderAsc {
		direction = "ASC"
	}

	var photos []models.Photo
	err := r.db.Where("album_id = ?", albumID).
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&photos).Error
	return photos, total, err
}

func (r *PhotoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

func (r *PhotoRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Photo{}, "id = ?", id).Error
}

func (r *PhotoRepository) CountByAlbumID(albumID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("album_id = ?", albumID).Count(&count).Error
	return count, err
}
