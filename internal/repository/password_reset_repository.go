package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/sefazor/photoalbums-backend/internal/models"
)

type PasswordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(reset *models.PasswordReset) error {
	return r.db.Create(reset).Error
}

func (r *PasswordResetRepository) GetByToken(token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := r.db.Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// MarkUsed stamps the token so it can never be consumed again.
func (r *PasswordResetRepository) MarkUsed(reset *models.PasswordReset) error {
	now := time.Now()
	reset.UsedAt = &now
	return r.db.Save(reset).Error
}
