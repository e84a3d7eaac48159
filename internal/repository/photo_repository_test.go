package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/photoalbums-backend/internal/models"
)

func seedPhotos(t *testing.T, repo *PhotoRepository, albumID uuid.UUID, n int) {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		photo := &models.Photo{
			AlbumID:       albumID,
			Title:         fmt.Sprintf("photo %02d", i),
			FileKey:       fmt.Sprintf("user/album/%02d.jpg", i),
			SizeBytes:     1024,
			MimeType:      "image/jpeg",
			DominantColor: "#808080",
			// Acquisition runs opposite to insertion so the two sort
			// columns produce different orders.
			AcquiredAt: base.Add(-time.Duration(i) * time.Hour),
		}
		photo.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := repo.Create(photo)
		require.NoError(t, err)
	}
}

func TestPhotoRepository_GetByAlbumID_DefaultSort(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhotoRepository(db)
	albumID := uuid.New()
	seedPhotos(t, repo, albumID, 5)

	photos, total, err := repo.GetByAlbumID(albumID, 1, 20, models.SortAcquiredAt, models.OrderDesc)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, photos, 5)
	// Newest acquisition first is the most recently seeded row 00.
	assert.Equal(t, "photo 00", photos[0].Title)
	assert.Equal(t, "photo 04", photos[4].Title)
}

func TestPhotoRepository_GetByAlbumID_CreatedAtAsc(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhotoRepository(db)
	albumID := uuid.New()
	seedPhotos(t, repo, albumID, 5)

	photos, _, err := repo.GetByAlbumID(albumID, 1, 20, models.SortCreatedAt, models.OrderAsc)
	require.NoError(t, err)
	require.Len(t, photos, 5)
	assert.Equal(t, "photo 00", photos[0].Title)
	assert.Equal(t, "photo 04", photos[4].Title)

	photos, _, err = repo.GetByAlbumID(albumID, 1, 20, models.SortCreatedAt, models.OrderDesc)
	require.NoError(t, err)
	assert.Equal(t, "photo 04", photos[0].Title)
}

func TestPhotoRepository_GetByAlbumID_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhotoRepository(db)
	albumID := uuid.New()
	seedPhotos(t, repo, albumID, 45)

	photos, total, err := repo.GetByAlbumID(albumID, 3, 20, models.SortAcquiredAt, models.OrderDesc)
	require.NoError(t, err)
	assert.EqualValues(t, 45, total)
	assert.Len(t, photos, 5)
	assert.Equal(t, 3, models.NewPageMeta(total, 3, 20).TotalPages)
}

func TestPhotoRepository_CountByAlbumID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhotoRepository(db)
	albumID := uuid.New()
	seedPhotos(t, repo, albumID, 3)
	seedPhotos(t, repo, uuid.New(), 7)

	count, err := repo.CountByAlbumID(albumID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.CountByAlbumID(uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)
}
