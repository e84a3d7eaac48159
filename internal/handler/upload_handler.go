package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/service"
)

const (
	// MaxUploadBytes caps each file at 10MB.
	MaxUploadBytes = 10 * 1024 * 1024
	// MaxBatchFiles caps one multi-upload request.
	MaxBatchFiles = 50
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

func (h *UploadHandler) UploadPhoto(c *fiber.Ctx) error {
	albumID, err := uuid.Parse(c.Params("albumId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("File is required"))
	}

	data, err := readUpload(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.uploadService.UploadPhoto(c.Context(), middleware.UserID(c), middleware.UserEmail(c), albumID, file.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(result, "Photo uploaded"))
}

// UploadPhotos ingests up to MaxBatchFiles in one request. Files are
// processed in order and the request fails on the first error; photos
// ingested before the failure stay ingested.
func (h *UploadHandler) UploadPhotos(c *fiber.Ctx) error {
	albumID, err := uuid.Parse(c.Params("albumId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid multipart form"))
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("At least one file is required"))
	}
	if len(files) > MaxBatchFiles {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(fmt.Sprintf("At most %d files per request", MaxBatchFiles)))
	}

	results := make([]*service.UploadResult, 0, len(files))
	for _, file := range files {
		data, err := readUpload(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		}
		result, err := h.uploadService.UploadPhoto(c.Context(), middleware.UserID(c), middleware.UserEmail(c), albumID, file.Filename, data)
		if err != nil {
			return respondError(c, err)
		}
		results = append(results, result)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(results, fmt.Sprintf("%d photos uploaded", len(results))))
}

func (h *UploadHandler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("File is required"))
	}

	data, err := readUpload(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	avatarKey, err := h.uploadService.UploadAvatar(c.Context(), middleware.UserID(c), middleware.UserEmail(c), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"avatar_key": avatarKey}, "Avatar uploaded"))
}

// PresignedURL hands out a time-limited GET URL for an object key. The
// key is the wildcard segment because keys contain slashes.
func (h *UploadHandler) PresignedURL(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Object key is required"))
	}

	url, err := h.uploadService.PresignedURL(c.Context(), key)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"url": url}, "Presigned URL generated"))
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > MaxUploadBytes {
		return nil, fmt.Errorf("file %q exceeds the 10MB limit", file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("file %q exceeds the 10MB limit", file.Filename)
	}
	return data, nil
}
