package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/service"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	validator    *utils.Validator
}

func NewPhotoHandler(photoService *service.PhotoService, validator *utils.Validator) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		validator:    validator,
	}
}

func (h *PhotoHandler) GetAlbumPhotos(c *fiber.Ctx) error {
	albumID, err := uuid.Parse(c.Params("albumId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	sort := models.PhotoSort(c.Query("sort", string(models.SortAcquiredAt)))
	order := models.SortOrder(c.Query("order", string(models.OrderDesc)))

	photos, meta, err := h.photoService.GetAlbumPhotos(albumID, page, limit, sort, order)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(models.Page{Data: photos, Meta: meta}, "Photos retrieved"))
}

// GetSharedAlbumPhotos is the public listing behind a share token.
func (h *PhotoHandler) GetSharedAlbumPhotos(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	photos, meta, err := h.photoService.GetSharedAlbumPhotos(c.Context(), c.Params("token"), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(models.Page{Data: photos, Meta: meta}, "Photos retrieved"))
}

func (h *PhotoHandler) GetPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo id"))
	}

	photo, err := h.photoService.GetPhoto(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(photo, "Photo retrieved"))
}

// CreatePhoto is internal: the upload service posts the record after the
// objects are stored.
func (h *PhotoHandler) CreatePhoto(c *fiber.Ctx) error {
	var req models.CreatePhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	photo, err := h.photoService.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(photo, "Photo created"))
}

func (h *PhotoHandler) UpdatePhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo id"))
	}

	var req models.UpdatePhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	photo, err := h.photoService.Update(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(photo, "Photo updated"))
}

func (h *PhotoHandler) DeletePhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo id"))
	}

	if err := h.photoService.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Photo deleted"))
}

// CountByAlbum backs the pre-delete check in the albums service.
func (h *PhotoHandler) CountByAlbum(c *fiber.Ctx) error {
	albumID, err := uuid.Parse(c.Params("albumId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	count, err := h.photoService.CountByAlbum(albumID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"count": count}, "Photo count retrieved"))
}
