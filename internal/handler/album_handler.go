package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/service"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

type AlbumHandler struct {
	albumService *service.AlbumService
	validator    *utils.Validator
}

func NewAlbumHandler(albumService *service.AlbumService, validator *utils.Validator) *AlbumHandler {
	return &AlbumHandler{
		albumService: albumService,
		validator:    validator,
	}
}

func (h *AlbumHandler) GetAlbums(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	albums, meta, err := h.albumService.GetUserAlbums(middleware.UserID(c), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(models.Page{Data: albums, Meta: meta}, "Albums retrieved"))
}

func (h *AlbumHandler) CreateAlbum(c *fiber.Ctx) error {
	var req models.CreateAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	album, err := h.albumService.Create(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(album, "Album created"))
}

func (h *AlbumHandler) GetAlbum(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	album, err := h.albumService.GetAlbum(id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(album, "Album retrieved"))
}

func (h *AlbumHandler) UpdateAlbum(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	var req models.UpdateAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	album, err := h.albumService.Update(id, middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(album, "Album updated"))
}

func (h *AlbumHandler) DeleteAlbum(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	if err := h.albumService.Delete(c.Context(), id, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Album deleted"))
}

func (h *AlbumHandler) ShareAlbum(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	share, err := h.albumService.Share(id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(share, "Album shared"))
}

func (h *AlbumHandler) UnshareAlbum(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	if err := h.albumService.Unshare(id, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Album unshared"))
}

// GetSharedAlbum serves the public share link, no auth required.
func (h *AlbumHandler) GetSharedAlbum(c *fiber.Ctx) error {
	album, err := h.albumService.GetByPublicToken(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(album, "Album retrieved"))
}

func (h *AlbumHandler) SetThumbnail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	var req models.SetThumbnailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	album, err := h.albumService.SetThumbnail(id, middleware.UserID(c), req.ThumbnailKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(album, "Album thumbnail set"))
}

func (h *AlbumHandler) RemoveThumbnail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid album id"))
	}

	album, err := h.albumService.RemoveThumbnail(id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(album, "Album thumbnail removed"))
}
