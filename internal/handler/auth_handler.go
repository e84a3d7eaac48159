package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/service"
	"github.com/sefazor/photoalbums-backend/pkg/oauth"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	google      *oauth.GoogleProvider
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, google *oauth.GoogleProvider, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		google:      google,
		validator:   validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

// GoogleLogin exchanges the authorization code for a verified profile and
// logs in or links the account.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Authorization code is required"))
	}

	profile, err := h.google.Exchange(c.Context(), req.Code)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Google authentication failed"))
	}

	authReq := models.GoogleAuthRequest{
		GoogleID: profile.ID,
		Email:    profile.Email,
		Name:     profile.Name,
	}
	if profile.Picture != "" {
		authReq.AvatarKey = &profile.Picture
	}

	resp, err := h.authService.GoogleAuth(authReq)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

// ForgotPassword is success-shaped even for unknown emails.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "If the email exists, a reset link has been sent"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.authService.ResetPassword(req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Password updated successfully"))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Tokens refreshed"))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "Profile retrieved"))
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.authService.UpdateProfile(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "Profile updated"))
}

// SetAvatar is the internal endpoint the upload service calls after an
// avatar object has been stored.
func (h *AuthHandler) SetAvatar(c *fiber.Ctx) error {
	var req models.SetAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.authService.SetAvatar(middleware.UserID(c), req.AvatarKey); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Avatar updated"))
}
