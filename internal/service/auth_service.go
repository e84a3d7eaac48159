package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/sefazor/photoalbums-backend/internal/errs"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/repository"
	"github.com/sefazor/photoalbums-backend/pkg/bcrypt"
	"github.com/sefazor/photoalbums-backend/pkg/jwt"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

// ResetTokenTTL is fixed at one hour; there is no sweep for expired rows.
const ResetTokenTTL = time.Hour

// ResetMailer delivers password reset links. Satisfied by email.EmailService.
type ResetMailer interface {
	SendPasswordResetEmail(to, token string) error
}

type AuthService struct {
	userRepo  *repository.UserRepository
	resetRepo *repository.PasswordResetRepository
	email     ResetMailer
	tokens    *jwt.Manager
	logger    *zap.Logger

	// refreshGroup collapses concurrent refresh calls for the same
	// subject into a single token issuance.
	refreshGroup singleflight.Group
}

func NewAuthService(
	userRepo *repository.UserRepository,
	resetRepo *repository.PasswordResetRepository,
	mailer ResetMailer,
	tokens *jwt.Manager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		email:     mailer,
		tokens:    tokens,
		logger:    logger,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", errs.ErrConflict)
	}

	hash, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login returns the same ErrUnauthorized for an unknown email and a wrong
// password so callers cannot enumerate accounts.
func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil || user.PasswordHash == nil {
		return nil, fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)
	}
	if err := bcrypt.ComparePassword(*user.PasswordHash, req.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)
	}
	return s.issueTokens(user)
}

// GoogleAuth logs in by external id, links by email, or creates a fresh
// account, in that order.
func (s *AuthService) GoogleAuth(req models.GoogleAuthRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByGoogleID(req.GoogleID)
	if err == nil {
		return s.issueTokens(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.userRepo.GetByEmail(req.Email)
	switch {
	case err == nil:
		user.GoogleID = &req.GoogleID
		if req.AvatarKey != nil {
			user.AvatarKey = req.AvatarKey
		}
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Name:      req.Name,
			Email:     req.Email,
			GoogleID:  &req.GoogleID,
			AvatarKey: req.AvatarKey,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.issueTokens(user)
}

// ForgotPassword always reports success to the caller. An unknown email
// is a silent no-op.
func (s *AuthService) ForgotPassword(emailAddr string) error {
	user, err := s.userRepo.GetByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return err
	}

	if err := s.email.SendPasswordResetEmail(user.Email, token); err != nil {
		s.logger.Error("failed to send password reset email",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(req models.ResetPasswordRequest) error {
	reset, err := s.resetRepo.GetByToken(req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown reset token", errs.ErrNotFound)
		}
		return err
	}

	if reset.UsedAt != nil {
		return fmt.Errorf("%w: reset token already used", errs.ErrUnauthorized)
	}
	if time.Now().After(reset.ExpiresAt) {
		return fmt.Errorf("%w: reset token expired", errs.ErrUnauthorized)
	}

	hash, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(reset.UserID, hash); err != nil {
		return err
	}

	return s.resetRepo.MarkUsed(reset)
}

// Refresh verifies the refresh token and issues a new pair. Concurrent
// refreshes for one subject share a single result via singleflight.
func (s *AuthService) Refresh(refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", errs.ErrUnauthorized)
	}

	result, err, _ := s.refreshGroup.Do(claims.Subject, func() (interface{}, error) {
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid refresh token", errs.ErrUnauthorized)
		}
		user, err := s.userRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: user no longer exists", errs.ErrUnauthorized)
			}
			return nil, err
		}
		return s.issueTokens(user)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.AuthResponse), nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	user.Name = req.Name
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar is called internally by the upload service once the avatar
// object is stored.
func (s *AuthService) SetAvatar(userID uuid.UUID, avatarKey string) error {
	if _, err := s.GetProfile(userID); err != nil {
		return err
	}
	return s.userRepo.UpdateAvatar(userID, avatarKey)
}

func (s *AuthService) issueTokens(user *models.User) (*models.AuthResponse, error) {
	access, refresh, err := s.tokens.GenerateTokenPair(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}
	return &models.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *user,
	}, nil
}
