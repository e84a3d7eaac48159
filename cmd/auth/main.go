package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/photoalbums-backend/internal/config"
	"github.com/sefazor/photoalbums-backend/internal/handler"
	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/repository"
	"github.com/sefazor/photoalbums-backend/internal/service"
	"github.com/sefazor/photoalbums-backend/pkg/database"
	"github.com/sefazor/photoalbums-backend/pkg/email"
	"github.com/sefazor/photoalbums-backend/pkg/jwt"
	"github.com/sefazor/photoalbums-backend/pkg/logger"
	"github.com/sefazor/photoalbums-backend/pkg/oauth"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg := config.LoadConfig("4001")
	log := logger.New("auth")
	defer log.Sync()

	db, err := database.New(cfg.DatabaseURL, &models.User{}, &models.PasswordReset{})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)

	// Services
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
	emailService := email.NewEmailService()
	authService := service.NewAuthService(userRepo, resetRepo, emailService, tokens, log)

	// Handlers
	validator := utils.NewValidator()
	google := oauth.NewGoogleProvider()
	authHandler := handler.NewAuthHandler(authService, google, validator)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/google", authHandler.GoogleLogin)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/refresh", authHandler.Refresh)

	// Internal routes (trusted identity headers only)
	auth.Put("/internal/avatar", middleware.Internal(), authHandler.SetAvatar)

	// Protected routes
	auth.Use(middleware.Combined(tokens))
	auth.Get("/me", authHandler.Me)
	auth.Patch("/profile", authHandler.UpdateProfile)

	log.Info("auth service listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
