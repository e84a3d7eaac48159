package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/photoalbums-backend/internal/client"
	"github.com/sefazor/photoalbums-backend/internal/config"
	"github.com/sefazor/photoalbums-backend/internal/handler"
	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/internal/service"
	"github.com/sefazor/photoalbums-backend/pkg/jwt"
	"github.com/sefazor/photoalbums-backend/pkg/logger"
	"github.com/sefazor/photoalbums-backend/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig("4004")
	log := logger.New("upload")
	defer log.Sync()

	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	photosClient := client.NewPhotosClient(cfg.Services.Photos)
	usersClient := client.NewUsersClient(cfg.Services.Auth)
	uploadService := service.NewUploadService(s3Storage, photosClient, usersClient, log)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
	uploadHandler := handler.NewUploadHandler(uploadService)

	app := fiber.New(fiber.Config{
		BodyLimit: handler.MaxUploadBytes * (handler.MaxBatchFiles + 1),
	})
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	upload := app.Group("/upload")

	// Public variant, serves objects from shared albums
	upload.Get("/public/presigned/*", uploadHandler.PresignedURL)

	upload.Use(middleware.Combined(tokens))
	upload.Post("/photo/:albumId", uploadHandler.UploadPhoto)
	upload.Post("/photos/:albumId", uploadHandler.UploadPhotos)
	upload.Post("/avatar", uploadHandler.UploadAvatar)
	upload.Get("/presigned/*", uploadHandler.PresignedURL)

	log.Info("upload service listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
