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
	"github.com/sefazor/photoalbums-backend/internal/models"
	"github.com/sefazor/photoalbums-backend/internal/repository"
	"github.com/sefazor/photoalbums-backend/internal/service"
	"github.com/sefazor/photoalbums-backend/pkg/database"
	"github.com/sefazor/photoalbums-backend/pkg/jwt"
	"github.com/sefazor/photoalbums-backend/pkg/logger"
	"github.com/sefazor/photoalbums-backend/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig("4003")
	log := logger.New("photos")
	defer log.Sync()

	db, err := database.New(cfg.DatabaseURL, &models.Photo{})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	photoRepo := repository.NewPhotoRepository(db)
	albumsClient := client.NewAlbumsClient(cfg.Services.Albums)
	photoService := service.NewPhotoService(photoRepo, albumsClient)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
	validator := utils.NewValidator()
	photoHandler := handler.NewPhotoHandler(photoService, validator)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	photos := app.Group("/photos")

	// Public route, resolves the album through its share token
	photos.Get("/shared/:token", photoHandler.GetSharedAlbumPhotos)

	// Internal routes, called by the upload and albums services
	photos.Post("/", middleware.Internal(), photoHandler.CreatePhoto)
	photos.Get("/album/:albumId/count", middleware.Internal(), photoHandler.CountByAlbum)

	photos.Use(middleware.Combined(tokens))
	photos.Get("/album/:albumId", photoHandler.GetAlbumPhotos)
	photos.Get("/:id", photoHandler.GetPhoto)
	photos.Patch("/:id", photoHandler.UpdatePhoto)
	photos.Delete("/:id", photoHandler.DeletePhoto)

	log.Info("photos service listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
