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

	cfg := config.LoadConfig("4002")
	log := logger.New("albums")
	defer log.Sync()

	db, err := database.New(cfg.DatabaseURL, &models.Album{})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	albumRepo := repository.NewAlbumRepository(db)
	photosClient := client.NewPhotosClient(cfg.Services.Photos)
	albumService := service.NewAlbumService(albumRepo, photosClient, log)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
	validator := utils.NewValidator()
	albumHandler := handler.NewAlbumHandler(albumService, validator)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	albums := app.Group("/albums")

	// Public route, no identity required
	albums.Get("/shared/:token", albumHandler.GetSharedAlbum)

	albums.Use(middleware.Combined(tokens))
	albums.Get("/", albumHandler.GetAlbums)
	albums.Post("/", albumHandler.CreateAlbum)
	albums.Get("/:id", albumHandler.GetAlbum)
	albums.Patch("/:id", albumHandler.UpdateAlbum)
	albums.Delete("/:id", albumHandler.DeleteAlbum)
	albums.Post("/:id/share", albumHandler.ShareAlbum)
	albums.Delete("/:id/share", albumHandler.UnshareAlbum)
	albums.Patch("/:id/thumbnail", albumHandler.SetThumbnail)
	albums.Delete("/:id/thumbnail", albumHandler.RemoveThumbnail)

	log.Info("albums service listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
