package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/photoalbums-backend/internal/config"
	"github.com/sefazor/photoalbums-backend/internal/gateway"
	"github.com/sefazor/photoalbums-backend/internal/middleware"
	"github.com/sefazor/photoalbums-backend/pkg/jwt"
	"github.com/sefazor/photoalbums-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig("4000")
	log := logger.New("gateway")
	defer log.Sync()

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
	proxy := gateway.NewProxy(cfg.Services, log)

	app := fiber.New(fiber.Config{
		// Uploads flow through the gateway, keep room for a full batch.
		BodyLimit: 550 * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
	app.Use(gateway.StripIdentityHeaders())

	api := app.Group("/api")

	// Profile endpoints are authenticated at the edge like everything
	// else. The rest of /auth is public by nature.
	api.Get("/auth/me", middleware.Auth(tokens), proxy.Forward("auth"))
	api.Patch("/auth/profile", middleware.Auth(tokens), proxy.Forward("auth"))

	// Public routes, forwarded without an established identity.
	api.All("/auth/*", proxy.Forward("auth"))
	api.Get("/albums/shared/:token", proxy.Forward("albums"))
	api.Get("/photos/shared/:token", proxy.Forward("photos"))
	api.Get("/upload/public/presigned/*", proxy.Forward("upload"))

	// Everything else requires a valid bearer token; the proxy injects
	// the trusted identity headers downstream.
	api.Use(middleware.Auth(tokens))
	api.All("/albums", proxy.Forward("albums"))
	api.All("/albums/*", proxy.Forward("albums"))
	api.All("/photos/*", proxy.Forward("photos"))
	api.All("/upload/*", proxy.Forward("upload"))

	log.Info("gateway listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
