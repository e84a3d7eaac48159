package config

import (
	"os"

	"github.com/sefazor/photoalbums-backend/pkg/storage"
)

// ServiceURLs are the static upstream addresses used by the gateway and
// by service-to-service calls. One upstream per logical name, no
// balancing.
type ServiceURLs struct {
	Auth   string
	Albums string
	Photos string
	Upload string
}

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	S3          storage.S3Config
	Services    ServiceURLs
}

func LoadConfig(defaultPort string) *Config {
	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   getEnv("JWT_ISSUER", "photoalbums"),
		S3: storage.S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			Bucket:          getEnv("S3_BUCKET", "photos"),
			ForcePathStyle:  os.Getenv("S3_FORCE_PATH_STYLE") != "false",
		},
		Services: ServiceURLs{
			Auth:   getEnv("AUTH_SERVICE_URL", "http://localhost:4001"),
			Albums: getEnv("ALBUMS_SERVICE_URL", "http://localhost:4002"),
			Photos: getEnv("PHOTOS_SERVICE_URL", "http://localhost:4003"),
			Upload: getEnv("UPLOAD_SERVICE_URL", "http://localhost:4004"),
		},
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
