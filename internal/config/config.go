package config

import (
	"errors"
	"os"
	"strings"
)

// Config carries everything the server reads from the environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	Port          string
	UploadDir     string
	CORSOrigins   []string
}

// Load reads the environment into a Config. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: os.Getenv("MONGO_DATABASE"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Port:          os.Getenv("API_PORT"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "clinic"
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg, nil
}
