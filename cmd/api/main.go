package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imanrao90/doctor-appointment-backend/internal/config"
	"github.com/imanrao90/doctor-appointment-backend/internal/handlers"
	"github.com/imanrao90/doctor-appointment-backend/internal/imagestore"
	"github.com/imanrao90/doctor-appointment-backend/internal/middleware"
	"github.com/imanrao90/doctor-appointment-backend/internal/scheduling"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB ping failed")
	}
	db := client.Database(cfg.MongoDatabase)
	log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")

	// --- Services ---
	stores := store.NewMongo(db)
	svc := scheduling.New(stores, log)
	images, err := imagestore.NewDisk(cfg.UploadDir, "/uploads", log)
	if err != nil {
		log.Fatal().Err(err).Msg("image store")
	}

	h := handlers.NewHandler(svc, stores, images, cfg, log)

	// --- Gin Router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "atoken", "dtoken", "token"},
		AllowCredentials: false,
	}))

	r.Static("/uploads", cfg.UploadDir)

	limiter := middleware.NewRateLimiter(5, 10)
	handlers.RegisterRoutes(r, h, limiter)

	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
