// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"global-track-api-server/config"
	"global-track-api-server/internal/api/routes"
	"global-track-api-server/internal/auth"
	"global-track-api-server/internal/database"
	"global-track-api-server/internal/logging"
	"global-track-api-server/internal/pdf"
	"global-track-api-server/internal/s3"
	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/socket"
	"global-track-api-server/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be configured")
	}
	auth.JwtSecret = []byte(cfg.JWT.Secret)

	jwtExpiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("Invalid jwt.expiration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	st := store.NewMongoStore(client, db)

	if err := database.SeedAdmin(ctx, st, cfg.Admin, logger); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}

	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create S3 uploader", zap.Error(err))
	}

	svc := shipment.NewService(st, logger)
	generator := pdf.NewGenerator(s3Uploader, logger)
	wsHub := socket.NewHub(logger)

	router := routes.SetupRouter(svc, st, generator, s3Uploader, wsHub, logger, jwtExpiration)

	logger.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
