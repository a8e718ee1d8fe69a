package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/hlaing-dev/socialbook/backend/internal/router"
	"github.com/hlaing-dev/socialbook/backend/pkg/config"
	"github.com/hlaing-dev/socialbook/backend/pkg/firebase"
	"github.com/hlaing-dev/socialbook/backend/pkg/storage"
	"github.com/hlaing-dev/socialbook/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	config.LoadEnv()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase. Social login is disabled when credentials are absent.
	ctx := context.Background()
	var firebaseAuthClient *auth.Client
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Printf("Firebase disabled: %v", err)
	} else {
		firebaseAuthClient = firebaseApp.AuthClient
	}

	// Initialize object storage for image uploads
	uploader, err := storage.NewMinioUploader(storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuthClient, uploader)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
