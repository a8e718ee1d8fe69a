package router

import (
	"fmt"
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/handlers"
	"github.com/hlaing-dev/socialbook/backend/internal/middleware"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"github.com/hlaing-dev/socialbook/backend/internal/services"
	"github.com/hlaing-dev/socialbook/backend/pkg/config"
	"github.com/hlaing-dev/socialbook/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = errorHandler
	log.Println("Global middleware configured.")
}

// errorHandler is the single place errors become responses. Domain, echo
// and unknown errors all map to the {code, message} shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := &apperrors.Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
	if appErr, ok := apperrors.As(err); ok {
		resp = appErr
	} else if httpErr, ok := err.(*echo.HTTPError); ok {
		resp = &apperrors.Error{Code: httpErr.Code, Message: fmt.Sprintf("%v", httpErr.Message)}
	} else {
		log.Printf("unhandled error: %v", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resp.Code)
	} else {
		err = c.JSON(resp.Code, resp)
	}
	if err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, uploader storage.Uploader) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Block{},
		&models.NotInterested{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupJoinRequest{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(notificationRepo)
	userService := services.NewUserService(userRepo, friendshipRepo, groupRepo, postRepo, notificationRepo)
	friendshipService := services.NewFriendshipService(friendshipRepo, userRepo, notificationService)
	groupService := services.NewGroupService(groupRepo, userRepo, postRepo, notificationService)
	postService := services.NewPostService(postRepo, userRepo, groupRepo, notificationService)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(userRepo, cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userService, uploader)
	userHandler.RegisterUserRoutes(api)

	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	friendshipHandler.RegisterFriendshipRoutes(api)

	groupHandler := handlers.NewGroupHandler(groupService, uploader)
	groupHandler.RegisterGroupRoutes(api)

	postHandler := handlers.NewPostHandler(postService, uploader)
	postHandler.RegisterPostRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
