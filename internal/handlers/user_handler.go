package handlers

import (
	"net/http"
	"strconv"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/middleware"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/services"
	"github.com/hlaing-dev/socialbook/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userService *services.UserService
	uploader    storage.Uploader
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, uploader storage.Uploader) *UserHandler {
	return &UserHandler{userService: userService, uploader: uploader}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.SearchUsers)
	g.GET("/users/profile", h.GetProfile)
	g.PATCH("/users/profile", h.UpdateProfile)
	g.DELETE("/users/profile", h.DeleteAccount)
	g.GET("/users/:id", h.GetUser)
}

// SearchUsers lists users with an optional name filter
func (h *UserHandler) SearchUsers(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	users, err := h.userService.SearchUsers(caller, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "count": len(users)})
}

// GetProfile returns the authenticated user's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// GetUser returns another user's profile by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperrors.NewBadRequest("Invalid user ID")
	}

	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates profile fields and optional avatar/cover images
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	avatarURL, err := uploadImageField(c, h.uploader, "avatar", caller.ID)
	if err != nil {
		return err
	}
	coverURL, err := uploadImageField(c, h.uploader, "cover", caller.ID)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(caller, req, avatarURL, coverURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteAccount deletes the caller's account and cascades owned content
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	if err := h.userService.DeleteAccount(c.Request().Context(), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
