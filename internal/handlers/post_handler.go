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

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
	uploader    storage.Uploader
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, uploader storage.Uploader) *PostHandler {
	return &PostHandler{postService: postService, uploader: uploader}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetAllPosts)
	g.GET("/posts/tagged", h.GetTaggedPosts)
	g.GET("/posts/shared", h.GetSharedPosts)
	g.GET("/posts/user/:id", h.GetPostsByUser)
	g.GET("/posts/:id", h.GetPost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.POST("/posts/:id/comments", h.CommentPost)
	g.POST("/posts/:id/share", h.SharePost)
}

func pagination(c echo.Context) (skip, limit int64) {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}

// CreatePost creates a post with an optional image, group and tag list
func (h *PostHandler) CreatePost(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	imageURL, err := uploadImageField(c, h.uploader, "image", caller.ID)
	if err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), caller, req, imageURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetAllPosts returns the global feed, newest first
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	skip, limit := pagination(c)

	posts, err := h.postService.ListAll(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "count": len(posts)})
}

// GetPostsByUser lists posts owned by a user
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	posts, err := h.postService.ListByOwner(c.Request().Context(), userID, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "count": len(posts)})
}

// GetTaggedPosts lists posts the caller is tagged in
func (h *PostHandler) GetTaggedPosts(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	posts, err := h.postService.ListTagged(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "count": len(posts)})
}

// GetSharedPosts lists posts the caller has shared
func (h *PostHandler) GetSharedPosts(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	posts, err := h.postService.ListShared(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "count": len(posts)})
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost updates a post's body
func (h *PostHandler) UpdatePost(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postService.UpdateBody(c.Request().Context(), caller, c.Param("id"), req.Body); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	if err := h.postService.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// LikePost likes a post, idempotently
func (h *PostHandler) LikePost(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	if err := h.postService.Like(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UnlikePost removes the caller's like, idempotently
func (h *PostHandler) UnlikePost(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	if err := h.postService.Unlike(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CommentPost appends a comment to a post
func (h *PostHandler) CommentPost(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	var req models.CommentPostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postService.Comment(c.Request().Context(), caller, c.Param("id"), req.Text); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// SharePost shares a post as a new shared post
func (h *PostHandler) SharePost(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	shared, err := h.postService.Share(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, shared)
}
