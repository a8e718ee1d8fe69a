package handlers

import (
	"net/http"
	"strconv"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/middleware"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships and blocks
type FriendshipHandler struct {
	friendshipService *services.FriendshipService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipService *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/users/friend-requests", h.SendFriendRequest)
	g.GET("/users/friend-requests", h.GetFriendRequests)
	g.PATCH("/users/friend-requests", h.RespondFriendRequest)
	g.GET("/users/friends", h.GetFriends)
	g.DELETE("/users/friends/:id", h.Unfriend)
	g.GET("/users/:id/mutual-friends", h.GetMutualFriends)
	g.POST("/users/:id/block", h.BlockUser)
	g.DELETE("/users/:id/block", h.UnblockUser)
	g.GET("/users/blocked", h.GetBlockedUsers)
	g.POST("/users/:id/not-interested", h.MarkNotInterested)
	g.GET("/users/not-interested", h.GetNotInterested)
}

func pathUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewBadRequest("Invalid user ID")
	}
	return uint(id), nil
}

// SendFriendRequest sends a friend request to another user
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	var req models.SendFriendRequestBody
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.friendshipService.SendRequest(caller, req.ReceiverID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// GetFriendRequests lists the caller's pending incoming requests
func (h *FriendshipHandler) GetFriendRequests(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	requests, err := h.friendshipService.ListRequests(caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"friend_requests": requests, "count": len(requests)})
}

// RespondFriendRequest accepts or rejects a pending request
func (h *FriendshipHandler) RespondFriendRequest(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	var req models.RespondFriendRequestBody
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.friendshipService.Respond(caller, req.SenderID, req.Action); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFriends lists the caller's friends with an optional name filter
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	friends, err := h.friendshipService.ListFriends(caller, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"friends": friends, "count": len(friends)})
}

// Unfriend removes a friendship
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	friendID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.Unfriend(caller, friendID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetMutualFriends lists friends the caller shares with another user
func (h *FriendshipHandler) GetMutualFriends(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	otherID, err := pathUserID(c)
	if err != nil {
		return err
	}

	mutual, err := h.friendshipService.MutualFriends(caller, otherID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mutual_friends": mutual, "count": len(mutual)})
}

// BlockUser blocks another user, dissolving any friendship
func (h *FriendshipHandler) BlockUser(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	targetID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.Block(caller, targetID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UnblockUser removes a block
func (h *FriendshipHandler) UnblockUser(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	targetID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.Unblock(caller, targetID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetBlockedUsers lists the users the caller has blocked
func (h *FriendshipHandler) GetBlockedUsers(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	blocked, err := h.friendshipService.ListBlocked(caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"blocked_users": blocked, "count": len(blocked)})
}

// GetNotInterested lists the users the caller marked not interested
func (h *FriendshipHandler) GetNotInterested(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	users, err := h.friendshipService.ListNotInterested(caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"not_interested": users, "count": len(users)})
}

// MarkNotInterested hides a user from the caller's listings
func (h *FriendshipHandler) MarkNotInterested(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	targetID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.MarkNotInterested(caller, targetID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
