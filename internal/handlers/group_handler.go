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

// GroupHandler handles HTTP requests related to groups
type GroupHandler struct {
	groupService *services.GroupService
	uploader     storage.Uploader
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService *services.GroupService, uploader storage.Uploader) *GroupHandler {
	return &GroupHandler{groupService: groupService, uploader: uploader}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
	g.GET("/groups", h.GetGroups)
	g.GET("/groups/joined", h.GetJoinedGroups)
	g.GET("/groups/own", h.GetOwnGroups)
	g.GET("/groups/:id", h.GetGroup)
	g.PATCH("/groups/:id", h.UpdateGroup)
	g.DELETE("/groups/:id", h.DeleteGroup)
	g.POST("/groups/:id/join", h.RequestJoin)
	g.POST("/groups/:id/members", h.AcceptMember)
	g.DELETE("/groups/:id/members/:user_id", h.RemoveMember)
	g.DELETE("/groups/:id/requests/:user_id", h.RejectRequest)
}

func pathGroupID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewBadRequest("Invalid group ID")
	}
	return uint(id), nil
}

func pathMemberID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewBadRequest("Invalid user ID")
	}
	return uint(id), nil
}

// CreateGroup creates a group with the caller as admin
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profileURL, err := uploadImageField(c, h.uploader, "profile", caller.ID)
	if err != nil {
		return err
	}

	group, err := h.groupService.Create(caller, req, profileURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, group)
}

// GetGroups lists groups with an optional name filter
func (h *GroupHandler) GetGroups(c echo.Context) error {
	groups, err := h.groupService.List(c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": groups, "count": len(groups)})
}

// GetGroup retrieves a group with its members and pending requesters
func (h *GroupHandler) GetGroup(c echo.Context) error {
	id, err := pathGroupID(c)
	if err != nil {
		return err
	}

	detail, err := h.groupService.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateGroup updates a group's name, description or profile image
func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	id, err := pathGroupID(c)
	if err != nil {
		return err
	}

	var req models.UpdateGroupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profileURL, err := uploadImageField(c, h.uploader, "profile", caller.ID)
	if err != nil {
		return err
	}

	group, err := h.groupService.Update(caller, id, req, profileURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a group and its posts
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	id, err := pathGroupID(c)
	if err != nil {
		return err
	}

	if err := h.groupService.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestJoin records the caller's request to join a group
func (h *GroupHandler) RequestJoin(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	id, err := pathGroupID(c)
	if err != nil {
		return err
	}

	if err := h.groupService.RequestJoin(caller, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// AcceptMember moves a requester into the member list
func (h *GroupHandler) AcceptMember(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	id, err := pathGroupID(c)
	if err != nil {
		return err
	}

	var req models.GroupMemberBody
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.groupService.AcceptMember(caller, id, req.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveMember removes a member from a group
func (h *GroupHandler) RemoveMember(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	id, err := pathGroupID(c)
	if err != nil {
		return err
	}
	memberID, err := pathMemberID(c)
	if err != nil {
		return err
	}

	if err := h.groupService.RemoveMember(caller, id, memberID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectRequest drops a pending join request
func (h *GroupHandler) RejectRequest(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	id, err := pathGroupID(c)
	if err != nil {
		return err
	}
	requesterID, err := pathMemberID(c)
	if err != nil {
		return err
	}

	if err := h.groupService.RejectRequest(caller, id, requesterID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetJoinedGroups lists groups the caller is a member of
func (h *GroupHandler) GetJoinedGroups(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	groups, err := h.groupService.ListJoined(caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": groups, "count": len(groups)})
}

// GetOwnGroups lists groups the caller administers
func (h *GroupHandler) GetOwnGroups(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	groups, err := h.groupService.ListOwn(caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": groups, "count": len(groups)})
}
