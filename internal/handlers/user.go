package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workdeck/workdeck-api/internal/dto"
	apierrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AssignRole changes a user's role (HR only)
func (h *UserHandler) AssignRole(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AssignRoleRequest struct {
		Role models.Role `json:"role" binding:"required"`
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.AssignRole(userID, req.Role, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
