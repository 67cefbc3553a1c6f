package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workdeck/workdeck-api/internal/dto"
	apierrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/middleware"
	"github.com/workdeck/workdeck-api/internal/models"
	"github.com/workdeck/workdeck-api/internal/services"
	"github.com/workdeck/workdeck-api/internal/utils"
)

type ProjectHandler struct {
	projectService  *services.ProjectService
	activityService *services.ActivityService
}

func NewProjectHandler(projectService *services.ProjectService, activityService *services.ActivityService) *ProjectHandler {
	return &ProjectHandler{
		projectService:  projectService,
		activityService: activityService,
	}
}

// parseIDParam parses a numeric URL parameter
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// currentUser pulls the actor loaded by RequireAuth
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	return user, true
}

// CreateProject creates a new project owned by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Name            string     `json:"name" binding:"required"`
		Description     string     `json:"description"`
		DepartmentID    *uint64    `json:"department_id"`
		Deadline        *time.Time `json:"deadline"`
		CollaboratorIDs []uint64   `json:"collaborator_ids"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:            req.Name,
		Description:     req.Description,
		DepartmentID:    req.DepartmentID,
		Deadline:        req.Deadline,
		CollaboratorIDs: req.CollaboratorIDs,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the projects visible to the caller
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	includeArchived := c.Query("include_archived") == "true"

	projects, total, err := h.projectService.ListProjects(services.ListProjectsInput{
		IncludeArchived: includeArchived,
		Page:            params.Page,
		PageSize:        params.Limit,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params.Page, params.Limit, total))
}

// GetProject returns a single project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject updates project fields
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name          *string    `json:"name"`
		Description   *string    `json:"description"`
		DepartmentID  *uint64    `json:"department_id"`
		Deadline      *time.Time `json:"deadline"`
		ClearDeadline bool       `json:"clear_deadline"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.UpdateProject(projectID, services.UpdateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		DepartmentID:  req.DepartmentID,
		Deadline:      req.Deadline,
		ClearDeadline: req.ClearDeadline,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// ArchiveProject archives a project
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveProject unarchives a project
func (h *ProjectHandler) UnarchiveProject(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ProjectHandler) setArchived(c *gin.Context, archived bool) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.SetArchived(projectID, archived, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// AddCollaborator adds a user to the project's collaborators
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CollaboratorRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req CollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if err := h.projectService.AddCollaborator(projectID, req.UserID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator added"})
}

// RemoveCollaborator removes a user from the project's collaborators
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveCollaborator(projectID, userID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed"})
}

// GetProjectActivity returns the audit trail of a project
func (h *ProjectHandler) GetProjectActivity(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Access check piggybacks on GetProject.
	if _, err := h.projectService.GetProject(projectID, actor); err != nil {
		apierrors.Respond(c, err)
		return
	}

	entries, err := h.activityService.History(models.ResourceProject, projectID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": dto.ToActivityLogDTOs(entries)})
}
