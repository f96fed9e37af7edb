package handler

import (
	"net/http"

	"github.com/Nabz863/group17-freelance-sd-sub000/middleware"
	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create posts a new job. Client role enforced by route middleware.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.Create(middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// List returns projects scoped to the caller's role.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.ListForUser(middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Get returns a single project.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Apply records a freelancer's application to an open project.
func (h *ProjectHandler) Apply(c *gin.Context) {
	var req service.ApplyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	app, err := h.projects.Apply(c.Param("id"), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListApplications returns a project's applications to its owner or an
// admin.
func (h *ProjectHandler) ListApplications(c *gin.Context) {
	apps, err := h.projects.ListApplications(c.Param("id"), middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

type DecisionRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// DecideApplication lets the owning client accept or reject an application.
func (h *ProjectHandler) DecideApplication(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be accepted or rejected"})
		return
	}

	app, err := h.projects.DecideApplication(c.Param("id"),
		middleware.GetUserID(c), middleware.GetRole(c), req.Status == model.ApplicationAccepted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
