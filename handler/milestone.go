package handler

import (
	"net/http"

	"github.com/Nabz863/group17-freelance-sd-sub000/middleware"
	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	milestones *service.MilestoneService
	contracts  *service.ContractService
}

func NewMilestoneHandler(milestones *service.MilestoneService, contracts *service.ContractService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones, contracts: contracts}
}

// contractForCaller loads the milestone's contract and checks party access.
func (h *MilestoneHandler) contractForCaller(c *gin.Context, contractID string) *model.Contract {
	contract, err := h.contracts.GetByID(contractID)
	if err != nil {
		respondError(c, err)
		return nil
	}
	if !service.CanView(middleware.GetUserID(c), middleware.GetRole(c), contract) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this contract"})
		return nil
	}
	return contract
}

// Create adds a milestone to an accepted contract. Client side of the
// contract only.
func (h *MilestoneHandler) Create(c *gin.Context) {
	contract := h.contractForCaller(c, c.Param("id"))
	if contract == nil {
		return
	}
	role := middleware.GetRole(c)
	if role != model.RoleAdmin && middleware.GetUserID(c) != contract.ClientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the client may define milestones"})
		return
	}
	if contract.Status != model.ContractAccepted {
		c.JSON(http.StatusConflict, gin.H{"error": "Milestones require an accepted contract"})
		return
	}

	var req service.CreateMilestoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	m, err := h.milestones.Create(contract.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// List returns a contract's milestones to its parties.
func (h *MilestoneHandler) List(c *gin.Context) {
	contract := h.contractForCaller(c, c.Param("id"))
	if contract == nil {
		return
	}

	milestones, err := h.milestones.ListByContract(contract.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// UploadDeliverable receives the freelancer's file for a milestone and
// marks it submitted.
func (h *MilestoneHandler) UploadDeliverable(c *gin.Context) {
	m, err := h.milestones.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	contract := h.contractForCaller(c, m.ContractID)
	if contract == nil {
		return
	}
	if middleware.GetUserID(c) != contract.FreelancerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the freelancer may submit a deliverable"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	m, err = h.milestones.SubmitDeliverable(c.Request.Context(), m, file, header.Size, header.Filename, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type MilestoneStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted approved"`
}

// UpdateStatus moves a milestone forward: the freelancer submits, the
// client approves.
func (h *MilestoneHandler) UpdateStatus(c *gin.Context) {
	m, err := h.milestones.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	contract := h.contractForCaller(c, m.ContractID)
	if contract == nil {
		return
	}

	var req MilestoneStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be submitted or approved"})
		return
	}

	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)
	switch req.Status {
	case model.MilestoneSubmitted:
		if userID != contract.FreelancerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the freelancer may submit a milestone"})
			return
		}
	case model.MilestoneApproved:
		if role != model.RoleAdmin && userID != contract.ClientID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the client may approve a milestone"})
			return
		}
	}

	m, err = h.milestones.SetStatus(m, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
