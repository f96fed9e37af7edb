package handler

import (
	"net/http"

	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler covers moderation: user approval and the admin views.
type AdminHandler struct {
	users  *service.UserService
	mailer *service.Mailer
}

func NewAdminHandler(users *service.UserService, mailer *service.Mailer) *AdminHandler {
	return &AdminHandler{users: users, mailer: mailer}
}

// ListUsers returns accounts, optionally filtered by approval status
// (?status=pending).
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListByApproval(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SetApproval records the approval decision and mails the user about the
// outcome best-effort.
func (h *AdminHandler) SetApproval(c *gin.Context) {
	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.SetApproval(c.Param("id"), *req.Approved)
	if err != nil {
		respondError(c, err)
		return
	}

	h.mailer.SendApprovalDecision(user, *req.Approved)

	c.JSON(http.StatusOK, user)
}
