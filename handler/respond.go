package handler

import (
	"errors"
	"net/http"

	"github.com/Nabz863/group17-freelance-sd-sub000/config"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the HTTP taxonomy: 400 for bad
// transitions, 403 for authorization, 404 for missing records, 409 for
// conflicts, 500 otherwise. Backend error text is passed through only
// outside release mode.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
	case errors.Is(err, service.ErrFreelancerStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Freelancers may only accept or reject a contract"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
	case errors.Is(err, service.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already applied to this project"})
	case errors.Is(err, service.ErrProjectNotOpen):
		c.JSON(http.StatusConflict, gin.H{"error": "Project is not open for applications"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		msg := "Internal server error"
		if cfg := config.GlobalConfig; cfg != nil && !cfg.IsRelease() {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
