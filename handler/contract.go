package handler

import (
	"net/http"

	"github.com/Nabz863/group17-freelance-sd-sub000/middleware"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	contracts *service.ContractService
	templates *service.TemplateStore
}

func NewContractHandler(contracts *service.ContractService, templates *service.TemplateStore) *ContractHandler {
	return &ContractHandler{contracts: contracts, templates: templates}
}

// GetTemplate returns the default contract template.
func (h *ContractHandler) GetTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.templates.Default())
}

// Create persists a new contract. The body has already been bound,
// default-filled and term-validated by middleware.ValidateContractTerms.
func (h *ContractHandler) Create(c *gin.Context) {
	v, exists := c.Get(middleware.ContractInputKey)
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	input := v.(service.CreateContractInput)

	contract, err := h.contracts.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// List returns the contracts visible to the caller's role.
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.contracts.ListForUser(middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// Get returns a single contract; 403 unless the caller is a party or an
// admin.
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contracts.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.CanView(middleware.GetUserID(c), middleware.GetRole(c), contract) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this contract"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus transitions the contract through the status machine.
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	contract, err := h.contracts.Transition(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetRole(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// GetDocument recomputes and returns the formal-document view.
func (h *ContractHandler) GetDocument(c *gin.Context) {
	contract, err := h.contracts.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.CanView(middleware.GetUserID(c), middleware.GetRole(c), contract) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this contract"})
		return
	}

	doc, err := h.contracts.Document(contract)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetPDF redirects to the stored PDF; 404 when no document was generated.
func (h *ContractHandler) GetPDF(c *gin.Context) {
	contract, err := h.contracts.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.CanView(middleware.GetUserID(c), middleware.GetRole(c), contract) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this contract"})
		return
	}
	if contract.PDFURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No PDF has been generated for this contract"})
		return
	}
	c.Redirect(http.StatusFound, contract.PDFURL)
}
