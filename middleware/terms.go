package middleware

import (
	"net/http"

	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

// ContractInputKey is the gin context key the validated create-contract
// request is stored under for the handler.
const ContractInputKey = "contract_input"

// ValidateContractTerms binds the create-contract body and runs the term
// validator against the active template before the handler is reached.
// Every validation problem is collected and returned in one 400 response.
func ValidateContractTerms(templates *service.TemplateStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input service.CreateContractInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		tmpl := templates.Default()
		input.Sections = service.FillDefaults(input.Sections, tmpl)

		if valid, errs := service.Validate(input.Sections, tmpl); !valid {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		c.Set(ContractInputKey, input)
		c.Next()
	}
}
