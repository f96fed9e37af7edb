package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

func termsRouter(t *testing.T) (*gin.Engine, *service.CreateContractInput) {
	t.Helper()

	templates, err := service.NewTemplateStore("")
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}

	captured := &service.CreateContractInput{}

	router := gin.New()
	router.POST("/contracts", ValidateContractTerms(templates), func(c *gin.Context) {
		v, _ := c.Get(ContractInputKey)
		*captured = v.(service.CreateContractInput)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	return router, captured
}

func postContract(router *gin.Engine, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)

	req := httptest.NewRequest("POST", "/contracts", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidateContractTermsPasses(t *testing.T) {
	router, captured := termsRouter(t)

	w := postContract(router, gin.H{
		"projectId":    "proj-1",
		"title":        "Website Build",
		"freelancerId": "free-1",
		"contractSections": []gin.H{
			{
				"title": "Scope of Work",
				"parameters": gin.H{
					"projectDescription": "Build the site",
					"hoursPerWeek":       30,
				},
			},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if captured.ProjectID != "proj-1" {
		t.Errorf("Expected captured input, got %+v", captured)
	}
}

func TestValidateContractTermsFillsDefaults(t *testing.T) {
	router, captured := termsRouter(t)

	w := postContract(router, gin.H{
		"projectId":    "proj-1",
		"title":        "Website Build",
		"freelancerId": "free-1",
		"contractSections": []gin.H{
			{"title": "Scope of Work", "parameters": gin.H{}},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var scope *model.SubmittedSection
	for i := range captured.Sections {
		if captured.Sections[i].Title == "Scope of Work" {
			scope = &captured.Sections[i]
		}
	}
	if scope == nil {
		t.Fatal("Scope of Work section missing from captured input")
	}
	if scope.Parameters["revisionRounds"] != "2" {
		t.Errorf("Expected default revisionRounds '2', got %v", scope.Parameters["revisionRounds"])
	}
}

func TestValidateContractTermsCollectsErrors(t *testing.T) {
	router, _ := termsRouter(t)

	w := postContract(router, gin.H{
		"projectId":    "proj-1",
		"title":        "Website Build",
		"freelancerId": "free-1",
		"contractSections": []gin.H{
			{
				"title": "Scope of Work",
				"parameters": gin.H{
					"hoursPerWeek":   "not a number",
					"revisionRounds": "7",
				},
			},
			{"title": "No Such Section", "parameters": gin.H{}},
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp struct {
		Errors []model.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Errors) != 3 {
		t.Errorf("Expected 3 validation errors, got %d: %+v", len(resp.Errors), resp.Errors)
	}
}

func TestValidateContractTermsBadBody(t *testing.T) {
	router, _ := termsRouter(t)

	// Missing required top level fields
	w := postContract(router, gin.H{"title": "Website Build"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	req := httptest.NewRequest("POST", "/contracts", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for malformed body, got %d", w.Code)
	}
}
