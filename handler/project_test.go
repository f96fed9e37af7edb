package handler

import (
	"net/http"
	"testing"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/gin-gonic/gin"
)

func TestCreateProject(t *testing.T) {
	env := setupTestEnv(t)
	client := env.signup(t, "client@example.com", "Acme", model.RoleClient)

	w := env.do(t, "POST", "/api/projects", env.token(t, client), gin.H{
		"title":       "Website Build",
		"description": "Marketing site",
		"budget":      5000,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var project model.Project
	decodeBody(t, w, &project)
	if project.ClientID != client.ID {
		t.Errorf("Expected client id %s, got %s", client.ID, project.ClientID)
	}
	if project.Status != model.ProjectOpen {
		t.Errorf("Expected status open, got %s", project.Status)
	}
}

func TestCreateProjectRequiresClientRole(t *testing.T) {
	env := setupTestEnv(t)
	freelancer := env.approvedFreelancer(t, "free@example.com", "Jordan")

	w := env.do(t, "POST", "/api/projects", env.token(t, freelancer), gin.H{
		"title":       "Website Build",
		"description": "Marketing site",
		"budget":      5000,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestApplyToProject(t *testing.T) {
	env := setupTestEnv(t)
	client, freelancer, project := contractScenario(t, env)

	w := env.do(t, "POST", "/api/projects/"+project.ID+"/applications",
		env.token(t, freelancer), gin.H{
			"coverLetter":  "I can do this.",
			"proposedRate": 80,
		})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	// Applying twice conflicts
	w = env.do(t, "POST", "/api/projects/"+project.ID+"/applications",
		env.token(t, freelancer), gin.H{
			"coverLetter":  "Again.",
			"proposedRate": 85,
		})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate application, got %d", w.Code)
	}

	// The owning client sees the application
	w = env.do(t, "GET", "/api/projects/"+project.ID+"/applications",
		env.token(t, client), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp struct {
		Applications []model.Application `json:"applications"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Applications) != 1 {
		t.Errorf("Expected 1 application, got %d", len(resp.Applications))
	}
}

func TestListApplicationsForbiddenForStranger(t *testing.T) {
	env := setupTestEnv(t)
	_, freelancer, project := contractScenario(t, env)

	w := env.do(t, "GET", "/api/projects/"+project.ID+"/applications",
		env.token(t, freelancer), nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestDecideApplication(t *testing.T) {
	env := setupTestEnv(t)
	client, freelancer, project := contractScenario(t, env)

	w := env.do(t, "POST", "/api/projects/"+project.ID+"/applications",
		env.token(t, freelancer), gin.H{
			"coverLetter":  "I can do this.",
			"proposedRate": 80,
		})
	var app model.Application
	decodeBody(t, w, &app)

	w = env.do(t, "PATCH", "/api/applications/"+app.ID,
		env.token(t, client), gin.H{"status": "accepted"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var decided model.Application
	decodeBody(t, w, &decided)
	if decided.Status != model.ApplicationAccepted {
		t.Errorf("Expected status accepted, got %s", decided.Status)
	}

	// Only accepted/rejected are valid decisions
	w = env.do(t, "PATCH", "/api/applications/"+app.ID,
		env.token(t, client), gin.H{"status": "maybe"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad decision, got %d", w.Code)
	}
}

func TestListProjectsScopedByRole(t *testing.T) {
	env := setupTestEnv(t)
	client, freelancer, _ := contractScenario(t, env)
	other := env.signup(t, "other@example.com", "Other Co", model.RoleClient)

	tests := []struct {
		name  string
		user  *model.User
		count int
	}{
		{"owner sees own", client, 1},
		{"freelancer sees open", freelancer, 1},
		{"other client sees none", other, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "GET", "/api/projects", env.token(t, tt.user), nil)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			var resp struct {
				Projects []model.Project `json:"projects"`
			}
			decodeBody(t, w, &resp)
			if len(resp.Projects) != tt.count {
				t.Errorf("Expected %d projects, got %d", tt.count, len(resp.Projects))
			}
		})
	}
}
