package handler

import (
	"net/http"
	"testing"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/gin-gonic/gin"
)

func TestSendMessage(t *testing.T) {
	env := setupTestEnv(t)
	client, freelancer, contract := acceptedContract(t, env)

	w := env.do(t, "POST", "/api/projects/"+contract.ProjectID+"/messages",
		env.token(t, client), gin.H{"body": "How is the draft coming along?"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var msg model.Message
	decodeBody(t, w, &msg)
	if msg.SenderID != client.ID || msg.RecipientID != freelancer.ID {
		t.Errorf("Unexpected message routing: %+v", msg)
	}

	// The freelancer replies and both see the conversation in order
	w = env.do(t, "POST", "/api/projects/"+contract.ProjectID+"/messages",
		env.token(t, freelancer), gin.H{"body": "Nearly done."})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, "GET", "/api/projects/"+contract.ProjectID+"/messages",
		env.token(t, freelancer), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp struct {
		Messages []model.Message `json:"messages"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Body != "How is the draft coming along?" {
		t.Errorf("Expected chronological order, got %+v", resp.Messages)
	}
}

func TestSendMessageForbiddenForStranger(t *testing.T) {
	env := setupTestEnv(t)
	_, _, contract := acceptedContract(t, env)
	stranger := env.approvedFreelancer(t, "stranger@example.com", "Sam")

	w := env.do(t, "POST", "/api/projects/"+contract.ProjectID+"/messages",
		env.token(t, stranger), gin.H{"body": "Hello?"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}

	w = env.do(t, "GET", "/api/projects/"+contract.ProjectID+"/messages",
		env.token(t, stranger), nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 on list, got %d", w.Code)
	}
}

func TestSendMessageNoFreelancerAssigned(t *testing.T) {
	env := setupTestEnv(t)
	client, _, project := contractScenario(t, env)

	w := env.do(t, "POST", "/api/projects/"+project.ID+"/messages",
		env.token(t, client), gin.H{"body": "Anyone there?"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 when no freelancer is assigned, got %d", w.Code)
	}
}

func TestApplicantCanMessageClient(t *testing.T) {
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

	w = env.do(t, "POST", "/api/projects/"+project.ID+"/messages",
		env.token(t, freelancer), gin.H{"body": "Happy to discuss scope."})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var msg model.Message
	decodeBody(t, w, &msg)
	if msg.RecipientID != client.ID {
		t.Errorf("Expected recipient %s, got %s", client.ID, msg.RecipientID)
	}
}
