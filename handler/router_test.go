package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Nabz863/group17-freelance-sd-sub000/config"
	"github.com/Nabz863/group17-freelance-sd-sub000/middleware"
	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStorage keeps uploaded objects in memory.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = data
	return nil
}

func (f *fakeStorage) GetPresignedURL(_ context.Context, objectName string) (string, error) {
	return "https://storage.test/" + objectName + "?signed=1", nil
}

func (f *fakeStorage) GetPublicURL(objectName string) string {
	return "https://storage.test/" + objectName
}

func (f *fakeStorage) has(objectName string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[objectName]
	return ok
}

type testEnv struct {
	cfg       *config.Config
	router    *gin.Engine
	users     *service.UserService
	projects  *service.ProjectService
	contracts *service.ContractService
	storage   *fakeStorage
	hub       *service.Hub
}

// setupTestEnv wires real services over an in-memory database behind the
// same route table the server uses.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret-key", TokenExpireHours: 1},
	}
	config.GlobalConfig = cfg

	db, err := service.OpenDatabase(&config.DatabaseConfig{DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	templates, err := service.NewTemplateStore("")
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}

	storage := newFakeStorage()
	hub := service.NewHub()
	mailer := service.NewMailer(&cfg.SMTP, db)
	notifier := service.MultiNotifier{hub, mailer}

	users := service.NewUserService(db)
	projects := service.NewProjectService(db)
	contracts := service.NewContractService(db, service.NewPDFRenderer(), storage, notifier)
	milestones := service.NewMilestoneService(db, storage)
	messages := service.NewMessageService(db, projects, notifier)

	authHandler := NewAuthHandler(cfg, users)
	adminHandler := NewAdminHandler(users, mailer)
	contractHandler := NewContractHandler(contracts, templates)
	projectHandler := NewProjectHandler(projects)
	milestoneHandler := NewMilestoneHandler(milestones, contracts)
	chatHandler := NewChatHandler(messages)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	protected.GET("/auth/me", authHandler.GetCurrentUser)
	protected.GET("/contracts/template",
		middleware.RequireRole(model.RoleClient), contractHandler.GetTemplate)
	protected.POST("/contracts",
		middleware.RequireRole(model.RoleClient),
		middleware.ValidateContractTerms(templates),
		contractHandler.Create)
	protected.GET("/contracts", contractHandler.List)
	protected.GET("/contracts/:id", contractHandler.Get)
	protected.PATCH("/contracts/:id/status", contractHandler.UpdateStatus)
	protected.GET("/contracts/:id/document", contractHandler.GetDocument)
	protected.GET("/contracts/:id/pdf", contractHandler.GetPDF)
	protected.POST("/projects",
		middleware.RequireRole(model.RoleClient), projectHandler.Create)
	protected.GET("/projects", projectHandler.List)
	protected.GET("/projects/:id", projectHandler.Get)
	protected.POST("/projects/:id/applications",
		middleware.RequireRole(model.RoleFreelancer), projectHandler.Apply)
	protected.GET("/projects/:id/applications", projectHandler.ListApplications)
	protected.PATCH("/applications/:id", projectHandler.DecideApplication)
	protected.POST("/contracts/:id/milestones", milestoneHandler.Create)
	protected.GET("/contracts/:id/milestones", milestoneHandler.List)
	protected.PATCH("/milestones/:id", milestoneHandler.UpdateStatus)
	protected.POST("/milestones/:id/deliverable", milestoneHandler.UploadDeliverable)
	protected.GET("/projects/:id/messages", chatHandler.List)
	protected.POST("/projects/:id/messages", chatHandler.Send)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/approval", adminHandler.SetApproval)

	return &testEnv{
		cfg:       cfg,
		router:    router,
		users:     users,
		projects:  projects,
		contracts: contracts,
		storage:   storage,
		hub:       hub,
	}
}

// signup creates an account directly through the service layer.
func (e *testEnv) signup(t *testing.T, email, name, role string) *model.User {
	t.Helper()
	user, err := e.users.Signup(service.SignupInput{
		Email:    email,
		Password: "password123",
		Name:     name,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Failed to sign up %s: %v", email, err)
	}
	return user
}

// approvedFreelancer creates a freelancer and approves it.
func (e *testEnv) approvedFreelancer(t *testing.T, email, name string) *model.User {
	t.Helper()
	user := e.signup(t, email, name, model.RoleFreelancer)
	if _, err := e.users.SetApproval(user.ID, true); err != nil {
		t.Fatalf("Failed to approve %s: %v", email, err)
	}
	return user
}

func (e *testEnv) token(t *testing.T, user *model.User) string {
	t.Helper()
	token, _, err := middleware.GenerateToken(user.ID, user.Role, user.Name, &e.cfg.Auth)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// do performs a request against the test router. A nil body sends no payload.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}
