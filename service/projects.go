package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProjectInput is the body of POST /api/projects.
type CreateProjectInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Budget      float64 `json:"budget" binding:"required,gt=0"`
}

// ApplyInput is the body of POST /api/projects/:id/applications.
type ApplyInput struct {
	CoverLetter  string  `json:"coverLetter" binding:"required"`
	ProposedRate float64 `json:"proposedRate" binding:"required,gt=0"`
}

// ProjectService owns job postings and applications.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(clientID string, in CreateProjectInput) (*model.Project, error) {
	project := &model.Project{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Title:       in.Title,
		Description: in.Description,
		Budget:      in.Budget,
		Status:      model.ProjectOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) GetByID(id string) (*model.Project, error) {
	var project model.Project
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &project, nil
}

// ListForUser scopes the listing by role: clients see their own postings,
// freelancers see open projects, admins see everything.
func (s *ProjectService) ListForUser(userID, role string) ([]model.Project, error) {
	q := s.db.Order("created_at DESC")
	switch role {
	case model.RoleAdmin:
	case model.RoleClient:
		q = q.Where("client_id = ?", userID)
	case model.RoleFreelancer:
		q = q.Where("status = ?", model.ProjectOpen)
	default:
		return nil, ErrForbidden
	}

	var projects []model.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Apply records a freelancer's application. One application per freelancer
// per project; the project must still be open.
func (s *ProjectService) Apply(projectID, freelancerID string, in ApplyInput) (*model.Application, error) {
	project, err := s.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != model.ProjectOpen {
		return nil, ErrProjectNotOpen
	}

	var count int64
	if err := s.db.Model(&model.Application{}).
		Where("project_id = ? AND freelancer_id = ?", projectID, freelancerID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check applications: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateApplication
	}

	app := &model.Application{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		CoverLetter:  in.CoverLetter,
		ProposedRate: in.ProposedRate,
		Status:       model.ApplicationPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.db.Create(app).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// ListApplications returns a project's applications for its owning client
// or an admin.
func (s *ProjectService) ListApplications(projectID, userID, role string) ([]model.Application, error) {
	project, err := s.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && project.ClientID != userID {
		return nil, ErrForbidden
	}

	var apps []model.Application
	if err := s.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// DecideApplication records the owning client's accept/reject decision.
func (s *ProjectService) DecideApplication(appID, userID, role string, accept bool) (*model.Application, error) {
	var app model.Application
	if err := s.db.First(&app, "id = ?", appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	project, err := s.GetByID(app.ProjectID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && project.ClientID != userID {
		return nil, ErrForbidden
	}

	app.Status = model.ApplicationRejected
	if accept {
		app.Status = model.ApplicationAccepted
	}
	app.UpdatedAt = time.Now()
	if err := s.db.Model(&app).Updates(map[string]any{
		"status":     app.Status,
		"updated_at": app.UpdatedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return &app, nil
}

// HasApplied reports whether the freelancer has an application on the
// project. Used by the chat authorization predicate.
func (s *ProjectService) HasApplied(projectID, freelancerID string) (bool, error) {
	var count int64
	if err := s.db.Model(&model.Application{}).
		Where("project_id = ? AND freelancer_id = ?", projectID, freelancerID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check applications: %w", err)
	}
	return count > 0, nil
}
