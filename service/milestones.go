package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMilestoneInput is the body of POST /api/contracts/:id/milestones.
type CreateMilestoneInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// MilestoneService tracks deliverables of accepted contracts.
type MilestoneService struct {
	db      *gorm.DB
	storage ObjectStorage
}

func NewMilestoneService(db *gorm.DB, storage ObjectStorage) *MilestoneService {
	return &MilestoneService{db: db, storage: storage}
}

func (s *MilestoneService) Create(contractID string, in CreateMilestoneInput) (*model.Milestone, error) {
	m := &model.Milestone{
		ID:          uuid.New().String(),
		ContractID:  contractID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      model.MilestonePending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.db.Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}
	return m, nil
}

func (s *MilestoneService) GetByID(id string) (*model.Milestone, error) {
	var m model.Milestone
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load milestone: %w", err)
	}
	return &m, nil
}

func (s *MilestoneService) ListByContract(contractID string) ([]model.Milestone, error) {
	var milestones []model.Milestone
	if err := s.db.Where("contract_id = ?", contractID).Order("created_at ASC").Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

// SubmitDeliverable uploads the freelancer's file and marks the milestone
// submitted. The stored URL is presigned so the blob stays private.
func (s *MilestoneService) SubmitDeliverable(ctx context.Context, m *model.Milestone, reader io.Reader, size int64, filename, contentType string) (*model.Milestone, error) {
	objectName := fmt.Sprintf("deliverables/%s/%s/%s", m.ContractID, m.ID, filename)
	if err := s.storage.UploadFile(ctx, objectName, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload deliverable: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, objectName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate deliverable URL: %w", err)
	}

	m.DeliverableURL = url
	m.Status = model.MilestoneSubmitted
	m.UpdatedAt = time.Now()
	if err := s.db.Model(m).Updates(map[string]any{
		"deliverable_url": url,
		"status":          m.Status,
		"updated_at":      m.UpdatedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return m, nil
}

// SetStatus overwrites the milestone status; legality is checked by the
// handler against the caller's role.
func (s *MilestoneService) SetStatus(m *model.Milestone, status string) (*model.Milestone, error) {
	m.Status = status
	m.UpdatedAt = time.Now()
	if err := s.db.Model(m).Updates(map[string]any{
		"status":     status,
		"updated_at": m.UpdatedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return m, nil
}
