package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/Nabz863/group17-freelance-sd-sub000/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateContractInput is the client-submitted body of POST /api/contracts.
// It is bound and term-validated by middleware before the handler runs.
type CreateContractInput struct {
	ProjectID    string                  `json:"projectId" binding:"required"`
	Title        string                  `json:"title" binding:"required"`
	FreelancerID string                  `json:"freelancerId" binding:"required"`
	Sections     model.SubmittedSections `json:"contractSections" binding:"required"`
}

// ContractService owns the persisted contract entity and its lifecycle.
type ContractService struct {
	db       *gorm.DB
	renderer *PDFRenderer
	storage  ObjectStorage
	notifier Notifier
}

func NewContractService(db *gorm.DB, renderer *PDFRenderer, storage ObjectStorage, notifier Notifier) *ContractService {
	return &ContractService{
		db:       db,
		renderer: renderer,
		storage:  storage,
		notifier: notifier,
	}
}

// Create persists a new pending contract, then generates its PDF and stores
// the resulting URL back onto the record. Two-phase: insert, generate,
// update. A render or upload failure is returned to the caller; there is no
// partial-document fallback and no retry.
func (s *ContractService) Create(ctx context.Context, clientID string, in CreateContractInput) (*model.Contract, error) {
	var project model.Project
	if err := s.db.First(&project, "id = ?", in.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", in.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project.ClientID != clientID {
		return nil, ErrForbidden
	}

	var freelancer model.User
	if err := s.db.First(&freelancer, "id = ? AND role = ?", in.FreelancerID, model.RoleFreelancer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("freelancer %s: %w", in.FreelancerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load freelancer: %w", err)
	}

	contract := &model.Contract{
		ID:           uuid.New().String(),
		ProjectID:    project.ID,
		Title:        in.Title,
		ClientID:     clientID,
		FreelancerID: freelancer.ID,
		Sections:     in.Sections,
		Status:       model.ContractPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.db.Create(contract).Error; err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	pdfURL, err := s.generateDocument(ctx, contract)
	if err != nil {
		return nil, err
	}

	contract.PDFURL = pdfURL
	contract.UpdatedAt = time.Now()
	if err := s.db.Model(contract).Updates(map[string]any{
		"pdf_url":    pdfURL,
		"updated_at": contract.UpdatedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to store pdf url: %w", err)
	}

	logger.Info(ctx, "contract created", "contract_id", contract.ID, "project_id", project.ID)
	return contract, nil
}

// generateDocument renders the formal document to PDF and uploads it at a
// deterministic path keyed by contract id.
func (s *ContractService) generateDocument(ctx context.Context, contract *model.Contract) (string, error) {
	doc, err := s.Document(contract)
	if err != nil {
		return "", err
	}

	data, err := s.renderer.Render(doc)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("contracts/%s.pdf", contract.ID)
	if err := s.storage.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		return "", fmt.Errorf("failed to upload pdf: %w", err)
	}

	return s.storage.GetPublicURL(objectName), nil
}

// Document recomputes the formal-document view of a contract.
func (s *ContractService) Document(contract *model.Contract) (*model.FormalDocument, error) {
	var client, freelancer model.User
	if err := s.db.First(&client, "id = ?", contract.ClientID).Error; err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if err := s.db.First(&freelancer, "id = ?", contract.FreelancerID).Error; err != nil {
		return nil, fmt.Errorf("failed to load freelancer: %w", err)
	}
	return FormatDocument(contract, client.Name, freelancer.Name), nil
}

// GetByID returns a contract or ErrNotFound.
func (s *ContractService) GetByID(id string) (*model.Contract, error) {
	var contract model.Contract
	if err := s.db.First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	return &contract, nil
}

// ListForUser returns the contracts visible to the caller: clients and
// freelancers see their own, admins see all.
func (s *ContractService) ListForUser(userID, role string) ([]model.Contract, error) {
	q := s.db.Order("created_at DESC")
	switch role {
	case model.RoleAdmin:
	case model.RoleClient:
		q = q.Where("client_id = ?", userID)
	case model.RoleFreelancer:
		q = q.Where("freelancer_id = ?", userID)
	default:
		return nil, ErrForbidden
	}

	var contracts []model.Contract
	if err := q.Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// CanView reports whether the caller may read the contract: a party or an
// admin.
func CanView(userID, role string, contract *model.Contract) bool {
	if role == model.RoleAdmin {
		return true
	}
	return userID == contract.ClientID || userID == contract.FreelancerID
}

// CanTransition checks the status-machine rules for the caller. Admins have
// unconditional write; the assigned freelancer may only accept or reject;
// the owning client may perform other status edits.
func CanTransition(userID, role string, contract *model.Contract, newStatus string) error {
	switch newStatus {
	case model.ContractPending, model.ContractAccepted, model.ContractRejected:
	default:
		if role == model.RoleFreelancer {
			return ErrFreelancerStatus
		}
		return ErrInvalidStatus
	}

	switch role {
	case model.RoleAdmin:
		return nil
	case model.RoleFreelancer:
		if userID != contract.FreelancerID {
			return ErrForbidden
		}
		if newStatus != model.ContractAccepted && newStatus != model.ContractRejected {
			return ErrFreelancerStatus
		}
		return nil
	case model.RoleClient:
		if userID != contract.ClientID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

// UpdateStatus overwrites the status unconditionally and refreshes the
// timestamp. Transition legality is the caller's responsibility.
func (s *ContractService) UpdateStatus(id, status string) (*model.Contract, error) {
	contract, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	contract.Status = status
	contract.UpdatedAt = time.Now()
	if err := s.db.Model(contract).Updates(map[string]any{
		"status":     status,
		"updated_at": contract.UpdatedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return contract, nil
}

// Transition applies a status change on behalf of the caller, enforcing the
// status-machine rules and triggering side effects. On acceptance the
// owning project is assigned to the contract's freelancer; the counter-party
// is notified best-effort either way.
func (s *ContractService) Transition(ctx context.Context, userID, role, contractID, newStatus string) (*model.Contract, error) {
	contract, err := s.GetByID(contractID)
	if err != nil {
		return nil, err
	}
	if !CanView(userID, role, contract) {
		return nil, ErrForbidden
	}
	if err := CanTransition(userID, role, contract, newStatus); err != nil {
		return nil, err
	}

	contract, err = s.UpdateStatus(contractID, newStatus)
	if err != nil {
		return nil, err
	}

	if newStatus == model.ContractAccepted {
		if err := s.db.Model(&model.Project{}).Where("id = ?", contract.ProjectID).Updates(map[string]any{
			"freelancer_id": contract.FreelancerID,
			"status":        model.ProjectInProgress,
			"updated_at":    time.Now(),
		}).Error; err != nil {
			// The status change itself has already been written.
			return nil, fmt.Errorf("failed to assign freelancer to project: %w", err)
		}
	}

	// Best-effort: a notification failure never rolls back the transition.
	recipient := contract.ClientID
	if userID != contract.FreelancerID {
		recipient = contract.FreelancerID
	}
	s.notifier.Notify(recipient, model.Notification{
		Type:       "contract_status",
		ContractID: contract.ID,
		ProjectID:  contract.ProjectID,
		Message:    fmt.Sprintf("Contract %q is now %s", contract.Title, newStatus),
	})

	logger.Info(ctx, "contract status changed",
		"contract_id", contract.ID,
		"status", newStatus,
		"actor", userID,
	)
	return contract, nil
}
