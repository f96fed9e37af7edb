package service

import (
	"fmt"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageService owns project-scoped chat between a client and a
// freelancer.
type MessageService struct {
	db       *gorm.DB
	projects *ProjectService
	notifier Notifier
}

func NewMessageService(db *gorm.DB, projects *ProjectService, notifier Notifier) *MessageService {
	return &MessageService{db: db, projects: projects, notifier: notifier}
}

// CanChat reports whether the user participates in the project's
// conversation: the owning client, the assigned freelancer, or a freelancer
// who has applied.
func (s *MessageService) CanChat(userID, role string, project *model.Project) (bool, error) {
	switch role {
	case model.RoleAdmin:
		return true, nil
	case model.RoleClient:
		return project.ClientID == userID, nil
	case model.RoleFreelancer:
		if project.FreelancerID == userID {
			return true, nil
		}
		return s.projects.HasApplied(project.ID, userID)
	}
	return false, nil
}

// Send persists a message and pushes it to the recipient best-effort. The
// recipient is the other side of the conversation: the assigned (or
// sending) freelancer when the client writes, the client otherwise.
func (s *MessageService) Send(projectID, senderID, role, body string) (*model.Message, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}

	ok, err := s.CanChat(senderID, role, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	recipient := project.ClientID
	if senderID == project.ClientID {
		recipient = project.FreelancerID
		if recipient == "" {
			return nil, fmt.Errorf("project has no freelancer to message: %w", ErrForbidden)
		}
	}

	msg := &model.Message{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		SenderID:    senderID,
		RecipientID: recipient,
		Body:        body,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.notifier.Notify(recipient, model.Notification{
		Type:      "chat_message",
		ProjectID: projectID,
		Message:   body,
	})
	return msg, nil
}

// List returns the project conversation in chronological order for a
// participant.
func (s *MessageService) List(projectID, userID, role string) ([]model.Message, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}

	ok, err := s.CanChat(userID, role, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	var messages []model.Message
	if err := s.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
