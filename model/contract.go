package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Contract statuses. Transitions go forward only: pending -> accepted or
// pending -> rejected.
const (
	ContractPending  = "pending"
	ContractAccepted = "accepted"
	ContractRejected = "rejected"
)

// SubmittedSections is stored as a JSON text column.
type SubmittedSections []SubmittedSection

func (s SubmittedSections) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SubmittedSections) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for SubmittedSections: %T", value)
	}
}

// Contract is the persisted agreement between a client and a freelancer.
type Contract struct {
	ID           string            `gorm:"primaryKey" json:"id"`
	ProjectID    string            `gorm:"index;not null" json:"projectId"`
	Title        string            `gorm:"not null" json:"title"`
	ClientID     string            `gorm:"index;not null" json:"clientId"`
	FreelancerID string            `gorm:"index;not null" json:"freelancerId"`
	Sections     SubmittedSections `gorm:"type:text" json:"contractSections"`
	Status       string            `gorm:"not null;default:'pending'" json:"status"`
	PDFURL       string            `json:"pdfUrl,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Milestone statuses.
const (
	MilestonePending   = "pending"
	MilestoneSubmitted = "submitted"
	MilestoneApproved  = "approved"
)

// Milestone is one tracked deliverable of an accepted contract.
type Milestone struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	ContractID     string     `gorm:"index;not null" json:"contractId"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Status         string     `gorm:"not null;default:'pending'" json:"status"`
	DeliverableURL string     `json:"deliverableUrl,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
