package model

import "time"

// Project statuses.
const (
	ProjectOpen       = "open"
	ProjectInProgress = "in_progress"
	ProjectClosed     = "closed"
)

// Project is a job posted by a client. FreelancerID is set when a contract
// for the project is accepted.
type Project struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	ClientID     string    `gorm:"index;not null" json:"clientId"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Budget       float64   `json:"budget"`
	Status       string    `gorm:"not null;default:'open'" json:"status"`
	FreelancerID string    `gorm:"index" json:"freelancerId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is a freelancer's bid on a project. One per freelancer per
// project.
type Application struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	ProjectID    string    `gorm:"index:idx_app_project_freelancer,unique;not null" json:"projectId"`
	FreelancerID string    `gorm:"index:idx_app_project_freelancer,unique;not null" json:"freelancerId"`
	CoverLetter  string    `gorm:"type:text" json:"coverLetter"`
	ProposedRate float64   `json:"proposedRate"`
	Status       string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Message is one chat message within a project conversation.
type Message struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ProjectID   string    `gorm:"index;not null" json:"projectId"`
	SenderID    string    `gorm:"index;not null" json:"senderId"`
	RecipientID string    `gorm:"index;not null" json:"recipientId"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notification is a realtime event pushed to a user. Not persisted;
// delivery is best-effort.
type Notification struct {
	Type       string `json:"type"`
	ContractID string `json:"contractId,omitempty"`
	ProjectID  string `json:"projectId,omitempty"`
	Message    string `json:"message"`
}
