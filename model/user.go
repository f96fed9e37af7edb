package model

import "time"

// User roles.
const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
	RoleAdmin      = "admin"
)

// Approval statuses for the signup workflow. Clients are approved on
// signup; freelancers start pending and need an admin decision.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// User is a marketplace account.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Role         string    `gorm:"not null" json:"role"`
	Approval     string    `gorm:"not null;default:'pending'" json:"approval"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsParty reports whether the user is one of the contract's parties.
func (u *User) IsParty(c *Contract) bool {
	return u.ID == c.ClientID || u.ID == c.FreelancerID
}
