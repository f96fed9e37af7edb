package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/config"
	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SignupInput is the body of POST /api/auth/signup.
type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=client freelancer"`
}

// UserService owns accounts and the signup/approval workflow.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Signup registers a new client or freelancer. Clients are approved
// immediately; freelancers start pending and need an admin decision before
// they can log in.
func (s *UserService) Signup(in SignupInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	approval := model.ApprovalApproved
	if in.Role == model.RoleFreelancer {
		approval = model.ApprovalPending
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Approval:     approval,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies credentials. A pending or rejected account fails
// with ErrNotApproved; the user is still returned so the handler can name
// the approval state.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Approval != model.ApprovalApproved {
		return &user, ErrNotApproved
	}
	return &user, nil
}

// GetByID returns a user or ErrNotFound.
func (s *UserService) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// ListByApproval returns users filtered by approval status; an empty status
// returns everyone.
func (s *UserService) ListByApproval(status string) ([]model.User, error) {
	q := s.db.Order("created_at ASC")
	if status != "" {
		q = q.Where("approval = ?", status)
	}
	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetApproval records an admin approval decision.
func (s *UserService) SetApproval(id string, approved bool) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.Approval = model.ApprovalRejected
	if approved {
		user.Approval = model.ApprovalApproved
	}
	user.UpdatedAt = time.Now()
	if err := s.db.Model(user).Updates(map[string]any{
		"approval":   user.Approval,
		"updated_at": user.UpdatedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update approval: %w", err)
	}
	return user, nil
}

// SeedAdmin creates the configured administrator account if it does not
// exist yet.
func (s *UserService) SeedAdmin(cfg *config.AdminConfig) error {
	if cfg.Email == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", strings.ToLower(cfg.Email)).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(cfg.Email),
		PasswordHash: string(hash),
		Name:         cfg.Name,
		Role:         model.RoleAdmin,
		Approval:     model.ApprovalApproved,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	slog.Info("admin account seeded", "email", admin.Email)
	return nil
}
