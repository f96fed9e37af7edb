package service

import (
	"testing"

	"github.com/Nabz863/group17-freelance-sd-sub000/config"
	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupApprovalByRole(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	client, err := svc.Signup(SignupInput{
		Email: "client@example.com", Password: "secret-pass", Name: "Acme", Role: model.RoleClient,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, client.Approval)

	freelancer, err := svc.Signup(SignupInput{
		Email: "free@example.com", Password: "secret-pass", Name: "Jordan", Role: model.RoleFreelancer,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, freelancer.Approval)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	in := SignupInput{Email: "dup@example.com", Password: "secret-pass", Name: "A", Role: model.RoleClient}
	_, err := svc.Signup(in)
	require.NoError(t, err)

	_, err = svc.Signup(in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupNormalizesEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Signup(SignupInput{
		Email: "  Client@Example.COM ", Password: "secret-pass", Name: "Acme", Role: model.RoleClient,
	})
	require.NoError(t, err)
	assert.Equal(t, "client@example.com", user.Email)
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Signup(SignupInput{
		Email: "client@example.com", Password: "secret-pass", Name: "Acme", Role: model.RoleClient,
	})
	require.NoError(t, err)

	user, err := svc.Authenticate("client@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, model.RoleClient, user.Role)

	_, err = svc.Authenticate("client@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticatePendingFreelancer(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Signup(SignupInput{
		Email: "free@example.com", Password: "secret-pass", Name: "Jordan", Role: model.RoleFreelancer,
	})
	require.NoError(t, err)

	user, err := svc.Authenticate("free@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrNotApproved)
	require.NotNil(t, user)
	assert.Equal(t, model.ApprovalPending, user.Approval)
}

func TestApprovalWorkflow(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	freelancer, err := svc.Signup(SignupInput{
		Email: "free@example.com", Password: "secret-pass", Name: "Jordan", Role: model.RoleFreelancer,
	})
	require.NoError(t, err)

	pending, err := svc.ListByApproval(model.ApprovalPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := svc.SetApproval(freelancer.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, approved.Approval)

	// Approved freelancers can now log in.
	_, err = svc.Authenticate("free@example.com", "secret-pass")
	assert.NoError(t, err)

	rejected, err := svc.SetApproval(freelancer.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, rejected.Approval)
}

func TestSeedAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	cfg := &config.AdminConfig{Email: "admin@example.com", Password: "admin-pass", Name: "Administrator"}
	require.NoError(t, svc.SeedAdmin(cfg))
	// Idempotent.
	require.NoError(t, svc.SeedAdmin(cfg))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	admin, err := svc.Authenticate("admin@example.com", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
}
