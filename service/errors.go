package service

import "errors"

// Sentinel errors the handlers map onto HTTP statuses.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrFreelancerStatus     = errors.New("freelancers may only accept or reject a contract")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNotApproved          = errors.New("account is not approved")
	ErrDuplicateApplication = errors.New("already applied to this project")
	ErrProjectNotOpen       = errors.New("project is not open for applications")
)
