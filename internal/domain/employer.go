package domain

import (
	"context"
	"time"
)

// EmployerType constants
const (
	EmployerTypeIndividual = "individual"
	EmployerTypeCompany    = "company"
)

// Verification status constants
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

// Review actions
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
	ReviewActionReset   = "reset"
)

// verificationTransitions enumerates the legal status machine. Approved can
// only leave via reset; rejected re-enters review via reset or resubmit, or
// is approved directly after a second look.
var verificationTransitions = map[string][]string{
	VerificationStatusPending:  {VerificationStatusApproved, VerificationStatusRejected},
	VerificationStatusApproved: {VerificationStatusPending},
	VerificationStatusRejected: {VerificationStatusPending, VerificationStatusApproved},
}

// CanTransitionVerification reports whether the status machine allows from→to
func CanTransitionVerification(from, to string) bool {
	for _, t := range verificationTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// EmployerProfile carries the identity-review state machine. IsVerified is
// derived from the status, never stored alongside it.
type EmployerProfile struct {
	ID                 int64      `json:"id"`
	AccountID          string     `json:"account_id"`
	EmployerType       string     `json:"employer_type" validate:"required,oneof=individual company"`
	DisplayName        string     `json:"display_name" validate:"required,min=2,max=150,valid_name"`
	RegistrationNumber *string    `json:"registration_number,omitempty" validate:"omitempty,max=50"`
	NationalIDNumber   *string    `json:"national_id_number,omitempty" validate:"omitempty,max=50"`
	VerificationStatus string     `json:"verification_status"`
	VerificationNotes  *string    `json:"verification_notes,omitempty"`
	VerificationDate   *time.Time `json:"verification_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsVerified reports whether the employer has cleared identity review
func (e *EmployerProfile) IsVerified() bool {
	return e.VerificationStatus == VerificationStatusApproved
}

// VerificationFieldsChanged reports whether the incoming update touches the
// fields the reviewer actually judged. Only these trigger a resubmit after
// rejection.
func (e *EmployerProfile) VerificationFieldsChanged(updated *EmployerProfile) bool {
	if e.EmployerType != updated.EmployerType {
		return true
	}
	if !strPtrEqual(e.RegistrationNumber, updated.RegistrationNumber) {
		return true
	}
	return !strPtrEqual(e.NationalIDNumber, updated.NationalIDNumber)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// EmployerFilter defines admin queue filtering options
type EmployerFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type EmployerRepository interface {
	GetByAccountID(ctx context.Context, accountID string) (*EmployerProfile, error)
	GetByID(ctx context.Context, id int64) (*EmployerProfile, error)
	Create(ctx context.Context, profile *EmployerProfile) error
	UpdateDisplay(ctx context.Context, profile *EmployerProfile) error
	UpdateVerification(ctx context.Context, id int64, status string, notes *string, date *time.Time) error
	List(ctx context.Context, filter EmployerFilter) ([]EmployerProfile, int64, error)
}

type EmployerUsecase interface {
	GetMyProfile(ctx context.Context) (*EmployerProfile, error)
	UpdateMyProfile(ctx context.Context, profile *EmployerProfile) (*EmployerProfile, error)
	SearchProfiles(ctx context.Context, filter SearchFilter) (*PaginatedResult[JobSeekerProfile], error)
}

// VerificationUsecase is the gate every employer-to-jobseeker action passes
// through, plus the reviewer's side of the machine.
type VerificationUsecase interface {
	Review(ctx context.Context, employerID int64, action string, notes string) (*EmployerProfile, error)
	Resubmit(ctx context.Context, employerID int64) error
	List(ctx context.Context, filter EmployerFilter) (*PaginatedResult[EmployerProfile], error)
	// RequireVerified resolves the employer profile for the acting account and
	// returns a NotVerified error when identity review has not passed.
	RequireVerified(ctx context.Context, accountID string) (*EmployerProfile, error)
}
