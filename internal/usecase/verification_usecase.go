package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
)

type verificationUsecase struct {
	employerRepo domain.EmployerRepository
}

func NewVerificationUsecase(employerRepo domain.EmployerRepository) domain.VerificationUsecase {
	return &verificationUsecase{employerRepo: employerRepo}
}

// Review applies a reviewer decision to an employer's verification state.
// Every transition is validated against the enumerated machine before any
// write happens.
func (uc *verificationUsecase) Review(ctx context.Context, employerID int64, action string, notes string) (*domain.EmployerProfile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	employer, err := uc.employerRepo.GetByID(ctx, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if employer == nil {
		return nil, apperror.NotFound("Employer profile not found")
	}

	notes = strings.TrimSpace(notes)

	var (
		target   string
		notesPtr *string
		datePtr  *time.Time
	)

	switch strings.ToLower(action) {
	case domain.ReviewActionApprove:
		target = domain.VerificationStatusApproved
		if notes == "" {
			notes = "Approved by reviewer"
		}
		now := time.Now()
		notesPtr = &notes
		datePtr = &now

	case domain.ReviewActionReject:
		// Rejection without a reason is a validation error, not a
		// default-filled no-op
		if notes == "" {
			return nil, apperror.Validation("Rejection requires a reason", []string{"Review Notes: required"})
		}
		target = domain.VerificationStatusRejected
		notesPtr = &notes

	case domain.ReviewActionReset:
		target = domain.VerificationStatusPending

	default:
		return nil, apperror.BadRequest("Invalid action: must be approve, reject, or reset")
	}

	if !domain.CanTransitionVerification(employer.VerificationStatus, target) {
		return nil, apperror.Conflict("Cannot " + action + " an employer whose verification is " + employer.VerificationStatus)
	}

	if err := uc.employerRepo.UpdateVerification(ctx, employerID, target, notesPtr, datePtr); err != nil {
		return nil, apperror.Internal(err)
	}

	employer.VerificationStatus = target
	employer.VerificationNotes = notesPtr
	employer.VerificationDate = datePtr
	return employer, nil
}

// Resubmit is the explicit rejected→pending transition fired when an employer
// edits their core verification fields after a rejection. Any other starting
// status is a no-op: the edit doesn't touch an ongoing or passed review.
func (uc *verificationUsecase) Resubmit(ctx context.Context, employerID int64) error {
	employer, err := uc.employerRepo.GetByID(ctx, employerID)
	if err != nil {
		return apperror.Internal(err)
	}
	if employer == nil {
		return apperror.NotFound("Employer profile not found")
	}
	if employer.VerificationStatus != domain.VerificationStatusRejected {
		return nil
	}

	if err := uc.employerRepo.UpdateVerification(ctx, employerID, domain.VerificationStatusPending, nil, nil); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *verificationUsecase) List(ctx context.Context, filter domain.EmployerFilter) (*domain.PaginatedResult[domain.EmployerProfile], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	employers, total, err := uc.employerRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.PaginatedResult[domain.EmployerProfile]{
		Data:       employers,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// RequireVerified is the gate every employer-to-jobseeker action passes
// through. The NotVerified kind is distinct from Forbidden so callers can
// render "pending verification" rather than a generic denial.
func (uc *verificationUsecase) RequireVerified(ctx context.Context, accountID string) (*domain.EmployerProfile, error) {
	employer, err := uc.employerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if employer == nil {
		return nil, apperror.NotVerified("Complete your employer profile to start verification")
	}
	if !employer.IsVerified() {
		return nil, apperror.NotVerified("Your employer account has not been verified yet")
	}
	return employer, nil
}
