package usecase

import (
	"context"
	"math"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"go-talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type employerUsecase struct {
	employerRepo    domain.EmployerRepository
	jobseekerRepo   domain.JobSeekerRepository
	verificationUC  domain.VerificationUsecase
	validate        *validator.Validate
	defaultPageSize int
	maxPageSize     int
}

func NewEmployerUsecase(
	employerRepo domain.EmployerRepository,
	jobseekerRepo domain.JobSeekerRepository,
	verificationUC domain.VerificationUsecase,
	validate *validator.Validate,
	defaultPageSize, maxPageSize int,
) domain.EmployerUsecase {
	return &employerUsecase{
		employerRepo:    employerRepo,
		jobseekerRepo:   jobseekerRepo,
		verificationUC:  verificationUC,
		validate:        validate,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (uc *employerUsecase) GetMyProfile(ctx context.Context) (*domain.EmployerProfile, error) {
	accountID, err := requireRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}

	profile, err := uc.employerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Employer profile not found")
	}
	return profile, nil
}

// UpdateMyProfile saves display and verification fields. When an employer
// whose verification was rejected edits the fields the reviewer judged, the
// save triggers an explicit resubmit transition back into the review queue.
func (uc *employerUsecase) UpdateMyProfile(ctx context.Context, profile *domain.EmployerProfile) (*domain.EmployerProfile, error) {
	accountID, err := requireRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}
	profile.AccountID = accountID

	if err := uc.validate.Struct(profile); err != nil {
		return nil, apperror.Validation("Employer profile validation failed", validation.FormatValidationErrors(err))
	}
	if violations := identityViolations(profile); len(violations) > 0 {
		return nil, apperror.Validation("Employer profile validation failed", violations)
	}

	existing, err := uc.employerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if existing == nil {
		if err := uc.employerRepo.Create(ctx, profile); err != nil {
			return nil, apperror.Internal(err)
		}
		return profile, nil
	}

	profile.ID = existing.ID
	resubmit := existing.VerificationStatus == domain.VerificationStatusRejected &&
		existing.VerificationFieldsChanged(profile)

	if err := uc.employerRepo.UpdateDisplay(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}

	if resubmit {
		if err := uc.verificationUC.Resubmit(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	return uc.employerRepo.GetByAccountID(ctx, accountID)
}

// identityViolations enforces the type-dependent identity field: companies
// submit a registration number, individuals a national id equivalent.
func identityViolations(profile *domain.EmployerProfile) []string {
	violations := []string{}
	switch profile.EmployerType {
	case domain.EmployerTypeCompany:
		if profile.RegistrationNumber == nil || *profile.RegistrationNumber == "" {
			violations = append(violations, "Registration Number: required for company employers")
		}
	case domain.EmployerTypeIndividual:
		if profile.NationalIDNumber == nil || *profile.NationalIDNumber == "" {
			violations = append(violations, "National ID Number: required for individual employers")
		}
	}
	return violations
}

// SearchProfiles lists published jobseeker profiles for a verified employer.
// Age bounds filter on the private age field; the results never carry it.
func (uc *employerUsecase) SearchProfiles(ctx context.Context, filter domain.SearchFilter) (*domain.PaginatedResult[domain.JobSeekerProfile], error) {
	accountID, err := requireRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}
	if _, err := uc.verificationUC.RequireVerified(ctx, accountID); err != nil {
		return nil, err
	}

	if err := uc.validate.Struct(&filter); err != nil {
		return nil, apperror.Validation("Invalid search filters", validation.FormatValidationErrors(err))
	}
	if filter.MinAge > 0 && filter.MaxAge > 0 && filter.MaxAge < filter.MinAge {
		return nil, apperror.Validation("Invalid search filters", []string{"Maximum Age: must be greater than or equal to Minimum Age"})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = uc.defaultPageSize
	}
	if filter.Limit > uc.maxPageSize {
		filter.Limit = uc.maxPageSize
	}

	profiles, total, err := uc.jobseekerRepo.Search(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.PaginatedResult[domain.JobSeekerProfile]{
		Data:       profiles,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
