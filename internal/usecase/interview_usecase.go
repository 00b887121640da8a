package usecase

import (
	"context"
	"time"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"go-talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	interviewRepo  domain.InterviewRepository
	jobseekerRepo  domain.JobSeekerRepository
	employerRepo   domain.EmployerRepository
	accountRepo    domain.AccountRepository
	verificationUC domain.VerificationUsecase
	validate       *validator.Validate
	notifier       domain.Notifier
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	jobseekerRepo domain.JobSeekerRepository,
	employerRepo domain.EmployerRepository,
	accountRepo domain.AccountRepository,
	verificationUC domain.VerificationUsecase,
	validate *validator.Validate,
	notifier domain.Notifier,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo:  interviewRepo,
		jobseekerRepo:  jobseekerRepo,
		employerRepo:   employerRepo,
		accountRepo:    accountRepo,
		verificationUC: verificationUC,
		validate:       validate,
		notifier:       notifier,
	}
}

// Create opens an interview request from a verified employer to a visible
// jobseeker. At most one request per pair may be in flight; the repository's
// unique index backs the pre-check against racing tabs.
func (uc *interviewUsecase) Create(ctx context.Context, details domain.InterviewDetails) (*domain.InterviewRequest, error) {
	accountID, err := requireRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}
	employer, err := uc.verificationUC.RequireVerified(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := uc.validate.Struct(&details); err != nil {
		return nil, apperror.Validation("Interview request validation failed", validation.FormatValidationErrors(err))
	}
	if !details.ProposedDate.After(time.Now()) {
		return nil, apperror.Validation("Interview request validation failed", []string{"Proposed Date: must be in the future"})
	}

	jobseeker, err := uc.jobseekerRepo.GetByID(ctx, details.JobseekerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobseeker == nil || !jobseeker.IsVisible() {
		return nil, apperror.NotFound("Jobseeker profile not found")
	}

	exists, err := uc.interviewRepo.HasActiveRequest(ctx, employer.ID, jobseeker.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You already have an active interview request with this jobseeker")
	}

	request := &domain.InterviewRequest{
		EmployerID:    employer.ID,
		JobseekerID:   jobseeker.ID,
		ProposedDate:  details.ProposedDate,
		Location:      details.Location,
		InterviewType: details.InterviewType,
		Message:       details.Message,
	}
	if err := uc.interviewRepo.Create(ctx, request); err != nil {
		if err == domain.ErrDuplicateInterview {
			return nil, apperror.Conflict("You already have an active interview request with this jobseeker")
		}
		return nil, apperror.Internal(err)
	}

	uc.notifyRequested(ctx, jobseeker, employer, request)
	return request, nil
}

// Respond lets the addressed jobseeker accept or decline a pending request.
// Accepting switches on contact disclosure for the employer.
func (uc *interviewUsecase) Respond(ctx context.Context, requestID int64, decision string, message string) (*domain.InterviewRequest, error) {
	accountID, err := requireRole(ctx, domain.RoleJobseeker)
	if err != nil {
		return nil, err
	}
	profile, err := uc.jobseekerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Jobseeker profile not found")
	}

	request, err := uc.interviewRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if request == nil {
		return nil, apperror.NotFound("Interview request not found")
	}
	if request.JobseekerID != profile.ID {
		return nil, apperror.Forbidden("You can only respond to your own interview requests")
	}

	var status string
	switch decision {
	case domain.InterviewDecisionAccept:
		status = domain.InterviewStatusAccepted
	case domain.InterviewDecisionDecline:
		status = domain.InterviewStatusDeclined
	default:
		return nil, apperror.BadRequest("Decision must be accept or decline")
	}

	var messagePtr *string
	if message != "" {
		messagePtr = &message
	}

	now := time.Now()
	ok, err := uc.interviewRepo.Respond(ctx, requestID, status, messagePtr, now)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.Conflict("This request is no longer pending")
	}

	request.Status = status
	request.ResponseMessage = messagePtr
	request.RespondedAt = &now

	uc.notifyResponded(ctx, profile, request, status == domain.InterviewStatusAccepted, message)
	return request, nil
}

// Cancel withdraws a pending request. This is the employer's path out while
// the jobseeker may still be about to respond; delete only applies to
// concluded requests.
func (uc *interviewUsecase) Cancel(ctx context.Context, requestID int64) (*domain.InterviewRequest, error) {
	_, request, err := uc.ownedByEmployer(ctx, requestID)
	if err != nil {
		return nil, err
	}

	ok, err := uc.interviewRepo.TransitionStatus(ctx, requestID, domain.InterviewStatusPending, domain.InterviewStatusCancelled)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.Conflict("Only pending requests can be cancelled")
	}
	request.Status = domain.InterviewStatusCancelled
	return request, nil
}

// MarkCompleted is the manual terminal marker either party may set on an
// accepted interview. Disclosure survives the transition.
func (uc *interviewUsecase) MarkCompleted(ctx context.Context, requestID int64) (*domain.InterviewRequest, error) {
	request, err := uc.ownedByEitherParty(ctx, requestID)
	if err != nil {
		return nil, err
	}

	ok, err := uc.interviewRepo.TransitionStatus(ctx, requestID, domain.InterviewStatusAccepted, domain.InterviewStatusCompleted)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.Conflict("Only accepted interviews can be marked completed")
	}
	request.Status = domain.InterviewStatusCompleted
	return request, nil
}

// Delete removes a concluded request from the employer's history. Pending
// requests cannot be deleted out from under a jobseeker; cancel them instead.
func (uc *interviewUsecase) Delete(ctx context.Context, requestID int64) error {
	_, request, err := uc.ownedByEmployer(ctx, requestID)
	if err != nil {
		return err
	}
	if !domain.InterviewTerminal(request.Status) {
		return apperror.Conflict("Only concluded requests can be deleted")
	}
	if err := uc.interviewRepo.Delete(ctx, requestID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *interviewUsecase) Get(ctx context.Context, requestID int64) (*domain.InterviewView, error) {
	request, err := uc.ownedByEitherParty(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return uc.buildView(ctx, request, roleFromContext(ctx))
}

func (uc *interviewUsecase) ListMine(ctx context.Context) ([]domain.InterviewView, error) {
	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	role := roleFromContext(ctx)
	var requests []domain.InterviewRequest

	switch role {
	case domain.RoleEmployer:
		employer, err := uc.employerRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if employer == nil {
			return nil, apperror.NotFound("Employer profile not found")
		}
		requests, err = uc.interviewRepo.ListByEmployer(ctx, employer.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
	case domain.RoleJobseeker:
		profile, err := uc.jobseekerRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if profile == nil {
			return nil, apperror.NotFound("Jobseeker profile not found")
		}
		requests, err = uc.interviewRepo.ListByJobseeker(ctx, profile.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
	default:
		return nil, apperror.Forbidden("Interview requests are only visible to their participants")
	}

	views := make([]domain.InterviewView, 0, len(requests))
	for i := range requests {
		view, err := uc.buildView(ctx, &requests[i], role)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// buildView projects a request for one side of the negotiation. The
// jobseeker's phone number is evaluated against the request's CURRENT status
// on every read: absent while pending, present from acceptance onward.
func (uc *interviewUsecase) buildView(ctx context.Context, request *domain.InterviewRequest, viewerRole string) (*domain.InterviewView, error) {
	jobseeker, err := uc.jobseekerRepo.GetByID(ctx, request.JobseekerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	employer, err := uc.employerRepo.GetByID(ctx, request.EmployerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	view := &domain.InterviewView{InterviewRequest: *request}
	if jobseeker != nil {
		view.JobseekerName = jobseeker.FullName
		if viewerRole == domain.RoleEmployer && domain.ContactDisclosed(request.Status) && jobseeker.Phone != "" {
			phone := jobseeker.Phone
			view.JobseekerPhone = &phone
		}
	}
	if employer != nil {
		view.EmployerName = employer.DisplayName
	}
	return view, nil
}

func (uc *interviewUsecase) ownedByEmployer(ctx context.Context, requestID int64) (*domain.EmployerProfile, *domain.InterviewRequest, error) {
	accountID, err := requireRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, nil, err
	}
	employer, err := uc.employerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	if employer == nil {
		return nil, nil, apperror.NotFound("Employer profile not found")
	}

	request, err := uc.interviewRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	if request == nil {
		return nil, nil, apperror.NotFound("Interview request not found")
	}
	if request.EmployerID != employer.ID {
		return nil, nil, apperror.Forbidden("You can only manage your own interview requests")
	}
	return employer, request, nil
}

func (uc *interviewUsecase) ownedByEitherParty(ctx context.Context, requestID int64) (*domain.InterviewRequest, error) {
	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	request, err := uc.interviewRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if request == nil {
		return nil, apperror.NotFound("Interview request not found")
	}

	switch roleFromContext(ctx) {
	case domain.RoleEmployer:
		employer, err := uc.employerRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if employer == nil || request.EmployerID != employer.ID {
			return nil, apperror.Forbidden("You can only manage your own interview requests")
		}
	case domain.RoleJobseeker:
		profile, err := uc.jobseekerRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if profile == nil || request.JobseekerID != profile.ID {
			return nil, apperror.Forbidden("You can only manage your own interview requests")
		}
	default:
		return nil, apperror.Forbidden("Interview requests are only visible to their participants")
	}
	return request, nil
}

func (uc *interviewUsecase) notifyRequested(ctx context.Context, jobseeker *domain.JobSeekerProfile, employer *domain.EmployerProfile, request *domain.InterviewRequest) {
	account, err := uc.accountRepo.GetByID(ctx, jobseeker.AccountID)
	if err != nil || account == nil {
		return
	}
	uc.notifier.InterviewRequested(domain.InterviewRequestedNotice{
		RecipientEmail: account.Email,
		JobseekerName:  jobseeker.FullName,
		EmployerName:   employer.DisplayName,
		ProposedDate:   request.ProposedDate,
		Location:       request.Location,
		InterviewType:  request.InterviewType,
		Message:        request.Message,
	})
}

func (uc *interviewUsecase) notifyResponded(ctx context.Context, jobseeker *domain.JobSeekerProfile, request *domain.InterviewRequest, accepted bool, message string) {
	employer, err := uc.employerRepo.GetByID(ctx, request.EmployerID)
	if err != nil || employer == nil {
		return
	}
	account, err := uc.accountRepo.GetByID(ctx, employer.AccountID)
	if err != nil || account == nil {
		return
	}
	uc.notifier.InterviewResponded(domain.InterviewRespondedNotice{
		RecipientEmail: account.Email,
		EmployerName:   employer.DisplayName,
		JobseekerName:  jobseeker.FullName,
		Accepted:       accepted,
		Message:        message,
	})
}
