package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/internal/usecase"
	"go-talentmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type interviewFixture struct {
	interviewRepo *MockInterviewRepo
	jobseekerRepo *MockJobSeekerRepo
	employerRepo  *MockEmployerRepo
	accountRepo   *MockAccountRepo
	notifier      *MockNotifier
	uc            domain.InterviewUsecase
}

func newInterviewFixture() *interviewFixture {
	f := &interviewFixture{
		interviewRepo: new(MockInterviewRepo),
		jobseekerRepo: new(MockJobSeekerRepo),
		employerRepo:  new(MockEmployerRepo),
		accountRepo:   new(MockAccountRepo),
		notifier:      new(MockNotifier),
	}
	verificationUC := usecase.NewVerificationUsecase(f.employerRepo)
	f.uc = usecase.NewInterviewUsecase(f.interviewRepo, f.jobseekerRepo, f.employerRepo, f.accountRepo, verificationUC, newValidator(), f.notifier)
	return f
}

func validDetails() domain.InterviewDetails {
	return domain.InterviewDetails{
		JobseekerID:   1,
		ProposedDate:  time.Now().Add(48 * time.Hour),
		Location:      "Main office",
		InterviewType: domain.InterviewTypeVideo,
		Message:       "Looking forward to speaking with you",
	}
}

func publishedJobseeker() *domain.JobSeekerProfile {
	p := completeProfile()
	p.Status = domain.ProfileStatusPublished
	p.Phone = "+15550001111"
	return p
}

func TestInterviewCreate(t *testing.T) {
	ctx := employerCtx("emp-1")

	t.Run("Unverified employers are gated", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(pendingEmployer(), nil)

		_, err := f.uc.Create(ctx, validDetails())
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindNotVerified, appErr.Kind)
	})

	t.Run("Proposed date must be in the future", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)

		details := validDetails()
		details.ProposedDate = time.Now().Add(-time.Hour)
		_, err := f.uc.Create(ctx, details)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
	})

	t.Run("Hidden jobseekers read as not found", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(completeProfile(), nil)

		_, err := f.uc.Create(ctx, validDetails())
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("Second in-flight request for the pair is a conflict", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(publishedJobseeker(), nil)
		f.interviewRepo.On("HasActiveRequest", ctx, int64(7), int64(1)).Return(true, nil)

		_, err := f.uc.Create(ctx, validDetails())
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
		f.interviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Index backstop maps to the same conflict", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(publishedJobseeker(), nil)
		f.interviewRepo.On("HasActiveRequest", ctx, int64(7), int64(1)).Return(false, nil)
		f.interviewRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateInterview)

		_, err := f.uc.Create(ctx, validDetails())
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
	})

	t.Run("Successful create notifies the jobseeker", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(publishedJobseeker(), nil)
		f.interviewRepo.On("HasActiveRequest", ctx, int64(7), int64(1)).Return(false, nil)
		f.interviewRepo.On("Create", ctx, mock.AnythingOfType("*domain.InterviewRequest")).Return(nil)
		f.accountRepo.On("GetByID", ctx, "acc-1").Return(&domain.Account{ID: "acc-1", Email: "jane@example.com"}, nil)
		f.notifier.On("InterviewRequested", mock.AnythingOfType("domain.InterviewRequestedNotice")).Return()

		request, err := f.uc.Create(ctx, validDetails())
		assert.NoError(t, err)
		assert.Equal(t, int64(7), request.EmployerID)
		assert.Equal(t, int64(1), request.JobseekerID)
		f.notifier.AssertExpectations(t)
	})
}

func TestInterviewRespond(t *testing.T) {
	ctx := jobseekerCtx("acc-1")

	pendingRequest := func() *domain.InterviewRequest {
		return &domain.InterviewRequest{
			ID:          5,
			EmployerID:  7,
			JobseekerID: 1,
			Status:      domain.InterviewStatusPending,
		}
	}

	t.Run("Only the addressed jobseeker may respond", func(t *testing.T) {
		f := newInterviewFixture()
		other := completeProfile()
		other.ID = 2
		f.jobseekerRepo.On("GetByAccountID", ctx, "acc-1").Return(other, nil)
		f.interviewRepo.On("GetByID", ctx, int64(5)).Return(pendingRequest(), nil)

		_, err := f.uc.Respond(ctx, 5, domain.InterviewDecisionAccept, "")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("Accept moves pending to accepted and notifies", func(t *testing.T) {
		f := newInterviewFixture()
		f.jobseekerRepo.On("GetByAccountID", ctx, "acc-1").Return(completeProfile(), nil)
		f.interviewRepo.On("GetByID", ctx, int64(5)).Return(pendingRequest(), nil)
		f.interviewRepo.On("Respond", ctx, int64(5), domain.InterviewStatusAccepted,
			mock.Anything, mock.AnythingOfType("time.Time")).Return(true, nil)
		f.employerRepo.On("GetByID", ctx, int64(7)).Return(verifiedEmployer(), nil)
		f.accountRepo.On("GetByID", ctx, "emp-1").Return(&domain.Account{ID: "emp-1", Email: "acme@example.com"}, nil)
		f.notifier.On("InterviewResponded", mock.AnythingOfType("domain.InterviewRespondedNotice")).Return()

		request, err := f.uc.Respond(ctx, 5, domain.InterviewDecisionAccept, "Works for me")
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusAccepted, request.Status)
		assert.NotNil(t, request.RespondedAt)
	})

	t.Run("Responding to a concluded request is a conflict", func(t *testing.T) {
		f := newInterviewFixture()
		f.jobseekerRepo.On("GetByAccountID", ctx, "acc-1").Return(completeProfile(), nil)

		declined := pendingRequest()
		declined.Status = domain.InterviewStatusDeclined
		f.interviewRepo.On("GetByID", ctx, int64(5)).Return(declined, nil)
		f.interviewRepo.On("Respond", ctx, int64(5), domain.InterviewStatusAccepted,
			mock.Anything, mock.Anything).Return(false, nil)

		_, err := f.uc.Respond(ctx, 5, domain.InterviewDecisionAccept, "")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
	})

	t.Run("Decision outside the closed set is rejected", func(t *testing.T) {
		f := newInterviewFixture()
		f.jobseekerRepo.On("GetByAccountID", ctx, "acc-1").Return(completeProfile(), nil)
		f.interviewRepo.On("GetByID", ctx, int64(5)).Return(pendingRequest(), nil)

		_, err := f.uc.Respond(ctx, 5, "maybe", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "accept or decline")
	})
}

func TestInterviewLifecycle(t *testing.T) {
	employerSide := employerCtx("emp-1")

	request := func(status string) *domain.InterviewRequest {
		return &domain.InterviewRequest{
			ID:          5,
			EmployerID:  7,
			JobseekerID: 1,
			Status:      status,
		}
	}

	t.Run("Cancel only applies to pending requests", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
		f.interviewRepo.On("GetByID", employerSide, int64(5)).Return(request(domain.InterviewStatusAccepted), nil)
		f.interviewRepo.On("TransitionStatus", employerSide, int64(5),
			domain.InterviewStatusPending, domain.InterviewStatusCancelled).Return(false, nil)

		_, err := f.uc.Cancel(employerSide, 5)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
	})

	t.Run("MarkCompleted only applies to accepted requests", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
		f.interviewRepo.On("GetByID", employerSide, int64(5)).Return(request(domain.InterviewStatusPending), nil)
		f.interviewRepo.On("TransitionStatus", employerSide, int64(5),
			domain.InterviewStatusAccepted, domain.InterviewStatusCompleted).Return(false, nil)

		_, err := f.uc.MarkCompleted(employerSide, 5)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
	})

	t.Run("Delete requires a terminal status", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
		f.interviewRepo.On("GetByID", employerSide, int64(5)).Return(request(domain.InterviewStatusPending), nil)

		err := f.uc.Delete(employerSide, 5)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
		f.interviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("All terminal statuses are deletable", func(t *testing.T) {
		for _, status := range []string{
			domain.InterviewStatusDeclined,
			domain.InterviewStatusCancelled,
			domain.InterviewStatusCompleted,
		} {
			f := newInterviewFixture()
			f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
			f.interviewRepo.On("GetByID", employerSide, int64(5)).Return(request(status), nil)
			f.interviewRepo.On("Delete", employerSide, int64(5)).Return(nil)

			assert.NoError(t, f.uc.Delete(employerSide, 5), status)
		}
	})
}

func TestContactDisclosure(t *testing.T) {
	employerSide := employerCtx("emp-1")
	jobseekerSide := jobseekerCtx("acc-1")

	request := func(status string) *domain.InterviewRequest {
		return &domain.InterviewRequest{
			ID:          5,
			EmployerID:  7,
			JobseekerID: 1,
			Status:      status,
		}
	}

	setup := func(f *interviewFixture, ctx context.Context, status string) {
		f.interviewRepo.On("GetByID", ctx, int64(5)).Return(request(status), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(publishedJobseeker(), nil)
		f.employerRepo.On("GetByID", ctx, int64(7)).Return(verifiedEmployer(), nil)
	}

	t.Run("Phone is hidden while pending", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
		setup(f, employerSide, domain.InterviewStatusPending)

		view, err := f.uc.Get(employerSide, 5)
		assert.NoError(t, err)
		assert.Nil(t, view.JobseekerPhone)
	})

	t.Run("Phone is disclosed once accepted", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
		setup(f, employerSide, domain.InterviewStatusAccepted)

		view, err := f.uc.Get(employerSide, 5)
		assert.NoError(t, err)
		assert.NotNil(t, view.JobseekerPhone)
		assert.Equal(t, "+15550001111", *view.JobseekerPhone)
	})

	t.Run("Disclosure survives completion", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
		setup(f, employerSide, domain.InterviewStatusCompleted)

		view, err := f.uc.Get(employerSide, 5)
		assert.NoError(t, err)
		assert.NotNil(t, view.JobseekerPhone)
	})

	t.Run("Declining never discloses", func(t *testing.T) {
		f := newInterviewFixture()
		f.employerRepo.On("GetByAccountID", employerSide, "emp-1").Return(verifiedEmployer(), nil)
		setup(f, employerSide, domain.InterviewStatusDeclined)

		view, err := f.uc.Get(employerSide, 5)
		assert.NoError(t, err)
		assert.Nil(t, view.JobseekerPhone)
	})

	t.Run("The jobseeker's own view never carries the phone projection", func(t *testing.T) {
		f := newInterviewFixture()
		f.jobseekerRepo.On("GetByAccountID", jobseekerSide, "acc-1").Return(publishedJobseeker(), nil)
		setup(f, jobseekerSide, domain.InterviewStatusAccepted)

		view, err := f.uc.Get(jobseekerSide, 5)
		assert.NoError(t, err)
		assert.Nil(t, view.JobseekerPhone)
	})
}

func TestInterviewTerminalTable(t *testing.T) {
	assert.False(t, domain.InterviewTerminal(domain.InterviewStatusPending))
	assert.False(t, domain.InterviewTerminal(domain.InterviewStatusAccepted))
	assert.True(t, domain.InterviewTerminal(domain.InterviewStatusDeclined))
	assert.True(t, domain.InterviewTerminal(domain.InterviewStatusCancelled))
	assert.True(t, domain.InterviewTerminal(domain.InterviewStatusCompleted))

	assert.False(t, domain.ContactDisclosed(domain.InterviewStatusPending))
	assert.True(t, domain.ContactDisclosed(domain.InterviewStatusAccepted))
	assert.True(t, domain.ContactDisclosed(domain.InterviewStatusCompleted))
	assert.False(t, domain.ContactDisclosed(domain.InterviewStatusDeclined))
	assert.False(t, domain.ContactDisclosed(domain.InterviewStatusCancelled))
}
