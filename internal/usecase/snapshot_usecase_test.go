package usecase_test

import (
	"errors"
	"testing"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/internal/usecase"
	"go-talentmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type snapshotFixture struct {
	snapshotRepo  *MockSnapshotRepo
	jobseekerRepo *MockJobSeekerRepo
	employerRepo  *MockEmployerRepo
	accountRepo   *MockAccountRepo
	notifier      *MockNotifier
	uc            domain.SnapshotUsecase
}

func newSnapshotFixture() *snapshotFixture {
	f := &snapshotFixture{
		snapshotRepo:  new(MockSnapshotRepo),
		jobseekerRepo: new(MockJobSeekerRepo),
		employerRepo:  new(MockEmployerRepo),
		accountRepo:   new(MockAccountRepo),
		notifier:      new(MockNotifier),
	}
	verificationUC := usecase.NewVerificationUsecase(f.employerRepo)
	f.uc = usecase.NewSnapshotUsecase(f.snapshotRepo, f.jobseekerRepo, f.employerRepo, f.accountRepo, verificationUC, f.notifier)
	return f
}

func verifiedEmployer() *domain.EmployerProfile {
	e := pendingEmployer()
	e.VerificationStatus = domain.VerificationStatusApproved
	return e
}

func TestSnapshotSave(t *testing.T) {
	ctx := employerCtx("emp-1")

	t.Run("Unverified employers are gated", func(t *testing.T) {
		f := newSnapshotFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(pendingEmployer(), nil)

		_, err := f.uc.Save(ctx, 10)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindNotVerified, appErr.Kind)
	})

	t.Run("Hidden profiles read as not found", func(t *testing.T) {
		f := newSnapshotFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)

		hidden := completeProfile()
		hidden.Status = domain.ProfileStatusDraft
		f.jobseekerRepo.On("GetCVByID", ctx, int64(10)).Return(completeCV(), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(hidden, nil)

		_, err := f.uc.Save(ctx, 10)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
		assert.Equal(t, "CV not found", appErr.Message)
	})

	t.Run("Saving freezes the version and excludes private fields", func(t *testing.T) {
		f := newSnapshotFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)

		published := completeProfile()
		published.Status = domain.ProfileStatusPublished
		published.Age = 34
		published.Phone = "+15550001111"
		f.jobseekerRepo.On("GetCVByID", ctx, int64(10)).Return(completeCV(), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(published, nil)
		f.snapshotRepo.On("Create", ctx, mock.AnythingOfType("*domain.EmployerSavedSnapshot")).Return(nil)
		f.accountRepo.On("GetByID", ctx, "acc-1").Return(&domain.Account{ID: "acc-1", Email: "jane@example.com"}, nil)
		f.notifier.On("SnapshotSaved", mock.AnythingOfType("domain.SnapshotSavedNotice")).Return()

		snapshot, err := f.uc.Save(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), snapshot.SnapshotVersion)
		assert.Equal(t, "Jane Smith", snapshot.Content.Profile.FullName)
		assert.Len(t, snapshot.Content.Sections, 3)
	})

	t.Run("Second save of the same version is a conflict", func(t *testing.T) {
		f := newSnapshotFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)

		published := completeProfile()
		published.Status = domain.ProfileStatusPublished
		f.jobseekerRepo.On("GetCVByID", ctx, int64(10)).Return(completeCV(), nil)
		f.jobseekerRepo.On("GetByID", ctx, int64(1)).Return(published, nil)
		f.snapshotRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateSnapshot)

		_, err := f.uc.Save(ctx, 10)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
	})

	t.Run("Jobseekers cannot save snapshots", func(t *testing.T) {
		f := newSnapshotFixture()
		_, err := f.uc.Save(jobseekerCtx("acc-1"), 10)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requires the employer role")
	})
}

func TestSnapshotOwnership(t *testing.T) {
	ctx := employerCtx("emp-1")

	t.Run("Reading someone else's snapshot is forbidden", func(t *testing.T) {
		f := newSnapshotFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)
		f.snapshotRepo.On("GetByID", ctx, int64(99)).Return(&domain.EmployerSavedSnapshot{ID: 99, EmployerID: 42}, nil)

		_, err := f.uc.Get(ctx, 99)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("Deleting a snapshot scoped to another employer is not found", func(t *testing.T) {
		f := newSnapshotFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)
		f.snapshotRepo.On("Delete", ctx, int64(99), int64(7)).Return(false, nil)

		err := f.uc.Delete(ctx, 99)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("Delete leaves the live CV untouched", func(t *testing.T) {
		f := newSnapshotFixture()
		f.employerRepo.On("GetByAccountID", ctx, "emp-1").Return(verifiedEmployer(), nil)
		f.snapshotRepo.On("Delete", ctx, int64(5), int64(7)).Return(true, nil)

		assert.NoError(t, f.uc.Delete(ctx, 5))
		f.jobseekerRepo.AssertNotCalled(t, "DeleteSection", mock.Anything, mock.Anything, mock.Anything)
		f.jobseekerRepo.AssertNotCalled(t, "WriteSections", mock.Anything, mock.Anything, mock.Anything)
	})
}
