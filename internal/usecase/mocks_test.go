package usecase_test

import (
	"context"
	"time"

	"go-talentmatch-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

type MockJobSeekerRepo struct {
	mock.Mock
}

func (m *MockJobSeekerRepo) GetByAccountID(ctx context.Context, accountID string) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockJobSeekerRepo) GetByID(ctx context.Context, id int64) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockJobSeekerRepo) Create(ctx context.Context, profile *domain.JobSeekerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockJobSeekerRepo) UpdateDisplay(ctx context.Context, profile *domain.JobSeekerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockJobSeekerRepo) SetStatus(ctx context.Context, profileID int64, status string) error {
	return m.Called(ctx, profileID, status).Error(0)
}

func (m *MockJobSeekerRepo) GetCV(ctx context.Context, profileID int64) (*domain.CVDocument, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockJobSeekerRepo) GetCVByID(ctx context.Context, cvID int64) (*domain.CVDocument, error) {
	args := m.Called(ctx, cvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockJobSeekerRepo) WriteSections(ctx context.Context, cvID int64, sections []domain.CVSection) (int64, error) {
	args := m.Called(ctx, cvID, sections)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobSeekerRepo) DeleteSection(ctx context.Context, cvID int64, sectionType string) (int64, error) {
	args := m.Called(ctx, cvID, sectionType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobSeekerRepo) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.JobSeekerProfile, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.JobSeekerProfile), args.Get(1).(int64), args.Error(2)
}

type MockEmployerRepo struct {
	mock.Mock
}

func (m *MockEmployerRepo) GetByAccountID(ctx context.Context, accountID string) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockEmployerRepo) GetByID(ctx context.Context, id int64) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockEmployerRepo) Create(ctx context.Context, profile *domain.EmployerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockEmployerRepo) UpdateDisplay(ctx context.Context, profile *domain.EmployerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockEmployerRepo) UpdateVerification(ctx context.Context, id int64, status string, notes *string, date *time.Time) error {
	return m.Called(ctx, id, status, notes, date).Error(0)
}

func (m *MockEmployerRepo) List(ctx context.Context, filter domain.EmployerFilter) ([]domain.EmployerProfile, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.EmployerProfile), args.Get(1).(int64), args.Error(2)
}

type MockSnapshotRepo struct {
	mock.Mock
}

func (m *MockSnapshotRepo) Create(ctx context.Context, snapshot *domain.EmployerSavedSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *MockSnapshotRepo) GetByID(ctx context.Context, id int64) (*domain.EmployerSavedSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerSavedSnapshot), args.Error(1)
}

func (m *MockSnapshotRepo) ListByEmployer(ctx context.Context, employerID int64) ([]domain.EmployerSavedSnapshot, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployerSavedSnapshot), args.Error(1)
}

func (m *MockSnapshotRepo) Delete(ctx context.Context, id int64, employerID int64) (bool, error) {
	args := m.Called(ctx, id, employerID)
	return args.Bool(0), args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, request *domain.InterviewRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.InterviewRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) HasActiveRequest(ctx context.Context, employerID, jobseekerID int64) (bool, error) {
	args := m.Called(ctx, employerID, jobseekerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterviewRepo) Respond(ctx context.Context, id int64, status string, message *string, respondedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, status, message, respondedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterviewRepo) TransitionStatus(ctx context.Context, id int64, from, to string) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterviewRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInterviewRepo) ListByEmployer(ctx context.Context, employerID int64) ([]domain.InterviewRequest, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) ListByJobseeker(ctx context.Context, jobseekerID int64) ([]domain.InterviewRequest, error) {
	args := m.Called(ctx, jobseekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRequest), args.Error(1)
}

// MockNotifier records notices synchronously so tests can assert on them
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) InterviewRequested(n domain.InterviewRequestedNotice) {
	m.Called(n)
}

func (m *MockNotifier) InterviewResponded(n domain.InterviewRespondedNotice) {
	m.Called(n)
}

func (m *MockNotifier) SnapshotSaved(n domain.SnapshotSavedNotice) {
	m.Called(n)
}

// Context helpers

func jobseekerCtx(accountID string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyAccountID, accountID)
	return context.WithValue(ctx, domain.KeyRole, domain.RoleJobseeker)
}

func employerCtx(accountID string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyAccountID, accountID)
	return context.WithValue(ctx, domain.KeyRole, domain.RoleEmployer)
}

func adminCtx(accountID string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyAccountID, accountID)
	return context.WithValue(ctx, domain.KeyRole, domain.RoleAdmin)
}
