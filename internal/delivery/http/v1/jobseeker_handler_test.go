package v1_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "go-talentmatch-backend/internal/delivery/http/v1"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockJobSeekerUsecase struct {
	mock.Mock
}

func (m *MockJobSeekerUsecase) GetMyProfile(ctx context.Context) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockJobSeekerUsecase) UpdateMyProfile(ctx context.Context, profile *domain.JobSeekerProfile) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockJobSeekerUsecase) SetVisibility(ctx context.Context, visible bool) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, visible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockJobSeekerUsecase) GetMyCV(ctx context.Context) (*domain.CVDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockJobSeekerUsecase) WriteSection(ctx context.Context, input domain.SectionInput) (*domain.CVDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockJobSeekerUsecase) WriteSections(ctx context.Context, inputs []domain.SectionInput) (*domain.CVDocument, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockJobSeekerUsecase) DeleteSection(ctx context.Context, sectionType string) (*domain.CVDocument, error) {
	args := m.Called(ctx, sectionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func newJobseekerRouter(uc domain.JobSeekerUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1.NewJobseekerHandler(router.Group("/v1"), uc)
	return router
}

func TestUpdateProfilePrivateFields(t *testing.T) {
	// Phone and age are hidden on the entity, so the update endpoint binds a
	// dedicated request type. The whole round trip is asserted here: both
	// fields reach the usecase from the request body, and neither leaks back
	// out in the response.
	uc := new(MockJobSeekerUsecase)
	router := newJobseekerRouter(uc)

	var written *domain.JobSeekerProfile
	stored := &domain.JobSeekerProfile{
		ID:       1,
		FullName: "Jane Smith",
		City:     "Lagos",
		Status:   domain.ProfileStatusDraft,
		Phone:    "+15550001111",
		Age:      34,
	}
	uc.On("UpdateMyProfile", mock.Anything, mock.AnythingOfType("*domain.JobSeekerProfile")).
		Run(func(args mock.Arguments) {
			written = args.Get(1).(*domain.JobSeekerProfile)
		}).
		Return(stored, nil).Once()

	body := `{"full_name":"Jane Smith","city":"Lagos","desired_role":"Backend Engineer","bio":"Seven years building payment integrations.","years_experience":7,"age":34,"phone":"+15550001111"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/jobseekers/me", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("Phone and age reach the write path", func(t *testing.T) {
		if assert.NotNil(t, written) {
			assert.Equal(t, "+15550001111", written.Phone)
			assert.Equal(t, 34, written.Age)
			assert.Equal(t, "Jane Smith", written.FullName)
			assert.Equal(t, 7, written.YearsExperience)
		}
	})

	t.Run("Neither field serializes in the response", func(t *testing.T) {
		assert.NotContains(t, rec.Body.String(), "+15550001111")
		assert.NotContains(t, rec.Body.String(), `"phone"`)
		assert.NotContains(t, rec.Body.String(), `"age"`)
	})
}
