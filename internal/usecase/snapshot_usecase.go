package usecase

import (
	"context"
	"encoding/json"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
)

type snapshotUsecase struct {
	snapshotRepo   domain.SnapshotRepository
	jobseekerRepo  domain.JobSeekerRepository
	employerRepo   domain.EmployerRepository
	accountRepo    domain.AccountRepository
	verificationUC domain.VerificationUsecase
	notifier       domain.Notifier
}

func NewSnapshotUsecase(
	snapshotRepo domain.SnapshotRepository,
	jobseekerRepo domain.JobSeekerRepository,
	employerRepo domain.EmployerRepository,
	accountRepo domain.AccountRepository,
	verificationUC domain.VerificationUsecase,
	notifier domain.Notifier,
) domain.SnapshotUsecase {
	return &snapshotUsecase{
		snapshotRepo:   snapshotRepo,
		jobseekerRepo:  jobseekerRepo,
		employerRepo:   employerRepo,
		accountRepo:    accountRepo,
		verificationUC: verificationUC,
		notifier:       notifier,
	}
}

// Save freezes an immutable copy of a visible CV at its current version. The
// same version cannot be saved twice; the unique index yields a conflict on
// the second attempt no matter how the calls race.
func (uc *snapshotUsecase) Save(ctx context.Context, cvID int64) (*domain.EmployerSavedSnapshot, error) {
	accountID, err := requireRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}
	employer, err := uc.verificationUC.RequireVerified(ctx, accountID)
	if err != nil {
		return nil, err
	}

	cv, err := uc.jobseekerRepo.GetCVByID(ctx, cvID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if cv == nil {
		return nil, apperror.NotFound("CV not found")
	}

	profile, err := uc.jobseekerRepo.GetByID(ctx, cv.ProfileID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// A hidden profile's CV is indistinguishable from an absent one to
	// employers
	if profile == nil || !profile.IsVisible() {
		return nil, apperror.NotFound("CV not found")
	}

	content := domain.SnapshotContent{
		Profile: domain.SnapshotProfile{
			FullName:        profile.FullName,
			City:            profile.City,
			DesiredRole:     profile.DesiredRole,
			Bio:             profile.Bio,
			YearsExperience: profile.YearsExperience,
		},
		Sections: make([]domain.SnapshotSection, 0, len(cv.Sections)),
	}
	for _, s := range cv.Sections {
		var payload any
		if err := json.Unmarshal(s.Content, &payload); err != nil {
			return nil, apperror.Internal(err)
		}
		content.Sections = append(content.Sections, domain.SnapshotSection{
			Type:     s.Type,
			Position: s.Position,
			Content:  payload,
		})
	}

	snapshot := &domain.EmployerSavedSnapshot{
		EmployerID:      employer.ID,
		JobseekerID:     profile.ID,
		CVID:            cv.ID,
		SnapshotVersion: cv.Version,
		Content:         content,
	}

	if err := uc.snapshotRepo.Create(ctx, snapshot); err != nil {
		if err == domain.ErrDuplicateSnapshot {
			return nil, apperror.Conflict("You already saved this CV at its current version")
		}
		return nil, apperror.Internal(err)
	}

	uc.notifySaved(ctx, profile, employer, snapshot)
	return snapshot, nil
}

func (uc *snapshotUsecase) Get(ctx context.Context, id int64) (*domain.EmployerSavedSnapshot, error) {
	employer, err := uc.ownEmployer(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if snapshot == nil {
		return nil, apperror.NotFound("Snapshot not found")
	}
	if snapshot.EmployerID != employer.ID {
		return nil, apperror.Forbidden("You can only view your own snapshots")
	}
	return snapshot, nil
}

func (uc *snapshotUsecase) List(ctx context.Context) ([]domain.EmployerSavedSnapshot, error) {
	employer, err := uc.ownEmployer(ctx)
	if err != nil {
		return nil, err
	}

	snapshots, err := uc.snapshotRepo.ListByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return snapshots, nil
}

func (uc *snapshotUsecase) Delete(ctx context.Context, id int64) error {
	employer, err := uc.ownEmployer(ctx)
	if err != nil {
		return err
	}

	deleted, err := uc.snapshotRepo.Delete(ctx, id, employer.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound("Snapshot not found")
	}
	return nil
}

func (uc *snapshotUsecase) ownEmployer(ctx context.Context) (*domain.EmployerProfile, error) {
	accountID, err := requireRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}
	employer, err := uc.employerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if employer == nil {
		return nil, apperror.NotFound("Employer profile not found")
	}
	return employer, nil
}

func (uc *snapshotUsecase) notifySaved(ctx context.Context, profile *domain.JobSeekerProfile, employer *domain.EmployerProfile, snapshot *domain.EmployerSavedSnapshot) {
	account, err := uc.accountRepo.GetByID(ctx, profile.AccountID)
	if err != nil || account == nil {
		return
	}
	uc.notifier.SnapshotSaved(domain.SnapshotSavedNotice{
		RecipientEmail: account.Email,
		JobseekerName:  profile.FullName,
		EmployerName:   employer.DisplayName,
		SavedAt:        snapshot.SavedAt,
	})
}
