package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateSnapshot is returned by the repository when the unique
// (employer, cv, version) constraint rejects a second save of the same
// version.
var ErrDuplicateSnapshot = errors.New("snapshot already saved at this version")

// SnapshotProfile is the denormalized profile copy frozen into a snapshot.
// Private fields (age, phone) are never copied.
type SnapshotProfile struct {
	FullName        string `json:"full_name"`
	City            string `json:"city"`
	DesiredRole     string `json:"desired_role"`
	Bio             string `json:"bio"`
	YearsExperience int    `json:"years_experience"`
}

// SnapshotSection is one frozen section payload
type SnapshotSection struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
	Content  any    `json:"content"`
}

// SnapshotContent is the full frozen copy stored as one JSONB value
type SnapshotContent struct {
	Profile  SnapshotProfile   `json:"profile"`
	Sections []SnapshotSection `json:"sections"`
}

// EmployerSavedSnapshot is immutable once created. Delete is the only
// permitted destructive operation.
type EmployerSavedSnapshot struct {
	ID              int64           `json:"id"`
	EmployerID      int64           `json:"employer_id"`
	JobseekerID     int64           `json:"jobseeker_id"`
	CVID            int64           `json:"cv_id"`
	SnapshotVersion int64           `json:"snapshot_version"`
	Content         SnapshotContent `json:"content"`
	SavedAt         time.Time       `json:"saved_at"`
}

type SnapshotRepository interface {
	// Create inserts the snapshot, returning ErrDuplicateSnapshot when the
	// same (employer, cv, version) was already saved.
	Create(ctx context.Context, snapshot *EmployerSavedSnapshot) error
	GetByID(ctx context.Context, id int64) (*EmployerSavedSnapshot, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]EmployerSavedSnapshot, error)
	Delete(ctx context.Context, id int64, employerID int64) (bool, error)
}

type SnapshotUsecase interface {
	Save(ctx context.Context, cvID int64) (*EmployerSavedSnapshot, error)
	Get(ctx context.Context, id int64) (*EmployerSavedSnapshot, error)
	List(ctx context.Context) ([]EmployerSavedSnapshot, error)
	Delete(ctx context.Context, id int64) error
}
