package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for unique constraint failures
const uniqueViolation = "23505"

type snapshotRepository struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *domain.EmployerSavedSnapshot) error {
	content, err := json.Marshal(snapshot.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot content: %w", err)
	}

	query := `
		INSERT INTO employer_saved_snapshots (employer_id, jobseeker_id, cv_id, snapshot_version, content, saved_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, saved_at`

	err = r.db.QueryRow(ctx, query,
		snapshot.EmployerID, snapshot.JobseekerID, snapshot.CVID, snapshot.SnapshotVersion, content,
	).Scan(&snapshot.ID, &snapshot.SavedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateSnapshot
		}
		return err
	}
	return nil
}

func (r *snapshotRepository) GetByID(ctx context.Context, id int64) (*domain.EmployerSavedSnapshot, error) {
	query := `
		SELECT id, employer_id, jobseeker_id, cv_id, snapshot_version, content, saved_at
		FROM employer_saved_snapshots WHERE id = $1`

	var s domain.EmployerSavedSnapshot
	var content []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.EmployerID, &s.JobseekerID, &s.CVID, &s.SnapshotVersion, &content, &s.SavedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(content, &s.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot content: %w", err)
	}
	return &s, nil
}

func (r *snapshotRepository) ListByEmployer(ctx context.Context, employerID int64) ([]domain.EmployerSavedSnapshot, error) {
	query := `
		SELECT id, employer_id, jobseeker_id, cv_id, snapshot_version, content, saved_at
		FROM employer_saved_snapshots WHERE employer_id = $1 ORDER BY saved_at DESC`

	rows, err := r.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []domain.EmployerSavedSnapshot{}
	for rows.Next() {
		var s domain.EmployerSavedSnapshot
		var content []byte
		err := rows.Scan(&s.ID, &s.EmployerID, &s.JobseekerID, &s.CVID, &s.SnapshotVersion, &content, &s.SavedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(content, &s.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot content: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// Delete is scoped to the owning employer so ownership is enforced in the
// same statement.
func (r *snapshotRepository) Delete(ctx context.Context, id int64, employerID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM employer_saved_snapshots WHERE id = $1 AND employer_id = $2`, id, employerID)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}
