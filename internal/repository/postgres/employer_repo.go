package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type employerRepository struct {
	db *pgxpool.Pool
}

func NewEmployerRepository(db *pgxpool.Pool) domain.EmployerRepository {
	return &employerRepository{db: db}
}

const employerColumns = `id, account_id, employer_type, display_name, registration_number, national_id_number, verification_status, verification_notes, verification_date, created_at, updated_at`

func scanEmployer(row pgx.Row) (*domain.EmployerProfile, error) {
	var e domain.EmployerProfile
	err := row.Scan(
		&e.ID, &e.AccountID, &e.EmployerType, &e.DisplayName,
		&e.RegistrationNumber, &e.NationalIDNumber,
		&e.VerificationStatus, &e.VerificationNotes, &e.VerificationDate,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *employerRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.EmployerProfile, error) {
	query := `SELECT ` + employerColumns + ` FROM employer_profiles WHERE account_id = $1`
	return scanEmployer(r.db.QueryRow(ctx, query, accountID))
}

func (r *employerRepository) GetByID(ctx context.Context, id int64) (*domain.EmployerProfile, error) {
	query := `SELECT ` + employerColumns + ` FROM employer_profiles WHERE id = $1`
	return scanEmployer(r.db.QueryRow(ctx, query, id))
}

func (r *employerRepository) Create(ctx context.Context, profile *domain.EmployerProfile) error {
	query := `
		INSERT INTO employer_profiles (account_id, employer_type, display_name, registration_number, national_id_number, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.AccountID, profile.EmployerType, profile.DisplayName,
		profile.RegistrationNumber, profile.NationalIDNumber,
		domain.VerificationStatusPending,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return err
	}
	profile.VerificationStatus = domain.VerificationStatusPending
	return nil
}

func (r *employerRepository) UpdateDisplay(ctx context.Context, profile *domain.EmployerProfile) error {
	query := `
		UPDATE employer_profiles SET
			employer_type = $1, display_name = $2,
			registration_number = $3, national_id_number = $4,
			updated_at = NOW()
		WHERE id = $5`

	_, err := r.db.Exec(ctx, query,
		profile.EmployerType, profile.DisplayName,
		profile.RegistrationNumber, profile.NationalIDNumber,
		profile.ID,
	)
	return err
}

func (r *employerRepository) UpdateVerification(ctx context.Context, id int64, status string, notes *string, date *time.Time) error {
	query := `
		UPDATE employer_profiles SET
			verification_status = $1, verification_notes = $2, verification_date = $3,
			updated_at = NOW()
		WHERE id = $4`

	_, err := r.db.Exec(ctx, query, status, notes, date, id)
	return err
}

func (r *employerRepository) List(ctx context.Context, filter domain.EmployerFilter) ([]domain.EmployerProfile, int64, error) {
	// Build query dynamically
	baseQuery := `SELECT ` + employerColumns + ` FROM employer_profiles WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM employer_profiles WHERE 1=1`

	args := []interface{}{}
	argCounter := 1

	if filter.Status != "" {
		clause := fmt.Sprintf(" AND verification_status = $%d", argCounter)
		baseQuery += clause
		countQuery += clause
		args = append(args, filter.Status)
		argCounter++
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	baseQuery += fmt.Sprintf(" ORDER BY created_at ASC LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := r.db.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := []domain.EmployerProfile{}
	for rows.Next() {
		var e domain.EmployerProfile
		err := rows.Scan(
			&e.ID, &e.AccountID, &e.EmployerType, &e.DisplayName,
			&e.RegistrationNumber, &e.NationalIDNumber,
			&e.VerificationStatus, &e.VerificationNotes, &e.VerificationDate,
			&e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, e)
	}
	return profiles, total, rows.Err()
}
