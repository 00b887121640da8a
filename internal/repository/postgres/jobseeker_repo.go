package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobseekerRepository struct {
	db *pgxpool.Pool
}

func NewJobSeekerRepository(db *pgxpool.Pool) domain.JobSeekerRepository {
	return &jobseekerRepository{db: db}
}

const profileColumns = `id, account_id, full_name, city, desired_role, bio, years_experience, age, phone, status, completeness, skills, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.JobSeekerProfile, error) {
	var p domain.JobSeekerProfile
	err := row.Scan(
		&p.ID, &p.AccountID, &p.FullName, &p.City, &p.DesiredRole, &p.Bio,
		&p.YearsExperience, &p.Age, &p.Phone, &p.Status, &p.Completeness,
		pq.Array(&p.Skills), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *jobseekerRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.JobSeekerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM job_seeker_profiles WHERE account_id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, accountID))
}

func (r *jobseekerRepository) GetByID(ctx context.Context, id int64) (*domain.JobSeekerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM job_seeker_profiles WHERE id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, id))
}

// Create inserts the profile together with its empty CV document so the 1:1
// pairing can never be observed half-made.
func (r *jobseekerRepository) Create(ctx context.Context, profile *domain.JobSeekerProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertProfile := `
		INSERT INTO job_seeker_profiles (account_id, full_name, city, desired_role, bio, years_experience, age, phone, status, completeness, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, insertProfile,
		profile.AccountID, profile.FullName, profile.City, profile.DesiredRole, profile.Bio,
		profile.YearsExperience, profile.Age, profile.Phone, domain.ProfileStatusDraft, profile.Completeness,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	profile.Status = domain.ProfileStatusDraft

	if _, err := tx.Exec(ctx, `INSERT INTO cv_documents (profile_id, version, updated_at) VALUES ($1, 0, NOW())`, profile.ID); err != nil {
		return fmt.Errorf("failed to insert cv document: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *jobseekerRepository) UpdateDisplay(ctx context.Context, profile *domain.JobSeekerProfile) error {
	query := `
		UPDATE job_seeker_profiles SET
			full_name = $1, city = $2, desired_role = $3, bio = $4,
			years_experience = $5, age = $6, phone = $7, completeness = $8,
			updated_at = NOW()
		WHERE id = $9`

	_, err := r.db.Exec(ctx, query,
		profile.FullName, profile.City, profile.DesiredRole, profile.Bio,
		profile.YearsExperience, profile.Age, profile.Phone, profile.Completeness,
		profile.ID,
	)
	return err
}

// SetStatus is the single conditional write behind toggleVisibility. Lock
// state is derived from this one field, so there is no second flag to sync.
func (r *jobseekerRepository) SetStatus(ctx context.Context, profileID int64, status string) error {
	query := `UPDATE job_seeker_profiles SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, profileID)
	return err
}

func (r *jobseekerRepository) GetCV(ctx context.Context, profileID int64) (*domain.CVDocument, error) {
	query := `
		SELECT d.id, d.profile_id, d.version, p.status = 'published', d.updated_at
		FROM cv_documents d
		JOIN job_seeker_profiles p ON p.id = d.profile_id
		WHERE d.profile_id = $1`
	return r.fetchCV(ctx, query, profileID)
}

func (r *jobseekerRepository) GetCVByID(ctx context.Context, cvID int64) (*domain.CVDocument, error) {
	query := `
		SELECT d.id, d.profile_id, d.version, p.status = 'published', d.updated_at
		FROM cv_documents d
		JOIN job_seeker_profiles p ON p.id = d.profile_id
		WHERE d.id = $1`
	return r.fetchCV(ctx, query, cvID)
}

func (r *jobseekerRepository) fetchCV(ctx context.Context, query string, arg any) (*domain.CVDocument, error) {
	var cv domain.CVDocument
	err := r.db.QueryRow(ctx, query, arg).Scan(&cv.ID, &cv.ProfileID, &cv.Version, &cv.Locked, &cv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sectionsQuery := `
		SELECT id, cv_id, type, position, content, updated_at
		FROM cv_sections WHERE cv_id = $1 ORDER BY position ASC`
	rows, err := r.db.Query(ctx, sectionsQuery, cv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sections: %w", err)
	}
	defer rows.Close()

	cv.Sections = []domain.CVSection{}
	for rows.Next() {
		var s domain.CVSection
		if err := rows.Scan(&s.ID, &s.CVID, &s.Type, &s.Position, &s.Content, &s.UpdatedAt); err != nil {
			return nil, err
		}
		cv.Sections = append(cv.Sections, s)
	}
	return &cv, rows.Err()
}

// WriteSections bumps the version once and upserts every section in a single
// transaction. The bump is conditioned on the owning profile still being in
// draft, which is what makes a racing publish unable to let a write through.
func (r *jobseekerRepository) WriteSections(ctx context.Context, cvID int64, sections []domain.CVSection) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	newVersion, err := bumpVersionIfUnlocked(ctx, tx, cvID)
	if err != nil {
		return 0, err
	}

	upsert := `
		INSERT INTO cv_sections (cv_id, type, position, content, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (cv_id, type)
		DO UPDATE SET position = EXCLUDED.position, content = EXCLUDED.content, updated_at = NOW()`

	for _, s := range sections {
		if _, err := tx.Exec(ctx, upsert, cvID, s.Type, s.Position, s.Content); err != nil {
			return 0, fmt.Errorf("failed to upsert section %s: %w", s.Type, err)
		}
	}

	if err := syncSkillsColumn(ctx, tx, cvID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newVersion, nil
}

func (r *jobseekerRepository) DeleteSection(ctx context.Context, cvID int64, sectionType string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	newVersion, err := bumpVersionIfUnlocked(ctx, tx, cvID)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cv_sections WHERE cv_id = $1 AND type = $2`, cvID, sectionType); err != nil {
		return 0, err
	}

	if err := syncSkillsColumn(ctx, tx, cvID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newVersion, nil
}

// syncSkillsColumn refreshes the denormalized skills array on the profile from
// the current skills section, or clears it when the section is gone. Runs in
// the same transaction as the section write.
func syncSkillsColumn(ctx context.Context, tx pgx.Tx, cvID int64) error {
	query := `
		UPDATE job_seeker_profiles p
		SET skills = COALESCE((
			SELECT array_agg(elem)
			FROM cv_sections s, jsonb_array_elements_text(s.content->'skills') AS elem
			WHERE s.cv_id = d.id AND s.type = 'skills'
		), '{}')
		FROM cv_documents d
		WHERE d.id = $1 AND p.id = d.profile_id`
	_, err := tx.Exec(ctx, query, cvID)
	return err
}

func bumpVersionIfUnlocked(ctx context.Context, tx pgx.Tx, cvID int64) (int64, error) {
	bump := `
		UPDATE cv_documents d SET version = d.version + 1, updated_at = NOW()
		FROM job_seeker_profiles p
		WHERE d.id = $1 AND p.id = d.profile_id AND p.status = 'draft'
		RETURNING d.version`

	var newVersion int64
	if err := tx.QueryRow(ctx, bump, cvID).Scan(&newVersion); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// CVs are never deleted, so a failed condition means the profile
			// is published
			return 0, domain.ErrCVLocked
		}
		return 0, err
	}
	return newVersion, nil
}

func (r *jobseekerRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.JobSeekerProfile, int64, error) {
	// Build query dynamically; only published profiles are discoverable
	baseQuery := `SELECT ` + profileColumns + ` FROM job_seeker_profiles WHERE status = 'published'`
	countQuery := `SELECT COUNT(*) FROM job_seeker_profiles WHERE status = 'published'`

	args := []interface{}{}
	argCounter := 1

	addCond := func(cond string, value interface{}) {
		clause := fmt.Sprintf(" AND "+cond, argCounter)
		baseQuery += clause
		countQuery += clause
		args = append(args, value)
		argCounter++
	}

	if filter.City != "" {
		addCond("city ILIKE $%d", "%"+filter.City+"%")
	}
	if filter.Role != "" {
		addCond("desired_role ILIKE $%d", "%"+filter.Role+"%")
	}
	if filter.MinYears > 0 {
		addCond("years_experience >= $%d", filter.MinYears)
	}
	if len(filter.Skills) > 0 {
		addCond("skills @> $%d", pq.Array(filter.Skills))
	}
	if filter.MinAge > 0 {
		addCond("age >= $%d", filter.MinAge)
	}
	if filter.MaxAge > 0 {
		addCond("age <= $%d", filter.MaxAge)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	baseQuery += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := r.db.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := []domain.JobSeekerProfile{}
	for rows.Next() {
		var p domain.JobSeekerProfile
		err := rows.Scan(
			&p.ID, &p.AccountID, &p.FullName, &p.City, &p.DesiredRole, &p.Bio,
			&p.YearsExperience, &p.Age, &p.Phone, &p.Status, &p.Completeness,
			pq.Array(&p.Skills), &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}
