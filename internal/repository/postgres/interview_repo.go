package postgres

import (
	"context"
	"errors"
	"time"

	"go-talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepository struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepository{db: db}
}

const interviewColumns = `id, employer_id, jobseeker_id, status, proposed_date, location, interview_type, message, response_message, responded_at, created_at, updated_at`

func scanInterview(row pgx.Row) (*domain.InterviewRequest, error) {
	var req domain.InterviewRequest
	err := row.Scan(
		&req.ID, &req.EmployerID, &req.JobseekerID, &req.Status,
		&req.ProposedDate, &req.Location, &req.InterviewType, &req.Message,
		&req.ResponseMessage, &req.RespondedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// Create relies on the partial unique index over (employer_id, jobseeker_id)
// for in-flight statuses: the usecase pre-checks for a friendly error, the
// index is the backstop against two tabs racing.
func (r *interviewRepository) Create(ctx context.Context, request *domain.InterviewRequest) error {
	query := `
		INSERT INTO interview_requests (employer_id, jobseeker_id, status, proposed_date, location, interview_type, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		request.EmployerID, request.JobseekerID, domain.InterviewStatusPending,
		request.ProposedDate, request.Location, request.InterviewType, request.Message,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateInterview
		}
		return err
	}
	request.Status = domain.InterviewStatusPending
	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id int64) (*domain.InterviewRequest, error) {
	query := `SELECT ` + interviewColumns + ` FROM interview_requests WHERE id = $1`
	return scanInterview(r.db.QueryRow(ctx, query, id))
}

func (r *interviewRepository) HasActiveRequest(ctx context.Context, employerID, jobseekerID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM interview_requests
			WHERE employer_id = $1 AND jobseeker_id = $2 AND status IN ('pending', 'accepted')
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, employerID, jobseekerID).Scan(&exists)
	return exists, err
}

func (r *interviewRepository) Respond(ctx context.Context, id int64, status string, message *string, respondedAt time.Time) (bool, error) {
	query := `
		UPDATE interview_requests SET
			status = $1, response_message = $2, responded_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'`

	cmdTag, err := r.db.Exec(ctx, query, status, message, respondedAt, id)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *interviewRepository) TransitionStatus(ctx context.Context, id int64, from, to string) (bool, error) {
	query := `UPDATE interview_requests SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	cmdTag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *interviewRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM interview_requests WHERE id = $1`, id)
	return err
}

func (r *interviewRepository) ListByEmployer(ctx context.Context, employerID int64) ([]domain.InterviewRequest, error) {
	query := `SELECT ` + interviewColumns + ` FROM interview_requests WHERE employer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, employerID)
}

func (r *interviewRepository) ListByJobseeker(ctx context.Context, jobseekerID int64) ([]domain.InterviewRequest, error) {
	query := `SELECT ` + interviewColumns + ` FROM interview_requests WHERE jobseeker_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, jobseekerID)
}

func (r *interviewRepository) list(ctx context.Context, query string, arg any) ([]domain.InterviewRequest, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.InterviewRequest{}
	for rows.Next() {
		var req domain.InterviewRequest
		err := rows.Scan(
			&req.ID, &req.EmployerID, &req.JobseekerID, &req.Status,
			&req.ProposedDate, &req.Location, &req.InterviewType, &req.Message,
			&req.ResponseMessage, &req.RespondedAt, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
