package postgres

import (
	"context"
	"errors"

	"go-talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT id, email, role, created_at, updated_at FROM accounts WHERE id = $1`

	var a domain.Account
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Email, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT id, email, role, created_at, updated_at FROM accounts WHERE email = $1`

	var a domain.Account
	err := r.db.QueryRow(ctx, query, email).Scan(&a.ID, &a.Email, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO accounts (id, email, role, created_at, updated_at) VALUES ($1, $2, $3, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, account.ID, account.Email, account.Role)
	return err
}
