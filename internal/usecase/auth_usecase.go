package usecase

import (
	"context"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
)

type authUsecase struct {
	accountRepo domain.AccountRepository
}

func NewAuthUsecase(accountRepo domain.AccountRepository) domain.AuthUsecase {
	return &authUsecase{accountRepo: accountRepo}
}

// GetCurrentUser resolves the account behind a validated token. The role
// always comes from the local table, never from the token claim, so admin
// reassignments take effect without reissuing tokens.
func (u *authUsecase) GetCurrentUser(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if account == nil {
		return nil, apperror.Unauthorized("Account not found")
	}
	return account, nil
}
