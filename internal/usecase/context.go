package usecase

import (
	"context"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
)

// ctxString reads a context value set either under the Gin string key (from
// c.Set) or the typed CtxKey (from context.WithValue). The auth middleware
// sets both; tests usually set the typed key.
func ctxString(ctx context.Context, key domain.CtxKey) string {
	if v, ok := ctx.Value(string(key)).(string); ok && v != "" {
		return v
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func accountIDFromContext(ctx context.Context) (string, error) {
	id := ctxString(ctx, domain.KeyAccountID)
	if id == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return id, nil
}

func roleFromContext(ctx context.Context) string {
	return ctxString(ctx, domain.KeyRole)
}

func requireRole(ctx context.Context, role string) (string, error) {
	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return "", err
	}
	if roleFromContext(ctx) != role {
		return "", apperror.Forbidden("This action requires the " + role + " role")
	}
	return accountID, nil
}

func requireAdmin(ctx context.Context) error {
	if roleFromContext(ctx) != domain.RoleAdmin {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}
