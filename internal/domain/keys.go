package domain

// CtxKey is the type for request-scoped identity values set by the auth
// middleware and read by usecases.
type CtxKey string

const (
	KeyAccountID CtxKey = "AccountID"
	KeyEmail     CtxKey = "Email"
	KeyRole      CtxKey = "Role"
)
