package domain

import (
	"context"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
)

// TokenKey is the fixed storage key of the session token.
const TokenKey = "@token"

// TokenRepository persists the single session token. Saving an empty token clears it.
type TokenRepository interface {
	GetToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
}

// AuthAPI is the slice of the backend the session needs. *tradeapi.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*tradeapi.User, error)
}

type SessionUsecase interface {
	SetToken(ctx context.Context, token string) error
	GetToken(ctx context.Context) (string, error)
	VerifyToken(ctx context.Context, skew time.Duration) bool
	Login(ctx context.Context, email, password string) (*tradeapi.User, error)
	Authenticate(ctx context.Context, token string) bool
	Logout(ctx context.Context) error
	Init(ctx context.Context)
	User() *tradeapi.User
	IsChecked() bool
}
