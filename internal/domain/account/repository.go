package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByPhone(ctx context.Context, phone string) (*Account, error)
	Save(ctx context.Context, a *Account) error
}

// Notifier delivers account-facing messages. Failures are logged by the
// caller and never roll back a committed write.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
