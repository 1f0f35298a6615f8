package accountmock

import (
	"context"

	domain "moneylending-backend/internal/domain/account"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookup funcs behave like an empty directory.
type Repo struct {
	CreateFn         func(ctx context.Context, a *domain.Account) error
	GetByAccountIDFn func(ctx context.Context, accountID string) (*domain.Account, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*domain.Account, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.Account, error)
	GetByPhoneFn     func(ctx context.Context, phone string) (*domain.Account, error)
	SaveFn           func(ctx context.Context, a *domain.Account) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	if m.GetByPhoneFn != nil {
		return m.GetByPhoneFn(ctx, phone)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
