package mysql

import (
	"context"
	"errors"

	accountDomain "moneylending-backend/internal/domain/account"

	"gorm.io/gorm"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return accountDomain.ErrTaken
	}
	return err
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) getBy(ctx context.Context, query string, arg string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	err := r.db.WithContext(ctx).Where(query, arg).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	return r.getBy(ctx, "account_id = ?", accountID)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *AccountRepository) GetByPhone(ctx context.Context, phone string) (*accountDomain.Account, error) {
	return r.getBy(ctx, "phone = ?", phone)
}
