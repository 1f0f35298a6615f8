package identity

import (
	"context"
	"errors"
	"fmt"

	"moneylending-backend/internal/domain/account"
	"moneylending-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Resolver matches a free-text borrower identity to a directory account.
// Pure query, no side effects; absence of a match is a normal outcome
// (nil, nil), distinct from a store fault.
type Resolver struct{ accounts account.Repository }

func NewResolver(accounts account.Repository) *Resolver { return &Resolver{accounts: accounts} }

// Resolve looks up an account by exact display-name match.
func (r *Resolver) Resolve(ctx context.Context, name string) (*account.Account, error) {
	a, err := r.accounts.GetByUsername(ctx, name)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: resolve name %q: %v", loan.ErrStoreUnavailable, name, err)
	}
	return a, nil
}

// ResolveByContact looks up an account by its phone contact key.
func (r *Resolver) ResolveByContact(ctx context.Context, contact string) (*account.Account, error) {
	a, err := r.accounts.GetByPhone(ctx, contact)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: resolve contact %q: %v", loan.ErrStoreUnavailable, contact, err)
	}
	return a, nil
}
