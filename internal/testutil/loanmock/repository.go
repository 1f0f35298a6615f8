package loanmock

import (
	"context"

	domain "moneylending-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookup funcs behave like an empty store.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByLenderIDFn       func(ctx context.Context, accountID string) ([]domain.Loan, error)
	ListByBorrowerIDFn     func(ctx context.Context, accountID string) ([]domain.Loan, error)
	ListByBorrowerNameFn   func(ctx context.Context, name string) ([]domain.Loan, error)
	AppendPaymentFn        func(ctx context.Context, p *domain.Payment) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	DeleteFn               func(ctx context.Context, loanID string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLenderID(ctx context.Context, accountID string) ([]domain.Loan, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, accountID)
	}
	return nil, nil
}

func (m *Repo) ListByBorrowerID(ctx context.Context, accountID string) ([]domain.Loan, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, accountID)
	}
	return nil, nil
}

func (m *Repo) ListByBorrowerName(ctx context.Context, name string) ([]domain.Loan, error) {
	if m.ListByBorrowerNameFn != nil {
		return m.ListByBorrowerNameFn(ctx, name)
	}
	return nil, nil
}

func (m *Repo) AppendPayment(ctx context.Context, p *domain.Payment) error {
	if m.AppendPaymentFn != nil {
		return m.AppendPaymentFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, loanID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, loanID)
	}
	return nil
}
