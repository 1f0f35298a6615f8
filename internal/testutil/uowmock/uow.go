package uowmock

import (
	"context"

	"moneylending-backend/internal/domain/loan"
	"moneylending-backend/internal/domain/uow"
)

// UoW runs callbacks directly against the given repos, with no real
// transaction. WithinLoanTx fetches through GetByLoanIDForUpdate so tests
// drive the same path production does.
type UoW struct {
	Repos uow.Repos
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (m *UoW) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(m.Repos)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	l, err := m.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(m.Repos, l)
}
