package uow

import (
	"context"

	"moneylending-backend/internal/domain/account"
	"moneylending-backend/internal/domain/loan"
)

type Repos struct {
	Loans    loan.Repository
	Accounts account.Repository
}

// UnitOfWork is the transaction boundary. WithinLoanTx is the per-record
// serialization point: it locks the loan row before handing it to fn, so
// concurrent read-modify-write sequences on the same loan id cannot lose
// updates. Operations on different loan ids proceed in parallel.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
