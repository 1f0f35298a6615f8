package loan

import "context"

// Repository is the ledger store. Lookups return unordered sets; ordering
// is the caller's job. Delete is unconditional; authorization happens in
// the usecase, not here.
type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction. Only meaningful inside a UoW.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByLenderID(ctx context.Context, accountID string) ([]Loan, error)
	ListByBorrowerID(ctx context.Context, accountID string) ([]Loan, error)
	ListByBorrowerName(ctx context.Context, name string) ([]Loan, error)
	AppendPayment(ctx context.Context, p *Payment) error
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, loanID string) error
}
