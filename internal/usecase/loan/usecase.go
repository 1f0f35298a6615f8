package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "moneylending-backend/internal/domain/loan"
	"moneylending-backend/internal/domain/uow"
	"moneylending-backend/internal/usecase/identity"
	"moneylending-backend/pkg/id"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Actor is the caller's identity as the ledger sees it. Role is computed
// per record from it, never stored on the user.
type Actor struct {
	AccountID   string
	DisplayName string
}

type Role string

const (
	RoleLender   Role = "lender"
	RoleBorrower Role = "borrower"
)

type Usecase struct {
	repo     domain.Repository
	resolver *identity.Resolver
	uow      uow.UnitOfWork

	// now is a hook for tests; zero value means time.Now.
	now func() time.Time
}

func NewUsecase(repo domain.Repository, resolver *identity.Resolver, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, resolver: resolver, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

type CreateLoanInput struct {
	BorrowerName string
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
	StartDate    time.Time
	DueDate      time.Time
	Description  string
}

type AddPaymentInput struct {
	Amount decimal.Decimal
	Date   time.Time
	Notes  string
}

// UpdatePatch carries optional replacements; nil means leave unchanged.
// A Status here applies immediately but is not sticky: the next payment
// mutation re-derives and can overwrite it.
type UpdatePatch struct {
	BorrowerName *string
	Principal    *decimal.Decimal
	InterestRate *decimal.Decimal
	StartDate    *time.Time
	DueDate      *time.Time
	Description  *string
	Status       *domain.Status
}

type PaymentDTO struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	LenderID        string          `json:"lender_id"`
	BorrowerName    string          `json:"borrower_name"`
	BorrowerID      string          `json:"borrower_id,omitempty"`
	Principal       decimal.Decimal `json:"principal"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	StartDate       time.Time       `json:"start_date"`
	DueDate         time.Time       `json:"due_date"`
	Status          string          `json:"status"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Description     string          `json:"description,omitempty"`
	Payments        []PaymentDTO    `json:"payments"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	ps := make([]PaymentDTO, 0, len(l.Payments))
	for _, p := range l.Payments {
		ps = append(ps, PaymentDTO{PaymentID: p.PaymentID, Amount: p.Amount, Date: p.Date, Notes: p.Notes})
	}
	return &LoanDTO{
		LoanID:          l.LoanID,
		LenderID:        l.LenderID,
		BorrowerName:    l.BorrowerName,
		BorrowerID:      l.BorrowerID,
		Principal:       l.Principal,
		InterestRate:    l.InterestRate,
		StartDate:       l.StartDate,
		DueDate:         l.DueDate,
		Status:          string(l.Status),
		TotalPaid:       l.TotalPaid,
		RemainingAmount: l.RemainingAmount,
		Description:     l.Description,
		Payments:        ps,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// storeErr translates repository failures into the ledger taxonomy.
func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func validateCreate(in CreateLoanInput) error {
	switch {
	case in.BorrowerName == "":
		return domain.Invalid("borrower_name", "is required")
	case in.Principal.LessThanOrEqual(decimal.Zero):
		return domain.Invalid("principal", "must be positive")
	case in.InterestRate.IsNegative():
		return domain.Invalid("interest_rate", "must not be negative")
	case in.StartDate.IsZero():
		return domain.Invalid("start_date", "is required")
	case in.DueDate.IsZero():
		return domain.Invalid("due_date", "is required")
	}
	return nil
}

// Create records a new loan. Borrower resolution is best effort: a name
// with no matching account leaves the reference empty and the record is
// still valid. No lock is taken; an account registered concurrently stays
// unmatched until the next borrower_name update.
func (u *Usecase) Create(ctx context.Context, actor Actor, in CreateLoanInput) (*LoanDTO, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	borrowerID := ""
	match, err := u.resolver.Resolve(ctx, in.BorrowerName)
	if err != nil {
		return nil, err
	}
	if match != nil {
		borrowerID = match.AccountID
	}

	l := &domain.Loan{
		LoanID:          id.NewID32(),
		LenderID:        actor.AccountID,
		BorrowerName:    in.BorrowerName,
		BorrowerID:      borrowerID,
		Principal:       in.Principal,
		InterestRate:    in.InterestRate,
		StartDate:       in.StartDate.UTC(),
		DueDate:         in.DueDate.UTC(),
		Status:          domain.StatusActive,
		TotalPaid:       decimal.Zero,
		RemainingAmount: in.Principal,
		Description:     in.Description,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, storeErr(err)
	}
	return toDTO(l), nil
}

// Get returns a loan to a caller holding either role on it.
func (u *Usecase) Get(ctx context.Context, actor Actor, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !l.IsLender(actor.AccountID) && !l.IsBorrower(actor.AccountID, actor.DisplayName) {
		return nil, domain.ErrUnauthorized
	}
	return toDTO(l), nil
}

// AddPayment appends a payment and re-derives totals and status inside a
// row-locked transaction. Two identical calls create two payments; there
// is deliberately no idempotency at this layer.
func (u *Usecase) AddPayment(ctx context.Context, actor Actor, loanID string, in AddPaymentInput) (*LoanDTO, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Invalid("amount", "must be positive")
	}
	if in.Date.IsZero() {
		return nil, domain.Invalid("date", "is required")
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.IsLender(actor.AccountID) && !l.IsBorrower(actor.AccountID, actor.DisplayName) {
			return domain.ErrUnauthorized
		}
		p := domain.Payment{
			PaymentID: uuid.NewString(),
			LoanRowID: l.ID,
			Amount:    in.Amount,
			Date:      in.Date.UTC(),
			Notes:     in.Notes,
		}
		if err := r.Loans.AppendPayment(ctx, &p); err != nil {
			return err
		}
		l.Payments = append(l.Payments, p)
		l.Rederive(u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}
	return dto, nil
}

// UpdateFields replaces core fields. Lender only. A borrower name in the
// patch is re-resolved, same value or not: a match sets the borrower
// reference, a miss clears it, so the reference is never left pointing at
// a name-mismatched account.
func (u *Usecase) UpdateFields(ctx context.Context, actor Actor, loanID string, patch UpdatePatch) (*LoanDTO, error) {
	if patch.Principal != nil && patch.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Invalid("principal", "must be positive")
	}
	if patch.InterestRate != nil && patch.InterestRate.IsNegative() {
		return nil, domain.Invalid("interest_rate", "must not be negative")
	}
	if patch.BorrowerName != nil && *patch.BorrowerName == "" {
		return nil, domain.Invalid("borrower_name", "is required")
	}
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, domain.Invalid("status", "unknown value")
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.IsLender(actor.AccountID) {
			return domain.ErrUnauthorized
		}

		// Presence of the name in the patch triggers resolution even when
		// the value is unchanged: resubmitting the same name is how a loan
		// written before the borrower registered picks up the reference.
		if patch.BorrowerName != nil {
			l.BorrowerName = *patch.BorrowerName
			match, err := u.resolver.Resolve(ctx, l.BorrowerName)
			if err != nil {
				return err
			}
			if match != nil {
				l.BorrowerID = match.AccountID
			} else {
				l.BorrowerID = ""
			}
		}
		if patch.Principal != nil {
			l.Principal = *patch.Principal
		}
		if patch.InterestRate != nil {
			l.InterestRate = *patch.InterestRate
		}
		if patch.StartDate != nil {
			l.StartDate = patch.StartDate.UTC()
		}
		if patch.DueDate != nil {
			l.DueDate = patch.DueDate.UTC()
		}
		if patch.Description != nil {
			l.Description = *patch.Description
		}
		if patch.Status != nil {
			l.Status = *patch.Status
		}

		// Keep the balance invariant even when principal moved; only a
		// payment mutation runs the full status derivation.
		l.RemainingAmount = l.Principal.Sub(l.TotalPaid)
		if l.RemainingAmount.LessThanOrEqual(decimal.Zero) {
			l.Status = domain.StatusCompleted
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}
	return dto, nil
}

// ForceStatus is the explicit administrative override of the derived
// status. It is ephemeral: the next payment mutation re-derives and can
// overwrite it.
func (u *Usecase) ForceStatus(ctx context.Context, actor Actor, loanID string, status domain.Status) (*LoanDTO, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.Invalid("status", "unknown value")
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.IsLender(actor.AccountID) {
			return domain.ErrUnauthorized
		}
		l.Status = status
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}
	return dto, nil
}

// Delete removes the record entirely. Lender only.
func (u *Usecase) Delete(ctx context.Context, actor Actor, loanID string) error {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return storeErr(err)
	}
	if !l.IsLender(actor.AccountID) {
		return domain.ErrUnauthorized
	}
	if err := u.repo.Delete(ctx, loanID); err != nil {
		return storeErr(err)
	}
	return nil
}

// txErr keeps taxonomy errors intact and classifies everything else as a
// store fault.
func txErr(err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotFound), errors.As(err, &ve):
		return err
	default:
		return storeErr(err)
	}
}
