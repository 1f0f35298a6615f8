package mysql

import (
	"context"

	loanDomain "moneylending-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// payments are preloaded in append order (row id), not payment date
func withPayments(db *gorm.DB) *gorm.DB {
	return db.Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") })
}

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

// Save writes the loan row only; payment rows are inserted through
// AppendPayment and never rewritten here.
func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := withPayments(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate locks the loan row; callers must be inside a
// transaction or the lock is released immediately. sqlite (tests) has no
// row locks and serializes writers on its own, so the clause is skipped.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	tx := withPayments(r.db.WithContext(ctx))
	if r.db.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := tx.Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByLenderID(ctx context.Context, accountID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := withPayments(r.db.WithContext(ctx)).Where("lender_id = ?", accountID).Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByBorrowerID(ctx context.Context, accountID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := withPayments(r.db.WithContext(ctx)).Where("borrower_id = ?", accountID).Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByBorrowerName(ctx context.Context, name string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := withPayments(r.db.WithContext(ctx)).Where("borrower_name = ?", name).Find(&out)
	return out, res.Error
}

func (r *LoanRepository) AppendPayment(ctx context.Context, p *loanDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Delete removes the loan and its payment rows unconditionally; the
// usecase enforces who may call it.
func (r *LoanRepository) Delete(ctx context.Context, loanID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l loanDomain.Loan
		if err := tx.Where("loan_id = ?", loanID).First(&l).Error; err != nil {
			return err
		}
		if err := tx.Where("loan_row_id = ?", l.ID).Delete(&loanDomain.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&l).Error
	})
}
