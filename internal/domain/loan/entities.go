package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	// StatusPending is a legal value in the schema but nothing in the
	// system ever produces it; creation goes straight to active.
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	// StatusDefaulted has no automatic trigger; it is only ever set by an
	// explicit administrative override.
	StatusDefaulted Status = "defaulted"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusOverdue, StatusDefaulted:
		return true
	}
	return false
}

// Loan is one lender-to-borrower loan with its payment history.
// BorrowerID is empty while the borrower name has no matching account;
// that is a supported permanent state, not an incomplete one.
type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	LenderID        string          `gorm:"size:32;index:idx_loans_lender" json:"lender_id"`
	BorrowerName    string          `gorm:"size:255;index:idx_loans_borrower_name" json:"borrower_name"`
	BorrowerID      string          `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id,omitempty"`
	Principal       decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(6,4)" json:"interest_rate"`
	StartDate       time.Time       `json:"start_date"`
	DueDate         time.Time       `json:"due_date"`
	Status          Status          `gorm:"type:enum('pending','active','completed','overdue','defaulted');default:'active'" json:"status"`
	TotalPaid       decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_paid"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"remaining_amount"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	Payments        []Payment       `gorm:"foreignKey:LoanRowID;references:ID;constraint:OnDelete:CASCADE" json:"payments"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Payment rows are append-only; no edit or delete operation exists.
// Order of appearance is append order (row id), not payment date.
type Payment struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string          `gorm:"size:36;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanRowID uint64          `gorm:"column:loan_row_id;index:idx_payments_loan" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Date      time.Time       `json:"date"`
	Notes     string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "loan_payments" }

// BorrowerIdentity is the dual identity of a borrower: a stable account
// reference once resolution has matched the name, otherwise just the
// free-text name.
type BorrowerIdentity struct {
	Ref  string
	Name string
}

func (b BorrowerIdentity) Resolved() bool { return b.Ref != "" }

func (l *Loan) Borrower() BorrowerIdentity {
	return BorrowerIdentity{Ref: l.BorrowerID, Name: l.BorrowerName}
}

func (l *Loan) IsLender(accountID string) bool {
	return accountID != "" && l.LenderID == accountID
}

// IsBorrower matches either form of the borrower identity: the resolved
// account reference, or the free-text name against the caller's display
// name (covers loans created before the borrower had an account).
func (l *Loan) IsBorrower(accountID, displayName string) bool {
	if l.BorrowerID != "" && accountID != "" && l.BorrowerID == accountID {
		return true
	}
	return displayName != "" && l.BorrowerName == displayName
}
