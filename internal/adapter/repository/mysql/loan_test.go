package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "moneylending-backend/internal/domain/loan"
	"moneylending-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly loan schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	LoanID          string          `gorm:"size:32;column:loan_id"`
	LenderID        string          `gorm:"size:32;column:lender_id"`
	BorrowerName    string          `gorm:"size:255;column:borrower_name"`
	BorrowerID      string          `gorm:"size:32;column:borrower_id"`
	Principal       decimal.Decimal `gorm:"type:numeric;column:principal"`
	InterestRate    decimal.Decimal `gorm:"type:numeric;column:interest_rate"`
	StartDate       time.Time       `gorm:"column:start_date"`
	DueDate         time.Time       `gorm:"column:due_date"`
	Status          string          `gorm:"type:text;column:status"` // ← no enum
	TotalPaid       decimal.Decimal `gorm:"type:numeric;column:total_paid"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric;column:remaining_amount"`
	Description     string          `gorm:"column:description"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type paymentSQLite struct {
	ID        uint64          `gorm:"primaryKey;column:id"`
	PaymentID string          `gorm:"size:36;column:payment_id"`
	LoanRowID uint64          `gorm:"column:loan_row_id"`
	Amount    decimal.Decimal `gorm:"type:numeric;column:amount"`
	Date      time.Time       `gorm:"column:date"`
	Notes     string          `gorm:"column:notes"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (paymentSQLite) TableName() string { return "loan_payments" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schema, then the repositories run against the real models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &paymentSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, lenderID, borrowerName string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:          loanID,
		LenderID:        lenderID,
		BorrowerName:    borrowerName,
		Principal:       decimal.RequireFromString("1000.00"),
		InterestRate:    decimal.RequireFromString("0.05"),
		StartDate:       time.Now().UTC(),
		DueDate:         time.Now().UTC().AddDate(0, 1, 0),
		Status:          loanDomain.StatusActive,
		TotalPaid:       decimal.Zero,
		RemainingAmount: decimal.RequireFromString("1000.00"),
	}
}

func TestCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, id.NewID32(), "bob")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.BorrowerName != "bob" || got.Status != loanDomain.StatusActive {
		t.Fatalf("got %+v", got)
	}
	if !got.Principal.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("principal = %s", got.Principal)
	}
	if len(got.Payments) != 0 {
		t.Fatalf("fresh loan has %d payments", len(got.Payments))
	}

	if _, err := repo.GetByLoanID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrRecordNotFound", err)
	}
}

func TestAppendPayment_PreloadedInAppendOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32(), "bob")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// later date appended first: append order must win over date order
	later := time.Now().UTC().AddDate(0, 0, 5)
	earlier := time.Now().UTC()
	for i, p := range []loanDomain.Payment{
		{PaymentID: "p-1", LoanRowID: l.ID, Amount: decimal.RequireFromString("400"), Date: later},
		{PaymentID: "p-2", LoanRowID: l.ID, Amount: decimal.RequireFromString("600"), Date: earlier},
	} {
		p := p
		if err := repo.AppendPayment(ctx, &p); err != nil {
			t.Fatalf("AppendPayment %d: %v", i, err)
		}
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if len(got.Payments) != 2 {
		t.Fatalf("payments = %d, want 2", len(got.Payments))
	}
	if got.Payments[0].PaymentID != "p-1" || got.Payments[1].PaymentID != "p-2" {
		t.Fatalf("payments out of append order: %+v", got.Payments)
	}
}

func TestSave_DoesNotRewritePayments(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32(), "bob")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p := loanDomain.Payment{PaymentID: "p-1", LoanRowID: l.ID, Amount: decimal.RequireFromString("100"), Date: time.Now().UTC()}
	if err := repo.AppendPayment(ctx, &p); err != nil {
		t.Fatalf("AppendPayment: %v", err)
	}

	got, _ := repo.GetByLoanID(ctx, l.LoanID)
	got.TotalPaid = decimal.RequireFromString("100")
	got.RemainingAmount = decimal.RequireFromString("900")
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, _ := repo.GetByLoanID(ctx, l.LoanID)
	if !again.TotalPaid.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("total_paid not persisted: %s", again.TotalPaid)
	}
	if len(again.Payments) != 1 {
		t.Fatalf("payments = %d after Save, want 1", len(again.Payments))
	}
}

func TestListLookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	lenderA := id.NewID32()
	borrowerRef := id.NewID32()

	l1 := makeLoan(id.NewID32(), lenderA, "carol")
	l1.BorrowerID = borrowerRef
	l2 := makeLoan(id.NewID32(), lenderA, "dave")
	l3 := makeLoan(id.NewID32(), id.NewID32(), "carol")
	for _, l := range []*loanDomain.Loan{l1, l2, l3} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	byLender, err := repo.ListByLenderID(ctx, lenderA)
	if err != nil || len(byLender) != 2 {
		t.Fatalf("ListByLenderID: %d loans, err %v, want 2", len(byLender), err)
	}
	byRef, err := repo.ListByBorrowerID(ctx, borrowerRef)
	if err != nil || len(byRef) != 1 || byRef[0].LoanID != l1.LoanID {
		t.Fatalf("ListByBorrowerID: %+v, err %v", byRef, err)
	}
	byName, err := repo.ListByBorrowerName(ctx, "carol")
	if err != nil || len(byName) != 2 {
		t.Fatalf("ListByBorrowerName: %d loans, err %v, want 2", len(byName), err)
	}
	none, err := repo.ListByBorrowerName(ctx, "nobody")
	if err != nil || len(none) != 0 {
		t.Fatalf("ListByBorrowerName(nobody): %d loans, err %v, want 0", len(none), err)
	}
}

func TestDelete_RemovesLoanAndPayments(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32(), "bob")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p := loanDomain.Payment{PaymentID: "p-1", LoanRowID: l.ID, Amount: decimal.RequireFromString("10"), Date: time.Now().UTC()}
	if err := repo.AppendPayment(ctx, &p); err != nil {
		t.Fatalf("AppendPayment: %v", err)
	}

	if err := repo.Delete(ctx, l.LoanID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByLoanID(ctx, l.LoanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("loan still present: %v", err)
	}
	var count int64
	db.Model(&paymentSQLite{}).Where("loan_row_id = ?", l.ID).Count(&count)
	if count != 0 {
		t.Fatalf("orphan payments left: %d", count)
	}

	if err := repo.Delete(ctx, l.LoanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("double delete: err = %v, want ErrRecordNotFound", err)
	}
}
