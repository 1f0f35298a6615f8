package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Derive recomputes the derived fields of a loan from its payment history.
// It is a pure function so the whole status rule lives in one place.
//
// Transitions are forward-only: a due date pushed back into the future does
// not revert overdue to active, and nothing here ever produces defaulted.
// Overpayment is not an error; the remaining amount goes negative and the
// loan completes.
func Derive(principal decimal.Decimal, payments []Payment, dueDate, now time.Time, prev Status) (totalPaid, remaining decimal.Decimal, status Status) {
	totalPaid = decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}
	remaining = principal.Sub(totalPaid)

	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		status = StatusCompleted
	case dueDate.Before(now) && prev != StatusCompleted:
		status = StatusOverdue
	default:
		status = prev
	}
	return totalPaid, remaining, status
}

// Rederive applies Derive to the entity in place. Called after every
// mutation that touches the payment list, before the record is saved.
func (l *Loan) Rederive(now time.Time) {
	l.TotalPaid, l.RemainingAmount, l.Status = Derive(l.Principal, l.Payments, l.DueDate, now, l.Status)
}
