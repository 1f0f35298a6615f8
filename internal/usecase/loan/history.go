package loan

import (
	"context"
	"sort"
)

// HistoryEntry is one loan in a user's history, tagged with the role the
// user holds on it.
type HistoryEntry struct {
	Role Role     `json:"role"`
	Loan *LoanDTO `json:"loan"`
}

// HistoryFor reconstructs the caller's complete loan history from both
// sides of the relationship: lender side by account reference, borrower
// side by account reference and by display name for loans that never
// resolved (or resolved elsewhere). The name query excludes anything the
// reference query already returned, so no record appears twice under the
// same role. A self-loan yields two entries for the same record, one per
// role; that is intended.
func (u *Usecase) HistoryFor(ctx context.Context, actor Actor) ([]HistoryEntry, error) {
	asLender, err := u.repo.ListByLenderID(ctx, actor.AccountID)
	if err != nil {
		return nil, storeErr(err)
	}
	byRef, err := u.repo.ListByBorrowerID(ctx, actor.AccountID)
	if err != nil {
		return nil, storeErr(err)
	}
	byName, err := u.repo.ListByBorrowerName(ctx, actor.DisplayName)
	if err != nil {
		return nil, storeErr(err)
	}

	entries := make([]HistoryEntry, 0, len(asLender)+len(byRef)+len(byName))
	for i := range asLender {
		entries = append(entries, HistoryEntry{Role: RoleLender, Loan: toDTO(&asLender[i])})
	}
	for i := range byRef {
		entries = append(entries, HistoryEntry{Role: RoleBorrower, Loan: toDTO(&byRef[i])})
	}
	for i := range byName {
		if byName[i].BorrowerID == actor.AccountID && actor.AccountID != "" {
			continue // already counted by reference
		}
		entries = append(entries, HistoryEntry{Role: RoleBorrower, Loan: toDTO(&byName[i])})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Loan.CreatedAt.After(entries[j].Loan.CreatedAt)
	})
	return entries, nil
}
