package services

import (
	"github.com/shopspring/decimal"

	"moneta/internal/models"
)

// ledgerSnapshot captures the balance-affecting fields of a transaction.
// Two snapshots that are equal produce identical balance effects, so an
// update between them can skip balance recomputation entirely.
type ledgerSnapshot struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	TransferFee decimal.Decimal
	AccountID   string
	ToAccountID *string
}

func snapshotOf(t *models.Transaction) ledgerSnapshot {
	return ledgerSnapshot{
		Type:        t.Type,
		Amount:      t.Amount,
		TransferFee: t.TransferFee,
		AccountID:   t.AccountID,
		ToAccountID: t.ToAccountID,
	}
}

// effect returns the per-account balance deltas this snapshot produces:
//
//	income    source += amount
//	expense   source -= amount
//	transfer  source -= amount + fee, destination += amount
//
// The fee is deducted from the source only; the destination receives
// exactly the amount. Accounts with a zero net delta are still listed so
// callers can decide whether a write is needed.
func (s ledgerSnapshot) effect() map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, 2)
	switch s.Type {
	case models.TransactionTypeIncome:
		deltas[s.AccountID] = s.Amount
	case models.TransactionTypeExpense:
		deltas[s.AccountID] = s.Amount.Neg()
	case models.TransactionTypeTransfer:
		deltas[s.AccountID] = s.Amount.Add(s.TransferFee).Neg()
		if s.ToAccountID != nil {
			// Add instead of assign so a malformed self-transfer still nets out.
			deltas[*s.ToAccountID] = deltas[*s.ToAccountID].Add(s.Amount)
		}
	}
	return deltas
}

// reversal returns the deltas that undo this snapshot's effect.
func (s ledgerSnapshot) reversal() map[string]decimal.Decimal {
	deltas := s.effect()
	for id, d := range deltas {
		deltas[id] = d.Neg()
	}
	return deltas
}

// equal reports whether both snapshots have the same balance effect.
func (s ledgerSnapshot) equal(o ledgerSnapshot) bool {
	if s.Type != o.Type || s.AccountID != o.AccountID {
		return false
	}
	if !s.Amount.Equal(o.Amount) || !s.TransferFee.Equal(o.TransferFee) {
		return false
	}
	if (s.ToAccountID == nil) != (o.ToAccountID == nil) {
		return false
	}
	return s.ToAccountID == nil || *s.ToAccountID == *o.ToAccountID
}

// mergeDeltas sums any number of per-account delta maps into one, so an
// update's reversal and new effect collapse into a single net write per
// account.
func mergeDeltas(maps ...map[string]decimal.Decimal) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, 2)
	for _, m := range maps {
		for id, d := range m {
			merged[id] = merged[id].Add(d)
		}
	}
	return merged
}

// touchedAccounts returns the distinct account ids referenced by the
// given snapshots, in first-seen order.
func touchedAccounts(snaps ...ledgerSnapshot) []string {
	seen := make(map[string]struct{}, 4)
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, s := range snaps {
		add(s.AccountID)
		if s.ToAccountID != nil {
			add(*s.ToAccountID)
		}
	}
	return ids
}
