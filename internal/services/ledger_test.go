package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
)

func TestLedgerSnapshotEffect(t *testing.T) {
	t.Run("income", func(t *testing.T) {
		snap := ledgerSnapshot{Type: models.TransactionTypeIncome, Amount: dec(500), AccountID: "a"}
		deltas := snap.effect()
		if len(deltas) != 1 || !deltas["a"].Equal(dec(500)) {
			t.Errorf("expected {a: 500}, got %v", deltas)
		}
	})

	t.Run("expense", func(t *testing.T) {
		snap := ledgerSnapshot{Type: models.TransactionTypeExpense, Amount: dec(500), AccountID: "a"}
		deltas := snap.effect()
		if len(deltas) != 1 || !deltas["a"].Equal(dec(-500)) {
			t.Errorf("expected {a: -500}, got %v", deltas)
		}
	})

	t.Run("transfer_fee_on_source_only", func(t *testing.T) {
		dst := "b"
		snap := ledgerSnapshot{
			Type:        models.TransactionTypeTransfer,
			Amount:      dec(100),
			TransferFee: dec(10),
			AccountID:   "a",
			ToAccountID: &dst,
		}
		deltas := snap.effect()
		if !deltas["a"].Equal(dec(-110)) {
			t.Errorf("expected source delta -110, got %s", deltas["a"])
		}
		if !deltas["b"].Equal(dec(100)) {
			t.Errorf("expected destination delta 100, got %s", deltas["b"])
		}
	})

	t.Run("reversal_negates_effect", func(t *testing.T) {
		dst := "b"
		snap := ledgerSnapshot{
			Type:        models.TransactionTypeTransfer,
			Amount:      dec(100),
			TransferFee: dec(10),
			AccountID:   "a",
			ToAccountID: &dst,
		}
		net := mergeDeltas(snap.effect(), snap.reversal())
		for id, d := range net {
			if !d.IsZero() {
				t.Errorf("expected zero net delta for %s, got %s", id, d)
			}
		}
	})
}

func TestLedgerSnapshotEqual(t *testing.T) {
	dst := "b"
	base := ledgerSnapshot{Type: models.TransactionTypeTransfer, Amount: dec(100), TransferFee: dec(10), AccountID: "a", ToAccountID: &dst}

	same := base
	otherDst := "b"
	same.ToAccountID = &otherDst
	if !base.equal(same) {
		t.Error("expected snapshots with identical values to be equal")
	}

	cases := map[string]ledgerSnapshot{
		"type":        {Type: models.TransactionTypeExpense, Amount: dec(100), TransferFee: dec(10), AccountID: "a", ToAccountID: &dst},
		"amount":      {Type: models.TransactionTypeTransfer, Amount: dec(101), TransferFee: dec(10), AccountID: "a", ToAccountID: &dst},
		"fee":         {Type: models.TransactionTypeTransfer, Amount: dec(100), TransferFee: dec(11), AccountID: "a", ToAccountID: &dst},
		"account":     {Type: models.TransactionTypeTransfer, Amount: dec(100), TransferFee: dec(10), AccountID: "c", ToAccountID: &dst},
		"destination": {Type: models.TransactionTypeTransfer, Amount: dec(100), TransferFee: dec(10), AccountID: "a", ToAccountID: strPtr("c")},
		"nil_dst":     {Type: models.TransactionTypeTransfer, Amount: dec(100), TransferFee: dec(10), AccountID: "a"},
	}
	for name, other := range cases {
		if base.equal(other) {
			t.Errorf("expected snapshots differing by %s to be unequal", name)
		}
	}
}

func TestMergeDeltas(t *testing.T) {
	merged := mergeDeltas(
		map[string]decimal.Decimal{"a": dec(100), "b": dec(-50)},
		map[string]decimal.Decimal{"a": dec(-30), "c": dec(20)},
	)
	if !merged["a"].Equal(dec(70)) || !merged["b"].Equal(dec(-50)) || !merged["c"].Equal(dec(20)) {
		t.Errorf("unexpected merged deltas: %v", merged)
	}
}

func TestTouchedAccounts(t *testing.T) {
	dst := "b"
	old := ledgerSnapshot{AccountID: "a", ToAccountID: &dst}
	updated := ledgerSnapshot{AccountID: "c", ToAccountID: &dst}

	ids := touchedAccounts(old, updated)
	if len(ids) != 3 {
		t.Fatalf("expected 3 distinct accounts, got %v", ids)
	}
	if ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("expected first-seen order [a b c], got %v", ids)
	}
}
