package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/logger"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// ledgerMaxRetries bounds how often an operation is retried when the
// store reports a write conflict before it fails with
// CONFLICT_RETRY_EXHAUSTED.
const ledgerMaxRetries = 3

// transactionService is the ledger engine: it applies the balance side
// effect of every transaction mutation exactly once, atomically with the
// transaction record write. All reads of touched balances happen before
// any write within the same database transaction.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// CreateTransaction validates the input, computes the balance effect on
// the source (and destination for transfers), and persists the new
// transaction together with the updated balances as one atomic unit.
// All referenced accounts must exist.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	if input.AccountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required")
	}
	if input.Amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
	}
	if input.TransferFee.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer fee cannot be negative")
	}

	switch input.Type {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		// The fee and destination are transfer-only fields.
		input.TransferFee = decimal.Zero
		input.ToAccountID = nil
	case models.TransactionTypeTransfer:
		if input.ToAccountID == nil || *input.ToAccountID == input.AccountID {
			return nil, apperrors.ErrInvalidTransfer
		}
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported transaction type")
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:       userID,
		AccountID:    input.AccountID,
		ToAccountID:  input.ToAccountID,
		Type:         input.Type,
		Amount:       input.Amount,
		TransferFee:  input.TransferFee,
		CategoryName: input.CategoryName,
		Description:  input.Description,
		Notes:        input.Notes,
		Date:         input.Date,
	}
	snap := snapshotOf(transaction)

	err := s.inLedgerTx(func(tx *gorm.DB) error {
		accounts, err := s.accountService.LockAccounts(tx, userID, touchedAccounts(snap))
		if err != nil {
			return err
		}
		for _, id := range touchedAccounts(snap) {
			if _, ok := accounts[id]; !ok {
				return apperrors.ErrAccountNotFound
			}
		}

		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.applyDeltas(tx, accounts, snap.effect(), "")
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// UpdateTransaction overlays the patch on the transaction's persisted
// state. If no balance-affecting field changes, only the patched fields
// are persisted and no balance is touched. Otherwise the old effect is
// reverted and the new effect applied, collapsed into one net write per
// touched account; a touched account that no longer exists is skipped
// with a warning rather than aborting the operation.
func (s *transactionService) UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error) {
	old, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	final := *old
	applyPatch(&final, patch)

	if final.Type != models.TransactionTypeTransfer {
		final.ToAccountID = nil
		final.TransferFee = decimal.Zero
	}

	if final.AccountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required")
	}
	if final.Amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
	}
	if final.TransferFee.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer fee cannot be negative")
	}
	switch final.Type {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
	case models.TransactionTypeTransfer:
		if final.ToAccountID == nil || *final.ToAccountID == final.AccountID {
			return nil, apperrors.ErrInvalidTransfer
		}
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported transaction type")
	}

	oldSnap := snapshotOf(old)
	newSnap := snapshotOf(&final)
	updates := updateColumns(&final)

	if oldSnap.equal(newSnap) {
		// Metadata-only update: date, category, description, notes.
		if err := s.db.Model(old).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &final, nil
	}

	err = s.inLedgerTx(func(tx *gorm.DB) error {
		// Read every touched balance in one pass before computing any
		// change, so the reversal and the new effect never observe a
		// write from this same operation.
		accounts, err := s.accountService.LockAccounts(tx, userID, touchedAccounts(oldSnap, newSnap))
		if err != nil {
			return err
		}

		deltas := mergeDeltas(oldSnap.reversal(), newSnap.effect())
		if err := s.applyDeltas(tx, accounts, deltas, transactionID); err != nil {
			return err
		}

		if err := tx.Model(&models.Transaction{}).Where("id = ?", transactionID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &final, nil
}

// DeleteTransaction reverts the transaction's balance effect and removes
// the record, atomically. Accounts that no longer exist are skipped with
// a warning so history against deleted accounts can still be removed.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}
	snap := snapshotOf(transaction)

	return s.inLedgerTx(func(tx *gorm.DB) error {
		accounts, err := s.accountService.LockAccounts(tx, userID, touchedAccounts(snap))
		if err != nil {
			return err
		}

		if err := s.applyDeltas(tx, accounts, snap.reversal(), transactionID); err != nil {
			return err
		}

		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions ordered by date descending.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecentTransactions returns the user's most recent transactions by date.
func (s *transactionService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// applyDeltas writes each non-zero balance delta to its locked account.
// Missing accounts are tolerated: their write is skipped and a warning
// logged, so the rest of the operation still commits as one unit.
func (s *transactionService) applyDeltas(tx *gorm.DB, accounts map[string]*models.Account, deltas map[string]decimal.Decimal, transactionID string) error {
	for accountID, delta := range deltas {
		if delta.IsZero() {
			continue
		}
		account, ok := accounts[accountID]
		if !ok {
			logger.Get().Warnw("skipping balance update for missing account",
				"account_id", accountID,
				"transaction_id", transactionID,
				"delta", delta.String(),
			)
			continue
		}
		if err := s.accountService.ApplyBalanceDelta(tx, account, delta); err != nil {
			return err
		}
	}
	return nil
}

// inLedgerTx runs fn inside a database transaction and retries a bounded
// number of times when the store reports a serialization conflict.
// Either every write in fn commits or none do.
func (s *transactionService) inLedgerTx(fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < ledgerMaxRetries; attempt++ {
		err = s.db.Transaction(fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return apperrors.Wrap(apperrors.ErrConflictRetry, err)
}

// isSerializationFailure detects postgres serialization and deadlock
// failures (SQLSTATE 40001 / 40P01), which are safe to retry.
func isSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "deadlock")
}

// applyPatch overlays non-nil patch fields onto the transaction.
func applyPatch(t *models.Transaction, patch TransactionPatch) {
	if patch.AccountID != nil {
		t.AccountID = *patch.AccountID
	}
	if patch.ToAccountID != nil {
		t.ToAccountID = patch.ToAccountID
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.TransferFee != nil {
		t.TransferFee = *patch.TransferFee
	}
	if patch.CategoryName != nil {
		t.CategoryName = *patch.CategoryName
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
}

// updateColumns builds the column map persisted for an update from the
// transaction's final state. Writing the normalized destination and fee
// keeps transfer-only fields cleared when the type changes away from
// transfer.
func updateColumns(final *models.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"account_id":    final.AccountID,
		"to_account_id": final.ToAccountID,
		"type":          final.Type,
		"amount":        final.Amount,
		"transfer_fee":  final.TransferFee,
		"category_name": final.CategoryName,
		"description":   final.Description,
		"notes":         final.Notes,
		"date":          final.Date,
	}
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryName != nil {
		q = q.Where("category_name = ?", *f.CategoryName)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ? OR to_account_id = ?", *f.AccountID, *f.AccountID)
	}
	return q
}
