package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, "Main Checking", models.AccountTypeChecking, dec(2500), "bg-gradient-1")
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected non-empty account ID")
		}
		if account.Name != "Main Checking" {
			t.Errorf("expected name Main Checking, got %q", account.Name)
		}
		testutil.AssertDecimal(t, "balance", account.Balance, 2500)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "", models.AccountTypeChecking, dec(0), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "Bad", models.AccountType("Piggy Bank"), dec(0), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestAccount(t, db, user.ID, 100)
	testutil.CreateTestAccount(t, db, user.ID, 200)
	testutil.CreateTestAccount(t, db, other.ID, 300)

	page, err := svc.GetUserAccounts(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 {
		t.Errorf("expected 2 accounts, got %d", page.TotalItems)
	}
	for _, a := range page.Data {
		if a.UserID != user.ID {
			t.Errorf("expected only the user's own accounts, got one for %s", a.UserID)
		}
	}
}

func TestUpdateAccount(t *testing.T) {
	t.Run("metadata_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, 1000)

		name := "Renamed"
		savings := models.AccountTypeSavings
		updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Name: &name, Type: &savings})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed" || updated.Type != models.AccountTypeSavings {
			t.Errorf("expected renamed savings account, got %q %q", updated.Name, updated.Type)
		}
		// Balance is owned by the ledger and must survive metadata updates.
		testutil.AssertDecimal(t, "balance", updated.Balance, 1000)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		name := "X"
		_, err := svc.UpdateAccount(user.ID, "nonexistent", AccountUpdateFields{Name: &name})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("soft_delete_keeps_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		txSvc := NewTransactionService(db, svc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, 1000)

		tx, err := txSvc.CreateTransaction(user.ID, TransactionInput{
			AccountID: account.ID,
			Type:      models.TransactionTypeExpense,
			Amount:    dec(100),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteAccount(user.ID, account.ID))

		_, err = svc.GetAccountByID(user.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

		// Transactions referencing the deleted account remain readable.
		got, err := txSvc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if got.AccountID != account.ID {
			t.Errorf("expected transaction to still reference %s, got %s", account.ID, got.AccountID)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user1.ID, 1000)

		err := svc.DeleteAccount(user2.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}
