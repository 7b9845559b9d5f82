package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/testutil"
)

func TestExportTransactionsCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	acctSvc := NewAccountService(db)
	txSvc := NewTransactionService(db, acctSvc)
	svc := NewDataService(db)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID, 1000)

	_, err := txSvc.CreateTransaction(user.ID, TransactionInput{
		AccountID:    account.ID,
		Type:         models.TransactionTypeExpense,
		Amount:       dec(50),
		CategoryName: "Food",
		Description:  "groceries, \"organic\"",
	})
	testutil.AssertNoError(t, err)

	data, err := svc.ExportTransactionsCSV(user.ID)
	testutil.AssertNoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	testutil.AssertNoError(t, err)
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}
	if records[0][0] != "Date" || records[0][1] != "Amount" {
		t.Errorf("unexpected header: %v", records[0])
	}
	row := records[1]
	if row[1] != "50" || row[2] != "expense" || row[3] != "Food" {
		t.Errorf("unexpected row: %v", row)
	}
	// Quoting survives the round trip.
	if row[4] != "groceries, \"organic\"" {
		t.Errorf("unexpected description: %q", row[4])
	}
}

func TestClearUserData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	acctSvc := NewAccountService(db)
	txSvc := NewTransactionService(db, acctSvc)
	budgetSvc := NewBudgetService(db, NewSettingsService(db))
	userSvc := NewUserService(db)
	svc := NewDataService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	account := testutil.CreateTestAccount(t, db, user.ID, 1000)
	_, err := txSvc.CreateTransaction(user.ID, TransactionInput{
		AccountID: account.ID, Type: models.TransactionTypeExpense, Amount: dec(10),
	})
	testutil.AssertNoError(t, err)
	testutil.CreateTestBudget(t, db, user.ID, "Food", 500)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	keepAccount := testutil.CreateTestAccount(t, db, other.ID, 700)

	testutil.AssertNoError(t, svc.ClearUserData(user.ID))

	accounts, err := acctSvc.GetUserAccounts(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if accounts.TotalItems != 0 {
		t.Errorf("expected no accounts, got %d", accounts.TotalItems)
	}
	transactions, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
	testutil.AssertNoError(t, err)
	if transactions.TotalItems != 0 {
		t.Errorf("expected no transactions, got %d", transactions.TotalItems)
	}
	budgets, err := budgetSvc.GetUserBudgets(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if budgets.TotalItems != 0 {
		t.Errorf("expected no budgets, got %d", budgets.TotalItems)
	}

	// The user record and other users' data survive.
	_, err = userSvc.GetUserByID(user.ID)
	testutil.AssertNoError(t, err)
	kept, err := acctSvc.GetAccountByID(other.ID, keepAccount.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "balance", kept.Balance, 700)
}
