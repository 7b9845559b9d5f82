package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestGetUserCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)

	custom := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	categories, err := svc.GetUserCategories(user.ID)
	testutil.AssertNoError(t, err)
	if len(categories) != len(models.DefaultCategories)+1 {
		t.Fatalf("expected %d categories, got %d", len(models.DefaultCategories)+1, len(categories))
	}
	last := categories[len(categories)-1]
	if last.ID != custom.ID {
		t.Errorf("expected custom category after defaults, got %q", last.Name)
	}
}

func TestCreateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)

	category, err := svc.CreateCategory(user.ID, "Pets", models.CategoryTypeExpense, "Paw", "#8B5CF6")
	testutil.AssertNoError(t, err)
	if category.ID == "" || category.Name != "Pets" {
		t.Errorf("unexpected category: %+v", category)
	}

	_, err = svc.CreateCategory(user.ID, "", models.CategoryTypeExpense, "", "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.CreateCategory(user.ID, "Bad", models.CategoryType("other"), "", "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestDeleteCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	acctSvc := NewAccountService(db)
	txSvc := NewTransactionService(db, acctSvc)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID, 1000)
	category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	tx, err := txSvc.CreateTransaction(user.ID, TransactionInput{
		AccountID:    account.ID,
		Type:         models.TransactionTypeExpense,
		Amount:       dec(50),
		CategoryName: category.Name,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteCategory(user.ID, category.ID))

	// The transaction keeps its category name and the balance is untouched.
	got, err := txSvc.GetTransactionByID(user.ID, tx.ID)
	testutil.AssertNoError(t, err)
	if got.CategoryName != category.Name {
		t.Errorf("expected category name %q retained, got %q", category.Name, got.CategoryName)
	}
	a, err := acctSvc.GetAccountByID(user.ID, account.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "balance", a.Balance, 950)

	err = svc.DeleteCategory(user.ID, "nonexistent")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}
