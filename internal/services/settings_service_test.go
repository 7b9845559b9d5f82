package services

import (
	"testing"

	"moneta/internal/testutil"
)

func TestGetSettings(t *testing.T) {
	t.Run("defaults_before_first_save", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)
		if settings.CycleStartDay != 1 {
			t.Errorf("expected default cycle start day 1, got %d", settings.CycleStartDay)
		}
		if settings.Currency != "USD ($)" || settings.Theme != "dark" {
			t.Errorf("unexpected defaults: %q %q", settings.Currency, settings.Theme)
		}
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Run("merge_and_persist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		day := 15
		updated, err := svc.UpdateSettings(user.ID, SettingsPatch{CycleStartDay: &day})
		testutil.AssertNoError(t, err)
		if updated.CycleStartDay != 15 {
			t.Errorf("expected cycle start day 15, got %d", updated.CycleStartDay)
		}
		// Untouched fields keep their defaults.
		if updated.Currency != "USD ($)" {
			t.Errorf("expected default currency preserved, got %q", updated.Currency)
		}

		theme := "light"
		updated, err = svc.UpdateSettings(user.ID, SettingsPatch{Theme: &theme})
		testutil.AssertNoError(t, err)
		if updated.Theme != "light" || updated.CycleStartDay != 15 {
			t.Errorf("expected merged settings, got theme %q day %d", updated.Theme, updated.CycleStartDay)
		}

		reloaded, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)
		if reloaded.CycleStartDay != 15 || reloaded.Theme != "light" {
			t.Errorf("expected persisted settings, got day %d theme %q", reloaded.CycleStartDay, reloaded.Theme)
		}
	})

	t.Run("rejects_out_of_range_start_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		for _, day := range []int{0, 32, -1} {
			d := day
			_, err := svc.UpdateSettings(user.ID, SettingsPatch{CycleStartDay: &d})
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})
}
