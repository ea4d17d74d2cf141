package database

import (
	"path/filepath"
	"testing"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func TestEnsureUserAndName(t *testing.T) {
	repo := testRepo(t)

	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	// Idempotent.
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatalf("EnsureUser again: %v", err)
	}

	name, err := repo.GetUserName("u1")
	if err != nil {
		t.Fatalf("GetUserName: %v", err)
	}
	if name != "Rohan" {
		t.Fatalf("name = %q, want Rohan", name)
	}
}

func TestRecordOutcomeStreak(t *testing.T) {
	repo := testRepo(t)
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatal(err)
	}

	tx := models.Transaction{
		Amount: 500, Merchant: "Swiggy", Category: "food_delivery",
		Timestamp: "2025-06-09T23:40:00Z", ImpulseScore: 60, RiskLevel: "medium",
	}

	// Two cancels build a streak.
	tx.WasCancelled = true
	for i := 1; i <= 2; i++ {
		if _, err := repo.RecordOutcome("u1", tx, 0, 0); err != nil {
			t.Fatalf("cancel %d: %v", i, err)
		}
		streak, err := repo.GetControlStreak("u1")
		if err != nil {
			t.Fatal(err)
		}
		if streak != i {
			t.Fatalf("streak = %d, want %d", streak, i)
		}
	}

	// A commit resets it.
	tx.WasCancelled = false
	if _, err := repo.RecordOutcome("u1", tx, 0, 0); err != nil {
		t.Fatalf("commit: %v", err)
	}
	streak, err := repo.GetControlStreak("u1")
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Fatalf("streak after commit = %d, want 0", streak)
	}
}

func TestRecordOutcomeGoalCredit(t *testing.T) {
	repo := testRepo(t)
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatal(err)
	}
	goalID, err := repo.InsertGoal("u1", models.SavingsGoal{
		Name: "Trip", TargetAmount: 10000, CurrentAmount: 2000,
	})
	if err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}

	tx := models.Transaction{
		Amount: 1500, Merchant: "Swiggy", Category: "food_delivery",
		Timestamp: "2025-06-09T23:40:00Z", ImpulseScore: 60, RiskLevel: "medium",
		WasCancelled: true,
	}
	if _, err := repo.RecordOutcome("u1", tx, goalID, 1500); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}

	goal, err := repo.GetGoal(goalID)
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if goal.CurrentAmount != 3500 {
		t.Fatalf("current_amount = %v, want 3500", goal.CurrentAmount)
	}
}

func TestListCommittedExcludesCancelled(t *testing.T) {
	repo := testRepo(t)
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatal(err)
	}

	base := models.Transaction{
		Amount: 100, Merchant: "M", Category: "other",
		Timestamp: "2025-06-09T12:00:00Z", RiskLevel: "low",
	}
	if _, err := repo.RecordOutcome("u1", base, 0, 0); err != nil {
		t.Fatal(err)
	}
	cancelled := base
	cancelled.WasCancelled = true
	if _, err := repo.RecordOutcome("u1", cancelled, 0, 0); err != nil {
		t.Fatal(err)
	}

	committed, err := repo.ListCommitted("u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(committed) != 1 {
		t.Fatalf("committed count = %d, want 1", len(committed))
	}

	all, err := repo.ListTransactions("u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("all count = %d, want 2", len(all))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := testRepo(t)
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatal(err)
	}

	// Defaults before anything is saved.
	settings, err := repo.GetSettings("u1")
	if err != nil {
		t.Fatal(err)
	}
	if settings != models.DefaultSettings() {
		t.Fatalf("settings = %+v, want defaults", settings)
	}

	want := models.UserSettings{
		LockDuration:         45,
		LockSensitivity:      "high",
		EnableAccountability: false,
		EnableBreathing:      true,
		EnableMoodAlerts:     false,
	}
	if err := repo.SaveSettings("u1", want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := repo.GetSettings("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}

	// Upsert replaces.
	want.LockDuration = 10
	if err := repo.SaveSettings("u1", want); err != nil {
		t.Fatal(err)
	}
	got, err = repo.GetSettings("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.LockDuration != 10 {
		t.Fatalf("lock_duration = %d, want 10", got.LockDuration)
	}
}

func TestContactsFilterInactive(t *testing.T) {
	repo := testRepo(t)
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.InsertContact("u1", models.AccountabilityContact{Name: "Priya", Phone: "+91 98765 43210"}); err != nil {
		t.Fatal(err)
	}
	contacts, err := repo.ListContacts("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Priya" {
		t.Fatalf("contacts = %+v, want one Priya", contacts)
	}
}

func TestGetStats(t *testing.T) {
	repo := testRepo(t)
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatal(err)
	}

	base := models.Transaction{
		Amount: 300, Merchant: "M", Category: "other",
		Timestamp: "2025-06-09T12:00:00Z", RiskLevel: "low",
	}
	if _, err := repo.RecordOutcome("u1", base, 0, 0); err != nil {
		t.Fatal(err)
	}
	base.WasCancelled = true
	base.Amount = 700
	if _, err := repo.RecordOutcome("u1", base, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.InsertMood("u1", models.MoodEntry{Mood: "bored", Intensity: 5, Timestamp: "2025-06-09T10:00:00Z"}); err != nil {
		t.Fatal(err)
	}

	stats, err := repo.GetStats("u1")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalTransactions != 2 {
		t.Fatalf("total = %d, want 2", stats.TotalTransactions)
	}
	if stats.CancelledCount != 1 {
		t.Fatalf("cancelled = %d, want 1", stats.CancelledCount)
	}
	if stats.MoneySaved != 700 {
		t.Fatalf("saved = %v, want 700", stats.MoneySaved)
	}
	if stats.MoodEntries != 1 {
		t.Fatalf("moods = %d, want 1", stats.MoodEntries)
	}
}

func TestClearUserData(t *testing.T) {
	repo := testRepo(t)
	if err := repo.EnsureUser("u1", "Rohan"); err != nil {
		t.Fatal(err)
	}

	tx := models.Transaction{
		Amount: 100, Merchant: "M", Category: "other",
		Timestamp: "2025-06-09T12:00:00Z", RiskLevel: "low", WasCancelled: true,
	}
	if _, err := repo.RecordOutcome("u1", tx, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.InsertMood("u1", models.MoodEntry{Mood: "sad", Intensity: 5, Timestamp: "2025-06-09T10:00:00Z"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.InsertGoal("u1", models.SavingsGoal{Name: "Trip", TargetAmount: 1000}); err != nil {
		t.Fatal(err)
	}

	if err := repo.ClearUserData("u1"); err != nil {
		t.Fatalf("ClearUserData: %v", err)
	}

	all, err := repo.ListTransactions("u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Fatalf("transactions remain: %d", len(all))
	}
	streak, err := repo.GetControlStreak("u1")
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Fatalf("streak = %d, want 0", streak)
	}
	goals, err := repo.ListGoals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 0 {
		t.Fatalf("goals remain: %d", len(goals))
	}
}
