package insights

import (
	"strings"
	"testing"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

func tx(ts, category string, amount float64) models.Transaction {
	return models.Transaction{Timestamp: ts, Category: category, Amount: amount}
}

func TestBuildHeatmapMondayFirst(t *testing.T) {
	history := []models.Transaction{
		tx("2025-06-09T23:00:00Z", "food_delivery", 500), // Monday
		tx("2025-06-15T14:00:00Z", "gaming", 300),        // Sunday
	}
	grid := buildHeatmap(history)

	if grid[0][23] != 500 {
		t.Fatalf("Monday 23:00 = %v, want 500", grid[0][23])
	}
	if grid[6][14] != 300 {
		t.Fatalf("Sunday 14:00 = %v, want 300", grid[6][14])
	}
}

func TestTopCategories(t *testing.T) {
	history := []models.Transaction{
		tx("2025-06-09T12:00:00Z", "gaming", 300),
		tx("2025-06-10T12:00:00Z", "gaming", 700),
		tx("2025-06-11T12:00:00Z", "groceries", 400),
		tx("2025-06-12T12:00:00Z", "clothing", 400),
	}
	got := topCategories(history, 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Category != "gaming" || got[0].Total != 1000 {
		t.Fatalf("top = %+v, want gaming/1000", got[0])
	}
	// Equal totals break ties by name.
	if got[1].Category != "clothing" {
		t.Fatalf("second = %+v, want clothing", got[1])
	}
}

func TestWeekendRatio(t *testing.T) {
	history := []models.Transaction{
		tx("2025-06-09T12:00:00Z", "other", 100), // Monday
		tx("2025-06-10T12:00:00Z", "other", 100), // Tuesday
		tx("2025-06-14T12:00:00Z", "other", 200), // Saturday
	}
	if got := weekendRatio(history); got != 2.0 {
		t.Fatalf("ratio = %v, want 2.0", got)
	}

	if got := weekendRatio(nil); got != 0 {
		t.Fatalf("empty ratio = %v, want 0", got)
	}
}

func TestGenerateInsightsStarter(t *testing.T) {
	data := BuildTriggerData([]models.Transaction{
		tx("2025-06-09T12:00:00Z", "other", 100),
	})
	if len(data.Insights) != 1 || !strings.Contains(data.Insights[0], "few more transactions") {
		t.Fatalf("insights = %v, want starter message", data.Insights)
	}
	if data.TransactionCount != 1 {
		t.Fatalf("count = %d, want 1", data.TransactionCount)
	}
}

func TestBuildTriggerData(t *testing.T) {
	history := []models.Transaction{
		tx("2025-06-09T23:30:00Z", "food_delivery", 600),
		tx("2025-06-10T12:00:00Z", "groceries", 300),
		tx("2025-06-14T23:00:00Z", "food_delivery", 800),
		tx("2025-06-11T15:00:00Z", "gaming", 2000),
	}
	history[0].ImpulseScore = 70
	history[2].ImpulseScore = 65
	history[3].WasCancelled = true

	data := BuildTriggerData(history)

	if data.TransactionCount != 4 {
		t.Fatalf("count = %d, want 4", data.TransactionCount)
	}
	if data.TopCategories[0].Category != "gaming" {
		t.Fatalf("top category = %+v, want gaming", data.TopCategories[0])
	}
	if len(data.CategoryByHour["food_delivery"]) != 24 {
		t.Fatal("category_by_hour series should span 24 hours")
	}

	var hasLateNight, hasSavings bool
	for _, s := range data.Insights {
		if strings.Contains(s, "Late-night weakness") {
			hasLateNight = true
		}
		if strings.Contains(s, "saved") {
			hasSavings = true
		}
	}
	if !hasLateNight {
		t.Fatalf("insights = %v, want a late-night line", data.Insights)
	}
	if !hasSavings {
		t.Fatalf("insights = %v, want a savings line", data.Insights)
	}
}
