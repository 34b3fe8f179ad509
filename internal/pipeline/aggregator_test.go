package pipeline

import (
	"testing"
	"time"

	"ccview/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func sampleSessions(t *testing.T) []model.SessionStats {
	return []model.SessionStats{
		{SessionID: "s1", Project: "alpha", StartTime: day(t, "2025-06-01"), PromptCount: 5, MessageCount: 20, ToolCallCount: 8, DurationMs: 600_000, TotalCostUSD: 1.50},
		{SessionID: "s2", Project: "alpha", StartTime: day(t, "2025-06-01").Add(3 * time.Hour), PromptCount: 2, MessageCount: 6, ToolCallCount: 1, DurationMs: 120_000, TotalCostUSD: 0.25},
		{SessionID: "s3", Project: "beta", StartTime: day(t, "2025-06-03"), PromptCount: 10, MessageCount: 40, ToolCallCount: 22, DurationMs: 1_800_000, TotalCostUSD: 4.00},
	}
}

func TestAggregate_Totals(t *testing.T) {
	sessions := sampleSessions(t)
	since := day(t, "2025-05-01")
	until := day(t, "2025-07-01")

	stats := Aggregate(sessions, since, until)

	if stats.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", stats.TotalSessions)
	}
	if stats.TotalPrompts != 17 {
		t.Errorf("TotalPrompts = %d, want 17", stats.TotalPrompts)
	}
	if stats.TotalToolCalls != 31 {
		t.Errorf("TotalToolCalls = %d, want 31", stats.TotalToolCalls)
	}
	if stats.ActiveDays != 2 {
		t.Errorf("ActiveDays = %d, want 2", stats.ActiveDays)
	}
	if diff := stats.TotalCostUSD - 5.75; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TotalCostUSD = %v, want 5.75", stats.TotalCostUSD)
	}
	if diff := stats.CostPerDay - 2.875; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("CostPerDay = %v, want 2.875", stats.CostPerDay)
	}
}

func TestAggregate_TimeWindow(t *testing.T) {
	sessions := sampleSessions(t)

	// Only June 3rd.
	stats := Aggregate(sessions, day(t, "2025-06-02"), day(t, "2025-06-04"))
	if stats.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", stats.TotalSessions)
	}
	if stats.TotalPrompts != 10 {
		t.Errorf("TotalPrompts = %d, want 10", stats.TotalPrompts)
	}
}

func TestAggregateDays_FillsGapsNewestFirst(t *testing.T) {
	sessions := sampleSessions(t)
	days := AggregateDays(sessions, day(t, "2025-06-01"), day(t, "2025-06-04"))

	if len(days) != 4 {
		t.Fatalf("got %d days, want 4 (gaps filled)", len(days))
	}
	// Newest first.
	if !days[0].Date.After(days[len(days)-1].Date) {
		t.Errorf("days not newest-first: %v .. %v", days[0].Date, days[len(days)-1].Date)
	}

	byKey := make(map[string]model.DailyStats)
	for _, d := range days {
		byKey[d.Date.Format("2006-01-02")] = d
	}
	if byKey["2025-06-01"].Sessions != 2 {
		t.Errorf("June 1 sessions = %d, want 2", byKey["2025-06-01"].Sessions)
	}
	if byKey["2025-06-02"].Sessions != 0 {
		t.Errorf("June 2 sessions = %d, want 0 (gap)", byKey["2025-06-02"].Sessions)
	}
	if byKey["2025-06-03"].ToolCalls != 22 {
		t.Errorf("June 3 tool calls = %d, want 22", byKey["2025-06-03"].ToolCalls)
	}
}

func TestAggregateProjects_SortedByCost(t *testing.T) {
	sessions := sampleSessions(t)
	projects := AggregateProjects(sessions, day(t, "2025-05-01"), day(t, "2025-07-01"))

	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	if projects[0].Project != "beta" {
		t.Errorf("top project = %q, want beta (highest cost)", projects[0].Project)
	}
	if projects[1].Sessions != 2 {
		t.Errorf("alpha sessions = %d, want 2", projects[1].Sessions)
	}
}

func TestFilterByProject_SubstringCaseInsensitive(t *testing.T) {
	sessions := sampleSessions(t)

	got := FilterByProject(sessions, "ALPH")
	if len(got) != 2 {
		t.Errorf("filtered %d sessions, want 2", len(got))
	}

	if got := FilterByProject(sessions, ""); len(got) != 3 {
		t.Errorf("empty filter returned %d, want all 3", len(got))
	}
}

func TestFilterByTime_DropsZeroStart(t *testing.T) {
	sessions := []model.SessionStats{
		{SessionID: "ok", StartTime: day(t, "2025-06-01")},
		{SessionID: "zero"},
	}
	got := FilterByTime(sessions, day(t, "2025-05-01"), day(t, "2025-07-01"))
	if len(got) != 1 || got[0].SessionID != "ok" {
		t.Errorf("filtered = %+v, want only the dated session", got)
	}
}
