package pipeline

import (
	"sort"
	"strings"
	"time"

	"ccview/internal/model"
)

// Aggregate computes summary statistics from a slice of session stats,
// filtered to sessions within the given time range.
func Aggregate(sessions []model.SessionStats, since, until time.Time) model.SummaryStats {
	filtered := FilterByTime(sessions, since, until)

	var stats model.SummaryStats
	activeDays := make(map[string]struct{})

	for _, s := range filtered {
		stats.TotalSessions++
		stats.TotalPrompts += s.PromptCount
		stats.TotalMessages += s.MessageCount
		stats.TotalToolCalls += s.ToolCallCount
		stats.TotalDurationMs += s.DurationMs
		stats.TotalCostUSD += s.TotalCostUSD

		if !s.StartTime.IsZero() {
			day := s.StartTime.Local().Format("2006-01-02")
			activeDays[day] = struct{}{}
		}
	}

	stats.ActiveDays = len(activeDays)

	if stats.ActiveDays > 0 {
		days := float64(stats.ActiveDays)
		stats.CostPerDay = stats.TotalCostUSD / days
		stats.SessionsPerDay = float64(stats.TotalSessions) / days
		stats.PromptsPerDay = float64(stats.TotalPrompts) / days
		stats.MinutesPerDay = float64(stats.TotalDurationMs) / 60_000 / days
	}

	return stats
}

// AggregateDays computes per-day statistics from sessions.
func AggregateDays(sessions []model.SessionStats, since, until time.Time) []model.DailyStats {
	filtered := FilterByTime(sessions, since, until)

	dayMap := make(map[string]*model.DailyStats)

	for _, s := range filtered {
		if s.StartTime.IsZero() {
			continue
		}
		dayKey := s.StartTime.Local().Format("2006-01-02")
		ds, ok := dayMap[dayKey]
		if !ok {
			t, _ := time.ParseInLocation("2006-01-02", dayKey, time.Local)
			ds = &model.DailyStats{Date: t}
			dayMap[dayKey] = ds
		}

		ds.Sessions++
		ds.Prompts += s.PromptCount
		ds.Messages += s.MessageCount
		ds.ToolCalls += s.ToolCallCount
		ds.DurationMs += s.DurationMs
		ds.CostUSD += s.TotalCostUSD
	}

	// Fill in every day in the range so tables show gaps as zeros
	day := since.Local().Truncate(24 * time.Hour)
	end := until.Local().Truncate(24 * time.Hour)
	for !day.After(end) {
		dayKey := day.Format("2006-01-02")
		if _, ok := dayMap[dayKey]; !ok {
			dayMap[dayKey] = &model.DailyStats{Date: day}
		}
		day = day.AddDate(0, 0, 1)
	}

	days := make([]model.DailyStats, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})

	return days
}

// AggregateProjects computes per-project statistics from sessions.
func AggregateProjects(sessions []model.SessionStats, since, until time.Time) []model.ProjectStats {
	filtered := FilterByTime(sessions, since, until)

	projMap := make(map[string]*model.ProjectStats)

	for _, s := range filtered {
		ps, ok := projMap[s.Project]
		if !ok {
			ps = &model.ProjectStats{Project: s.Project}
			projMap[s.Project] = ps
		}
		ps.Sessions++
		ps.Prompts += s.PromptCount
		ps.Messages += s.MessageCount
		ps.ToolCalls += s.ToolCallCount
		ps.CostUSD += s.TotalCostUSD
	}

	projects := make([]model.ProjectStats, 0, len(projMap))
	for _, ps := range projMap {
		projects = append(projects, *ps)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CostUSD > projects[j].CostUSD
	})

	return projects
}

// FilterByTime returns sessions whose start time falls within [since, until).
func FilterByTime(sessions []model.SessionStats, since, until time.Time) []model.SessionStats {
	if since.IsZero() && until.IsZero() {
		return sessions
	}

	var result []model.SessionStats
	for _, s := range sessions {
		if s.StartTime.IsZero() {
			continue
		}
		if !since.IsZero() && s.StartTime.Before(since) {
			continue
		}
		if !until.IsZero() && !s.StartTime.Before(until) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// FilterByProject returns sessions matching the project substring.
func FilterByProject(sessions []model.SessionStats, project string) []model.SessionStats {
	if project == "" {
		return sessions
	}
	var result []model.SessionStats
	for _, s := range sessions {
		if strings.Contains(strings.ToLower(s.Project), strings.ToLower(project)) {
			result = append(result, s)
		}
	}
	return result
}
