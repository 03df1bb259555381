package dto

import "time"

// DashboardSummary is the rollup for the current calendar day plus global
// report counters. CompletionRate is a percentage rounded to two decimals and
// defined as 0 when no task was created today.
type DashboardSummary struct {
	TodayTaskCount       int       `json:"todayTaskCount"`
	CompletedTaskCount   int       `json:"completedTaskCount"`
	CompletionRate       float64   `json:"completionRate"`
	TotalReports         int       `json:"totalReports"`
	CriticalReportsCount int       `json:"criticalReportsCount"`
	OverdueTaskCount     int       `json:"overdueTaskCount"`
	LastUpdated          time.Time `json:"lastUpdated"`
}

// ChartPoint is one labelled value of the issue-type distribution chart.
type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}
