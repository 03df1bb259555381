package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DashboardRepository runs the read-only aggregate queries behind the
// dashboard endpoints.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// TaskCounts holds the created/completed tallies for one creation window.
type TaskCounts struct {
	Total     int `db:"total"`
	Completed int `db:"completed"`
}

// CountTasksCreated tallies inspections created in [start, end) and how many
// of those are Completed.
func (r *DashboardRepository) CountTasksCreated(ctx context.Context, start, end time.Time) (TaskCounts, error) {
	const query = `
SELECT
	COUNT(1) AS total,
	COUNT(1) FILTER (WHERE status = 'Completed') AS completed
FROM inspections
WHERE created_at >= $1 AND created_at < $2`

	var counts TaskCounts
	if err := r.db.GetContext(ctx, &counts, query, start, end); err != nil {
		return TaskCounts{}, fmt.Errorf("count created tasks: %w", err)
	}
	return counts, nil
}

// CountReports returns the all-time report total.
func (r *DashboardRepository) CountReports(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(1) FROM reports`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return count, nil
}

// CountCriticalOpenReports returns Critical reports that are not yet Closed.
func (r *DashboardRepository) CountCriticalOpenReports(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(1) FROM reports WHERE severity = 'Critical' AND status <> 'Closed'`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count critical reports: %w", err)
	}
	return count, nil
}

// CountOverdueTasks returns inspections past their due date and not Completed.
func (r *DashboardRepository) CountOverdueTasks(ctx context.Context, now time.Time) (int, error) {
	const query = `SELECT COUNT(1) FROM inspections WHERE status <> 'Completed' AND due_date < $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, now); err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return count, nil
}

// IssueTypeCount is one bucket of the issue distribution.
type IssueTypeCount struct {
	IssueType string `db:"issue_type"`
	Count     int    `db:"count"`
}

// CountReportsByIssueType groups reports filed since the given time by issue
// type. Ties on count break on issue type ascending so the ordering is
// deterministic.
func (r *DashboardRepository) CountReportsByIssueType(ctx context.Context, since time.Time) ([]IssueTypeCount, error) {
	const query = `
SELECT issue_type, COUNT(1) AS count
FROM reports
WHERE reported_at >= $1
GROUP BY issue_type
ORDER BY count DESC, issue_type ASC`

	var counts []IssueTypeCount
	if err := r.db.SelectContext(ctx, &counts, query, since); err != nil {
		return nil, fmt.Errorf("count reports by issue type: %w", err)
	}
	return counts, nil
}
