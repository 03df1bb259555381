package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepositoryCountTasksCreated(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	start := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery(`COUNT\(1\) FILTER \(WHERE status = 'Completed'\) AS completed`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"total", "completed"}).AddRow(4, 3))

	counts, err := repo.CountTasksCreated(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 3, counts.Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryCounters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM reports`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	total, err := repo.CountReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	mock.ExpectQuery(`severity = 'Critical' AND status <> 'Closed'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	critical, err := repo.CountCriticalOpenReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, critical)

	now := time.Now()
	mock.ExpectQuery(`status <> 'Completed' AND due_date < \$1`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	overdue, err := repo.CountOverdueTasks(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryCountReportsByIssueType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	since := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`GROUP BY issue_type\s+ORDER BY count DESC, issue_type ASC`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"issue_type", "count"}).
			AddRow("Water leak", 5).
			AddRow("Crack", 2).
			AddRow("Noise", 2))

	counts, err := repo.CountReportsByIssueType(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, "Water leak", counts[0].IssueType)
	assert.Equal(t, 5, counts[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
