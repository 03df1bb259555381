package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/fims-api/internal/dto"
	"github.com/noah-isme/fims-api/internal/repository"
	appErrors "github.com/noah-isme/fims-api/pkg/errors"
)

type dashboardStore interface {
	CountTasksCreated(ctx context.Context, start, end time.Time) (repository.TaskCounts, error)
	CountReports(ctx context.Context) (int, error)
	CountCriticalOpenReports(ctx context.Context) (int, error)
	CountOverdueTasks(ctx context.Context, now time.Time) (int, error)
	CountReportsByIssueType(ctx context.Context, since time.Time) ([]repository.IssueTypeCount, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardServiceConfig tunes summary caching and the chart window default.
type DashboardServiceConfig struct {
	CacheTTL         time.Duration
	DefaultChartDays int
}

// DashboardService computes read-only rollups over inspections and reports.
type DashboardService struct {
	repo   dashboardStore
	cache  summaryCache
	logger *zap.Logger
	now    func() time.Time
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(repo dashboardStore, cache summaryCache, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.DefaultChartDays <= 0 {
		cfg.DefaultChartDays = 30
	}
	return &DashboardService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
		cfg:    cfg,
	}
}

// Summary rolls up today's task counts (local midnight to next midnight),
// the all-time report total, open critical reports and overdue tasks. The
// completion rate is 0 when nothing was created today.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	now := s.now()
	cacheKey := fmt.Sprintf("dash:summary:%s", now.Format("2006-01-02"))
	if s.cache != nil {
		var cached dto.DashboardSummary
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	tasks, err := s.repo.CountTasksCreated(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task counts")
	}
	totalReports, err := s.repo.CountReports(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count reports")
	}
	criticalReports, err := s.repo.CountCriticalOpenReports(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count critical reports")
	}
	overdueTasks, err := s.repo.CountOverdueTasks(ctx, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count overdue tasks")
	}

	var completionRate float64
	if tasks.Total > 0 {
		completionRate = math.Round(float64(tasks.Completed)*100/float64(tasks.Total)*100) / 100
	}

	summary := &dto.DashboardSummary{
		TodayTaskCount:       tasks.Total,
		CompletedTaskCount:   tasks.Completed,
		CompletionRate:       completionRate,
		TotalReports:         totalReports,
		CriticalReportsCount: criticalReports,
		OverdueTaskCount:     overdueTasks,
		LastUpdated:          now,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return summary, nil
}

// IssueChart groups reports filed in the trailing window by issue type,
// most frequent first.
func (s *DashboardService) IssueChart(ctx context.Context, days int) ([]dto.ChartPoint, error) {
	if days <= 0 {
		days = s.cfg.DefaultChartDays
	}
	since := s.now().AddDate(0, 0, -days)

	counts, err := s.repo.CountReportsByIssueType(ctx, since)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load issue chart")
	}

	points := make([]dto.ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, dto.ChartPoint{Label: c.IssueType, Value: c.Count})
	}
	return points, nil
}
