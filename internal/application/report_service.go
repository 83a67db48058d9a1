package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/helpers"
)

// ReportService serves aggregation reports with a short Redis cache in
// front. A cache miss or Redis outage falls through to SQL.
type ReportService struct {
	Reports  repo.ReportRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewReportService(reports repo.ReportRepository, rdb *redis.Client,
	logger *logrus.Logger, cacheTTL time.Duration) *ReportService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ReportService{Reports: reports, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

func (s *ReportService) MilkDaily(ctx context.Context, farmerID string, from, to time.Time) ([]entity.MilkDailyTotal, error) {
	key := fmt.Sprintf("report:milk:daily:%s:%s:%s", farmerID,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	return cached(ctx, s, key, func() ([]entity.MilkDailyTotal, error) {
		return s.Reports.MilkDaily(ctx, farmerID, from, to)
	})
}

func (s *ReportService) MilkMonthly(ctx context.Context, farmerID string, year int) ([]entity.MilkMonthlyTotal, error) {
	key := fmt.Sprintf("report:milk:monthly:%s:%d", farmerID, year)
	return cached(ctx, s, key, func() ([]entity.MilkMonthlyTotal, error) {
		return s.Reports.MilkMonthly(ctx, farmerID, year)
	})
}

func (s *ReportService) OrdersSummary(ctx context.Context, farmerID string, from, to time.Time) ([]entity.OrderSummaryRow, error) {
	key := fmt.Sprintf("report:orders:%s:%s:%s", farmerID,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	return cached(ctx, s, key, func() ([]entity.OrderSummaryRow, error) {
		return s.Reports.OrdersSummary(ctx, farmerID, from, to)
	})
}

func (s *ReportService) AttendanceSummary(ctx context.Context, farmerID string, month time.Time) ([]entity.AttendanceSummaryRow, error) {
	key := fmt.Sprintf("report:attendance:%s:%s", farmerID, month.Format("2006-01"))
	return cached(ctx, s, key, func() ([]entity.AttendanceSummaryRow, error) {
		return s.Reports.AttendanceSummary(ctx, farmerID, month)
	})
}

func cached[T any](ctx context.Context, s *ReportService, key string, load func() ([]T, error)) ([]T, error) {
	if s.Redis != nil {
		var hit []T
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &hit)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("report cache read failed")
		}
		if ok {
			return hit, nil
		}
	}

	out, err := load()
	if err != nil {
		return nil, fromRepo(err)
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, out, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("report cache write failed")
		}
	}
	return out, nil
}
