package processor

import (
	"context"
	"log"

	"shopadmin/admin-service/internal/app/admin/service"
	"shopadmin/pkg/logger"

	"github.com/robfig/cron/v3"
)

// StatsScheduler периодически обновляет gauge-метрики дашборда.
// Ответы /dashboard считаются по запросу, расписание влияет только на /metrics.
type StatsScheduler struct {
	cron         *cron.Cron
	dashboardSvc service.DashboardServiceInterface
}

func NewStatsScheduler(dashboardSvc service.DashboardServiceInterface) *StatsScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &StatsScheduler{
		cron:         c,
		dashboardSvc: dashboardSvc,
	}
}

func (s *StatsScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting stats scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.dashboardSvc.RefreshMetrics(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to refresh dashboard metrics")
			return
		}
		logger.Debug().Msg("Dashboard metrics refreshed")
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	if err := s.dashboardSvc.RefreshMetrics(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed initial dashboard metrics refresh")
	}

	return nil
}

func (s *StatsScheduler) Stop() {
	logger.Info().Msg("Stopping stats scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Stats scheduler stopped")
}

func (s *StatsScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
