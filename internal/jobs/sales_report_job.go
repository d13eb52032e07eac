package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"homeoffice/internal/core/application/usecases/queries"
	"homeoffice/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DefaultSalesReportSchedule runs the report at the top of every hour.
const DefaultSalesReportSchedule = "0 0 * * * *"

// SalesReportJob periodically logs the sales summary of a trailing window ending at
// the moment the job fires.
type SalesReportJob struct {
	handler  queries.GetSalesSummaryQueryHandler
	schedule string
	lookback time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSalesReportJob creates a job reporting on the trailing lookback window.
// schedule is a six-field cron expression (seconds first); empty means
// DefaultSalesReportSchedule.
func NewSalesReportJob(
	handler queries.GetSalesSummaryQueryHandler,
	schedule string,
	lookback time.Duration,
	logger *slog.Logger,
) *SalesReportJob {
	if schedule == "" {
		schedule = DefaultSalesReportSchedule
	}

	return &SalesReportJob{
		handler:  handler,
		schedule: schedule,
		lookback: lookback,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "sales_report_job"),
	}
}

// Start registers the report with the scheduler and starts it.
func (j *SalesReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Sales report job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sales report schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sales report job started",
		"schedule", j.schedule,
		"lookback", j.lookback.String(),
	)
	return nil
}

// RunOnce builds and logs the summary of [now-lookback, now].
func (j *SalesReportJob) RunOnce(ctx context.Context) (services.SalesSummary, error) {
	end := j.now().UTC()

	query, err := queries.NewGetSalesSummaryQuery(end.Add(-j.lookback), end, nil)
	if err != nil {
		return services.SalesSummary{}, err
	}

	summary, err := j.handler.Handle(ctx, query)
	if err != nil {
		return services.SalesSummary{}, err
	}

	j.logger.InfoContext(ctx, "Sales report",
		"window", summary.Window.String(),
		"orders", summary.OrderCount,
		"revenue", summary.Revenue.StringFixed(2),
		"average_ticket", summary.AverageTicket().StringFixed(2),
		"locations", len(summary.ByLocation),
	)

	for location, figure := range summary.ByLocation {
		j.logger.DebugContext(ctx, "Sales report by location",
			"location", location.String(),
			"orders", figure.Count,
			"revenue", figure.Revenue.StringFixed(2),
		)
	}

	return summary, nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *SalesReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Sales report job stopped")
}
