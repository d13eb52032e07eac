package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "homeoffice/internal/adapters/in/http"
	"homeoffice/internal/adapters/out/memory"
	"homeoffice/internal/adapters/out/observability"
	"homeoffice/internal/adapters/out/postgres"
	"homeoffice/internal/adapters/out/postgres/migrations"
	"homeoffice/internal/adapters/out/postgres/orderrepo"
	"homeoffice/internal/adapters/out/rediscache"
	"homeoffice/internal/adapters/out/sqlite"
	"homeoffice/internal/core/application/usecases/commands"
	"homeoffice/internal/core/application/usecases/queries"
	"homeoffice/internal/core/domain/services"
	"homeoffice/internal/core/ports"
	"homeoffice/internal/jobs"
	"homeoffice/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	cfg       Config
	logger    *slog.Logger
	telemetry *telemetry.Telemetry

	uowFactory ports.UnitOfWorkFactory
	repo       ports.OrderRepository

	closers []func() error
}

// NewCompositionRoot opens the configured storage and stacks the cache and the
// observability decorators on top of it. Close releases everything it opened.
func NewCompositionRoot(ctx context.Context, cfg Config, tel *telemetry.Telemetry, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		telemetry: tel,
	}

	if err := c.openStorage(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.attachCache(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.attachObservability(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) openStorage(ctx context.Context) error {
	switch c.cfg.StorageDriver {
	case StorageDriverPostgres:
		dsn := c.cfg.PostgresDSN()
		if c.cfg.DBAutoMigrate {
			if err := migrations.Up(dsn); err != nil {
				return err
			}
		}

		gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return fmt.Errorf("failed to access database pool: %w", err)
		}
		c.closers = append(c.closers, sqlDB.Close)

		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		c.repo = orderrepo.NewGormOrderRepository(gormDB)

	case StorageDriverSQLite:
		db, err := sqlite.Open(ctx, c.cfg.SQLitePath)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, db.Close)

		c.uowFactory = sqlite.NewUnitOfWorkFactory(db)
		c.repo = sqlite.NewRepository(db)

	case StorageDriverMemory:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.repo = memory.NewRepository(store)

	default:
		return fmt.Errorf("unknown storage driver %q", c.cfg.StorageDriver)
	}

	c.logger.InfoContext(ctx, "storage ready", "driver", c.cfg.StorageDriver)
	return nil
}

func (c *CompositionRoot) attachCache(ctx context.Context) error {
	if c.cfg.RedisAddr == "" {
		return nil
	}

	client, err := rediscache.NewClient(ctx, c.cfg.RedisAddr)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, client.Close)

	cached := rediscache.NewOrderRepository(
		c.repo,
		rediscache.NewRedisCache(client, c.cfg.ServiceName),
		c.cfg.CacheTTL,
		c.logger,
	)
	c.uowFactory = rediscache.NewUnitOfWorkFactory(c.uowFactory, cached)
	c.repo = cached

	c.logger.InfoContext(ctx, "order cache enabled", "addr", c.cfg.RedisAddr, "ttl", c.cfg.CacheTTL.String())
	return nil
}

func (c *CompositionRoot) attachObservability() error {
	metrics, err := observability.NewMetrics(c.telemetry.Meter())
	if err != nil {
		return err
	}

	c.uowFactory = observability.NewUnitOfWorkFactory(c.uowFactory, metrics)
	c.repo = observability.NewOrderRepository(c.repo, metrics)
	return nil
}

func (c *CompositionRoot) CreateRecordOrderCommandHandler() commands.RecordOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.repo)
}

func (c *CompositionRoot) CreateFindOrdersBetweenQueryHandler() queries.FindOrdersBetweenQueryHandler {
	return queries.NewFindOrdersBetweenQueryHandler(c.repo, c.logger)
}

func (c *CompositionRoot) CreateFindOrdersForLocationQueryHandler() queries.FindOrdersForLocationQueryHandler {
	return queries.NewFindOrdersForLocationQueryHandler(c.repo, c.logger)
}

func (c *CompositionRoot) CreateGetSalesSummaryQueryHandler() queries.GetSalesSummaryQueryHandler {
	return queries.NewGetSalesSummaryQueryHandler(c.repo, services.NewSalesReporter(), c.logger)
}

// CreateHTTPServer builds the echo instance serving the order API.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpadapter.NewServer(
		c.CreateRecordOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateFindOrdersBetweenQueryHandler(),
		c.CreateFindOrdersForLocationQueryHandler(),
		c.CreateGetSalesSummaryQueryHandler(),
		c.logger,
	)

	metrics, err := httpadapter.NewMetrics(c.telemetry.Meter())
	if err != nil {
		return nil, err
	}

	return httpadapter.NewRouter(server, metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetSalesSummaryQueryHandler(),
		c.cfg.SalesReportSchedule,
		c.cfg.SalesReportLookback,
		c.logger,
	)
}

// Close releases storage and cache connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// ShutdownTimeout bounds graceful shutdown of the HTTP server and telemetry.
const ShutdownTimeout = 10 * time.Second

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
