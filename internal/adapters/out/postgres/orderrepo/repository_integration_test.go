package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "homeoffice/internal/adapters/out/postgres"
	"homeoffice/internal/adapters/out/postgres/migrations"
	"homeoffice/internal/adapters/out/repotest"
	"homeoffice/internal/core/ports"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestGormOrderRepository runs the shared repository behaviour against PostgreSQL.
func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(connStr))

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	factory := postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.Run(t, &repotest.OrderRepositorySuite{
		NewFactory: func() ports.UnitOfWorkFactory {
			require.NoError(t, db.Exec("TRUNCATE TABLE orders, line_items").Error)
			return factory
		},
	})
}
