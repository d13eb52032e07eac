package cmd

import (
	"fmt"
	"net/url"
	"time"
)

// Storage drivers accepted in Config.StorageDriver.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBAutoMigrate bool
	SQLitePath    string

	RedisAddr string
	CacheTTL  time.Duration

	SalesReportSchedule string
	SalesReportLookback time.Duration

	LogLevel string

	OTLPEndpoint   string
	EnableTracing  bool
	EnableMetrics  bool
	SampleRate     float64
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// Validate checks the settings the selected storage driver depends on.
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the %s driver", c.StorageDriver)
		}
	case StorageDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the %s driver", c.StorageDriver)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.RedisAddr != "" && c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	if c.SalesReportLookback <= 0 {
		return fmt.Errorf("SALES_REPORT_LOOKBACK must be positive")
	}

	return nil
}

// PostgresDSN renders the connection settings as a postgres:// URL understood by both
// pgx and lib/pq.
func (c Config) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}

	q := url.Values{}
	if c.DBSslMode != "" {
		q.Set("sslmode", c.DBSslMode)
	}
	u.RawQuery = q.Encode()

	return u.String()
}
