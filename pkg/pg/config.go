package pg

import "time"

// Config controls the core-store connection pool and migration runner.
// The core store holds the tenant directory, licensing and permission tables;
// per-tenant databases are opened on demand by the connection cache and do
// not use this configuration.
type Config struct {
	ConnectionString  string        `env:"CORE_DB_URL,required"`
	MaxOpenConns      int32         `env:"CORE_DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"CORE_DB_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"CORE_DB_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"CORE_DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"CORE_DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"CORE_DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"CORE_DB_RETRY_INTERVAL" envDefault:"5s"`

	MigrationsPath  string `env:"CORE_DB_MIGRATIONS_PATH" envDefault:"migrations/core"`
	MigrationsTable string `env:"CORE_DB_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
