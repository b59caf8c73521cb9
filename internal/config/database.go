package config

import (
	"fmt"
	"time"

	"birthday-tracker-api/internal/database"

	"github.com/sirupsen/logrus"
)

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Path            string
	ConnectTimeout  time.Duration
	ConnMaxLifetime time.Duration
}

// Validate checks the keys the configured driver needs
func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case database.DriverMySQL:
		if c.Host == "" {
			return fmt.Errorf("DB_HOST is required for the mysql driver")
		}
	case database.DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite3 driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %q", c.Driver)
	}

	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive")
	}
	return nil
}

// ToConnectionConfig converts to the database package's connection config
func (c DatabaseConfig) ToConnectionConfig(logger *logrus.Logger) *database.ConnectionConfig {
	return &database.ConnectionConfig{
		Driver:          c.Driver,
		Host:            c.Host,
		Port:            c.Port,
		Path:            c.Path,
		ConnectTimeout:  c.ConnectTimeout,
		ConnMaxLifetime: c.ConnMaxLifetime,
		Logger:          logger,
	}
}

// Dialect returns the schema dialect of the configured driver
func (c DatabaseConfig) Dialect() (database.Dialect, error) {
	return database.DialectFor(c.Driver)
}
