package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/secrets"

	"github.com/sirupsen/logrus"
)

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	Driver          string
	Host            string
	Port            int
	Path            string
	ConnectTimeout  time.Duration
	ConnMaxLifetime time.Duration
	Logger          *logrus.Logger
}

// Validate validates the connection configuration
func (c *ConnectionConfig) Validate() error {
	switch c.Driver {
	case DriverMySQL:
		if c.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("database path cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	return nil
}

// endpoint describes the target for log lines
func (c *ConnectionConfig) endpoint() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return c.Host
}

func (c *ConnectionConfig) port() int {
	if c.Port == 0 {
		return 3306
	}
	return c.Port
}

// ConnectionError is returned when a database connection cannot be opened
type ConnectionError struct {
	Host string
	Err  error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection to %s failed: %v", e.Host, e.Err)
}

// Unwrap returns the underlying error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is or wraps a *ConnectionError
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// Provider owns the database handle used by request handling
type Provider interface {
	// Acquire returns a live handle, opening one with creds when there is
	// none or the current one no longer answers
	Acquire(ctx context.Context, creds *secrets.Credentials) (*sql.DB, error)

	// IsHealthy reports whether a handle is open and answers a ping
	IsHealthy(ctx context.Context) bool

	// Reset closes and drops the current handle
	Reset() error
}

// ConnectionManager keeps at most one database handle and reuses it across
// invocations while it stays healthy
type ConnectionManager struct {
	config *ConnectionConfig
	opener Opener

	mu sync.Mutex
	db *sql.DB
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(config *ConnectionConfig, opener Opener) *ConnectionManager {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if opener == nil {
		opener = NewConnectionFactory(config.Logger)
	}
	return &ConnectionManager{
		config: config,
		opener: opener,
	}
}

// Acquire returns the current handle if healthy, otherwise opens a new one
func (cm *ConnectionManager) Acquire(ctx context.Context, creds *secrets.Credentials) (*sql.DB, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	log := logging.FromContext(ctx, cm.config.Logger)

	if cm.healthyLocked(ctx) {
		return cm.db, nil
	}
	if cm.db != nil {
		log.Warn("Database connection is no longer open, reconnecting")
		cm.closeLocked(log)
	}

	db, err := cm.opener.Open(ctx, cm.config, creds)
	if err != nil {
		log.WithError(err).WithField("db_host", cm.config.endpoint()).Error("DB Connection failed")
		return nil, &ConnectionError{Host: cm.config.endpoint(), Err: err}
	}

	cm.db = db
	log.WithField("db_host", cm.config.endpoint()).Info("Successfully connected to DB")
	return db, nil
}

// IsHealthy pings the current handle
func (cm *ConnectionManager) IsHealthy(ctx context.Context) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.healthyLocked(ctx)
}

func (cm *ConnectionManager) healthyLocked(ctx context.Context) bool {
	return cm.db != nil && cm.db.PingContext(ctx) == nil
}

// Reset closes the current handle so the next Acquire reconnects
func (cm *ConnectionManager) Reset() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.closeLocked(logrus.NewEntry(cm.config.Logger))
}

// Close closes the database connection
func (cm *ConnectionManager) Close() error {
	return cm.Reset()
}

func (cm *ConnectionManager) closeLocked(log *logrus.Entry) error {
	if cm.db == nil {
		return nil
	}

	err := cm.db.Close()
	cm.db = nil

	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	log.Info("Database connection closed")
	return nil
}
