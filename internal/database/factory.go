package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/secrets"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Opener opens a database handle for the given credentials
type Opener interface {
	Open(ctx context.Context, config *ConnectionConfig, creds *secrets.Credentials) (*sql.DB, error)
}

// ConnectionFactory creates database connections
type ConnectionFactory struct {
	logger *logrus.Logger
}

// NewConnectionFactory creates a new connection factory
func NewConnectionFactory(logger *logrus.Logger) *ConnectionFactory {
	if logger == nil {
		logger = logrus.New()
	}
	return &ConnectionFactory{
		logger: logger,
	}
}

// Open creates a database connection based on the configuration and verifies
// it with a ping
func (f *ConnectionFactory) Open(ctx context.Context, config *ConnectionConfig, creds *secrets.Credentials) (*sql.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var (
		db  *sql.DB
		err error
	)
	switch config.Driver {
	case DriverMySQL:
		db, err = f.openMySQL(ctx, config, creds)
	case DriverSQLite:
		db, err = f.openSQLite(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", config.Driver)
	}
	if err != nil {
		return nil, err
	}

	f.configureConnectionPool(ctx, db, config)

	pingCtx := ctx
	if config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", config.Driver, err)
	}

	return db, nil
}

// openMySQL opens a MySQL connection. ClientFoundRows makes UPDATE report
// matched rows rather than changed rows.
func (f *ConnectionFactory) openMySQL(ctx context.Context, config *ConnectionConfig, creds *secrets.Credentials) (*sql.DB, error) {
	if creds == nil {
		return nil, fmt.Errorf("mysql connection requires credentials")
	}

	cfg := mysql.NewConfig()
	cfg.User = creds.Username
	cfg.Passwd = creds.Password
	cfg.DBName = creds.DatabaseName
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(config.Host, strconv.Itoa(config.port()))
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Timeout = config.ConnectTimeout

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build MySQL connector: %w", err)
	}

	logging.FromContext(ctx, f.logger).WithFields(logrus.Fields{
		"driver":   DriverMySQL,
		"db_host":  config.Host,
		"database": creds.DatabaseName,
	}).Debug("Creating MySQL connection")

	return sql.OpenDB(connector), nil
}

// openSQLite opens a SQLite database file, creating its directory if needed
func (f *ConnectionFactory) openSQLite(ctx context.Context, config *ConnectionConfig) (*sql.DB, error) {
	absPath, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := absPath + "?_foreign_keys=on&_busy_timeout=5000"

	logging.FromContext(ctx, f.logger).WithFields(logrus.Fields{
		"driver": DriverSQLite,
		"path":   absPath,
	}).Debug("Creating SQLite connection")

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return db, nil
}

// configureConnectionPool limits the handle to the single connection a
// function instance needs
func (f *ConnectionFactory) configureConnectionPool(ctx context.Context, db *sql.DB, config *ConnectionConfig) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	logging.FromContext(ctx, f.logger).WithFields(logrus.Fields{
		"max_open_conns":    1,
		"conn_max_lifetime": config.ConnMaxLifetime,
	}).Debug("Configured connection pool")
}
