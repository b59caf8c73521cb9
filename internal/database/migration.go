package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

// MigrationManager applies the embedded schema migrations with golang-migrate.
// The underlying handle is closed by Close.
type MigrationManager struct {
	db      *sql.DB
	dialect Dialect
	logger  *logrus.Logger
	migrate *migrate.Migrate
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *sql.DB, dialect Dialect, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

// MigrationInfo contains information about the applied schema version
type MigrationInfo struct {
	Version   uint
	Dirty     bool
	Applied   bool
	Timestamp time.Time
}

// RunMigrations executes all pending migrations
func (m *MigrationManager) RunMigrations() error {
	m.logger.Info("Starting database migrations...")

	mg, err := m.instance()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}

	currentVersion, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		m.logger.Warn("Database is in dirty state, attempting to force version")
		if err := mg.Force(int(currentVersion)); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
	}

	m.logger.WithField("current_version", currentVersion).Info("Current migration version")

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}

	m.logger.WithField("new_version", newVersion).Info("Migrations completed successfully")
	return nil
}

// RollbackMigration rolls back the last migration
func (m *MigrationManager) RollbackMigration() error {
	m.logger.Info("Rolling back last migration...")

	mg, err := m.instance()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}

	currentVersion, _, err := mg.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("no migrations to rollback")
		}
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	m.logger.WithField("current_version", currentVersion).Info("Rolling back from version")

	if err := mg.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	m.logger.Info("Rollback completed successfully")
	return nil
}

// ForceVersion marks the given version as applied without running it
func (m *MigrationManager) ForceVersion(version int) error {
	mg, err := m.instance()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}

	if err := mg.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}

	m.logger.WithField("version", version).Info("Forced migration version")
	return nil
}

// GetMigrationStatus returns the current migration status
func (m *MigrationManager) GetMigrationStatus() (*MigrationInfo, error) {
	mg, err := m.instance()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrate: %w", err)
	}

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to get migration version: %w", err)
	}

	return &MigrationInfo{
		Version:   version,
		Dirty:     dirty,
		Applied:   err == nil,
		Timestamp: time.Now(),
	}, nil
}

// Close releases the migrate driver and the database handle
func (m *MigrationManager) Close() error {
	if m.migrate != nil {
		srcErr, dbErr := m.migrate.Close()
		m.migrate = nil
		if srcErr != nil {
			return fmt.Errorf("failed to close migration source: %w", srcErr)
		}
		if dbErr != nil {
			return fmt.Errorf("failed to close migration driver: %w", dbErr)
		}
	}
	return m.db.Close()
}

// instance builds the migrate instance over the embedded migrations on
// first use. The MySQL driver pins a connection, so it is built once.
func (m *MigrationManager) instance() (*migrate.Migrate, error) {
	if m.migrate != nil {
		return m.migrate, nil
	}

	migrations, err := m.dialect.Migrations()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	source, err := iofs.New(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	var driver migratedb.Driver
	switch m.dialect.Driver {
	case DriverMySQL:
		driver, err = mysql.WithInstance(m.db, &mysql.Config{})
	case DriverSQLite:
		driver, err = sqlite3.WithInstance(m.db, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported database driver: %s", m.dialect.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, m.dialect.Driver, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	mg.Log = &migrateLogger{logger: m.logger}
	m.migrate = mg

	return mg, nil
}

// migrateLogger adapts logrus to migrate.Logger
type migrateLogger struct {
	logger *logrus.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return l.logger.IsLevelEnabled(logrus.DebugLevel)
}
