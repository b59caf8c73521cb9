package database

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

//go:embed migrations
var migrationsFS embed.FS

// Supported driver names, as registered with database/sql
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// schemaMigration is the migration that creates the birthdays table. Its up
// script is also the statement the request-path bootstrap runs.
const schemaMigration = "000001_create_birthdays_table.up.sql"

// Dialect holds the driver-specific SQL the database package needs
type Dialect struct {
	Driver           string
	tableExistsQuery string
	// seedQuery inserts the seed row only while the table is empty, so two
	// instances that both created the table cannot seed it twice
	seedQuery string
}

var dialects = map[string]Dialect{
	DriverMySQL: {
		Driver:           DriverMySQL,
		tableExistsQuery: `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`,
		seedQuery: `INSERT INTO birthdays (name, birthday, idea, link)
			SELECT ?, ?, ?, ? FROM DUAL
			WHERE NOT EXISTS (SELECT 1 FROM birthdays)`,
	},
	DriverSQLite: {
		Driver:           DriverSQLite,
		tableExistsQuery: `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		seedQuery: `INSERT INTO birthdays (name, birthday, idea, link)
			SELECT ?, ?, ?, ?
			WHERE NOT EXISTS (SELECT 1 FROM birthdays)`,
	},
}

// DialectFor returns the dialect for a driver name
func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return d, nil
}

// MigrationsDir is the embedded directory holding this dialect's migrations
func (d Dialect) MigrationsDir() string {
	return path.Join("migrations", d.Driver)
}

// Migrations returns the embedded migration files for this dialect
func (d Dialect) Migrations() (fs.FS, error) {
	return fs.Sub(migrationsFS, d.MigrationsDir())
}

// CreateTableSQL returns the idempotent CREATE TABLE statement
func (d Dialect) CreateTableSQL() (string, error) {
	data, err := migrationsFS.ReadFile(path.Join(d.MigrationsDir(), schemaMigration))
	if err != nil {
		return "", fmt.Errorf("failed to read schema for %s: %w", d.Driver, err)
	}
	return string(data), nil
}
