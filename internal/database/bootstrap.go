package database

import (
	"context"
	"database/sql"
	"fmt"

	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/models"

	"github.com/sirupsen/logrus"
)

// Bootstrapper makes sure the birthdays table exists. It runs on every
// request; only the call that creates the table inserts the seed record.
type Bootstrapper struct {
	dialect Dialect
	logger  *logrus.Logger
}

// NewBootstrapper creates a bootstrapper for the given dialect
func NewBootstrapper(dialect Dialect, logger *logrus.Logger) *Bootstrapper {
	if logger == nil {
		logger = logrus.New()
	}
	return &Bootstrapper{
		dialect: dialect,
		logger:  logger,
	}
}

// Ensure creates the table if absent and seeds it when it was just created
// and is empty
func (b *Bootstrapper) Ensure(ctx context.Context, db *sql.DB) error {
	existed, err := b.tableExists(ctx, db)
	if err != nil {
		return err
	}

	ddl, err := b.dialect.CreateTableSQL()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create birthdays table: %w", err)
	}

	if existed {
		return nil
	}

	return b.seed(ctx, db)
}

func (b *Bootstrapper) tableExists(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, b.dialect.tableExistsQuery, "birthdays").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check birthdays table: %w", err)
	}
	return count > 0, nil
}

func (b *Bootstrapper) seed(ctx context.Context, db *sql.DB) error {
	seed := models.SeedBirthday()
	result, err := db.ExecContext(ctx, b.dialect.seedQuery,
		seed.Name, seed.Birthday, seed.Idea, seed.Link,
	)
	if err != nil {
		return fmt.Errorf("failed to insert seed record: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n > 0 {
		logging.FromContext(ctx, b.logger).WithField("name", seed.Name).Info("Seeded birthdays table")
	}
	return nil
}
