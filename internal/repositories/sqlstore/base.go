package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BaseRepository provides query execution and logging shared by the
// database/sql repositories. Statements use ? placeholders, which both the
// MySQL and SQLite drivers accept.
type BaseRepository struct {
	db     *sql.DB
	table  string
	entity string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sql.DB, table, entity string, logger *logrus.Logger) *BaseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository{
		db:     db,
		table:  table,
		entity: entity,
		logger: logger,
	}
}

// logQuery logs a query with its execution time
func (r *BaseRepository) logQuery(ctx context.Context, operation string, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"query":     query,
		"arg_count": len(args),
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		logging.FromContext(ctx, r.logger).WithFields(fields).Error("Query failed")
	} else {
		logging.FromContext(ctx, r.logger).WithFields(fields).Debug("Query executed")
	}
}

// executeQuery executes a query and logs the result
func (r *BaseRepository) executeQuery(ctx context.Context, operation, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	r.logQuery(ctx, operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.entity, 0, err)
	}

	return rows, nil
}

// executeQueryRow executes a single-row query and logs the result
func (r *BaseRepository) executeQueryRow(ctx context.Context, operation, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.logQuery(ctx, operation, query, args, time.Since(start), row.Err())

	return row
}

// executeExec executes a non-query statement and logs the result
func (r *BaseRepository) executeExec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	r.logQuery(ctx, operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.entity, 0, err)
	}

	return result, nil
}

// checkRowsAffected returns a not-found error when the statement matched no rows
func (r *BaseRepository) checkRowsAffected(result sql.Result, operation string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError(operation, r.entity, id, err)
	}

	if rowsAffected == 0 {
		return repositories.NotFoundError(operation, r.entity, id)
	}

	return nil
}
