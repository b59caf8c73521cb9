package repositories

import (
	"context"
	"database/sql"

	"birthday-tracker-api/internal/models"
)

// BirthdayRepository defines the storage operations for birthday records.
// Every method issues a single SQL statement.
type BirthdayRepository interface {
	// List retrieves all records in id order
	List(ctx context.Context) ([]*models.Birthday, error)

	// Create inserts the record and sets its generated ID
	Create(ctx context.Context, birthday *models.Birthday) error

	// Update replaces the mutable fields of the record with birthday.ID.
	// Returns ErrNotFound when no row matched the ID.
	Update(ctx context.Context, birthday *models.Birthday) error

	// Delete removes the record with the given ID.
	// Returns ErrNotFound when no row was deleted.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored records
	Count(ctx context.Context) (int64, error)
}

// RepositoryFactory builds repositories bound to a database handle. The
// handle changes whenever the connection provider replaces its connection.
type RepositoryFactory interface {
	BirthdayRepository(db *sql.DB) BirthdayRepository
}
