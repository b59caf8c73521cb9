package sqlstore

import (
	"context"
	"database/sql"

	"birthday-tracker-api/internal/models"
	"birthday-tracker-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BirthdaysTable is the table backing birthday records
const BirthdaysTable = "birthdays"

// BirthdayRepository implements repositories.BirthdayRepository over database/sql
type BirthdayRepository struct {
	*BaseRepository
}

// NewBirthdayRepository creates a new birthday repository
func NewBirthdayRepository(db *sql.DB, logger *logrus.Logger) repositories.BirthdayRepository {
	return &BirthdayRepository{
		BaseRepository: NewBaseRepository(db, BirthdaysTable, "birthday", logger),
	}
}

// List retrieves all records in id order
func (r *BirthdayRepository) List(ctx context.Context) ([]*models.Birthday, error) {
	query := `
		SELECT id, name, birthday, idea, link, created_at
		FROM birthdays
		ORDER BY id`

	rows, err := r.executeQuery(ctx, "list", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	birthdays := make([]*models.Birthday, 0)
	for rows.Next() {
		b := &models.Birthday{}
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Birthday,
			&b.Idea,
			&b.Link,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "birthday", 0, err)
		}
		birthdays = append(birthdays, b)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "birthday", 0, err)
	}

	return birthdays, nil
}

// Create inserts a new record and assigns the generated ID
func (r *BirthdayRepository) Create(ctx context.Context, birthday *models.Birthday) error {
	query := `
		INSERT INTO birthdays (name, birthday, idea, link)
		VALUES (?, ?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query,
		birthday.Name,
		birthday.Birthday,
		birthday.Idea,
		birthday.Link,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "birthday", 0, err)
	}
	birthday.ID = id

	return nil
}

// Update replaces name, birthday, idea and link of an existing record
func (r *BirthdayRepository) Update(ctx context.Context, birthday *models.Birthday) error {
	// IDs are positive, so anything else cannot match a row
	if birthday.ID <= 0 {
		return repositories.NotFoundError("update", "birthday", birthday.ID)
	}

	query := `
		UPDATE birthdays
		SET name = ?, birthday = ?, idea = ?, link = ?
		WHERE id = ?`

	result, err := r.executeExec(ctx, "update", query,
		birthday.Name,
		birthday.Birthday,
		birthday.Idea,
		birthday.Link,
		birthday.ID,
	)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "update", birthday.ID)
}

// Delete removes a record by ID
func (r *BirthdayRepository) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return repositories.NotFoundError("delete", "birthday", id)
	}

	result, err := r.executeExec(ctx, "delete", "DELETE FROM birthdays WHERE id = ?", id)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", id)
}

// Count returns the number of stored records
func (r *BirthdayRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	row := r.executeQueryRow(ctx, "count", "SELECT COUNT(*) FROM birthdays")
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "birthday", 0, err)
	}
	return count, nil
}
