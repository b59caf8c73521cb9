package sqlstore

import (
	"database/sql"

	"birthday-tracker-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// Factory implements repositories.RepositoryFactory for database/sql handles
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new repository factory
func NewFactory(logger *logrus.Logger) repositories.RepositoryFactory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		logger: logger,
	}
}

// BirthdayRepository creates a birthday repository bound to db
func (f *Factory) BirthdayRepository(db *sql.DB) repositories.BirthdayRepository {
	return NewBirthdayRepository(db, f.logger)
}
