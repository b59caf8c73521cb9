package repositories

import (
	"errors"
	"fmt"
	"strconv"
)

// Common repository errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrQuery is returned when a statement fails in the database
	ErrQuery = errors.New("query error")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	ID      string // Entity ID (if applicable)
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target error
func (e *RepositoryError) Is(target error) bool {
	if target == ErrQuery {
		return !errors.Is(e.Err, ErrNotFound)
	}
	return errors.Is(e.Err, target)
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity string, id int64, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     formatID(id),
		Err:    err,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(op, entity string, id int64) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		ID:      formatID(id),
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %d not found", entity, id),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsQueryError checks if an error is a storage failure other than not found
func IsQueryError(err error) bool {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.Is(ErrQuery)
	}
	return errors.Is(err, ErrQuery)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
