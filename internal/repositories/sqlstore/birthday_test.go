package sqlstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"birthday-tracker-api/internal/database"
	"birthday-tracker-api/internal/models"
	"birthday-tracker-api/internal/repositories"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	tempDir, err := os.MkdirTemp("", "sqlstore_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to open database: %v", err)
	}

	dialect, _ := database.DialectFor(database.DriverSQLite)
	ddl, err := dialect.CreateTableSQL()
	if err != nil {
		t.Fatalf("Failed to load schema: %v", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tempDir)
	}
	return db, cleanup
}

func testRepo(db *sql.DB) repositories.BirthdayRepository {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewFactory(logger).BirthdayRepository(db)
}

func TestBirthdayRepository_CRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := testRepo(db)
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("List() on empty table = %v, want empty non-nil slice", list)
	}

	first := models.NewBirthday("Ada", models.NewDate(1990, time.January, 1), "Book", "")
	second := models.NewBirthday("Grace", models.NewDate(1985, time.December, 9), "Compiler", "https://example.com")
	for _, b := range []*models.Birthday{first, second} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	if first.ID == 0 || second.ID <= first.ID {
		t.Errorf("ids = %d, %d, want increasing positive ids", first.ID, second.ID)
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d records, want 2", len(list))
	}
	if list[0].ID != first.ID || list[1].Name != "Grace" {
		t.Errorf("List() order = %d/%s", list[0].ID, list[1].Name)
	}
	if list[1].Birthday.String() != "1985-12-09" {
		t.Errorf("birthday = %s, want 1985-12-09", list[1].Birthday)
	}
	if list[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	first.Idea = "Chess set"
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	// Same values again still counts as a match
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("repeated Update() failed: %v", err)
	}

	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestBirthdayRepository_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := testRepo(db)
	ctx := context.Background()
	missing := models.NewBirthday("Nobody", models.NewDate(2000, time.January, 1), "None", "")

	tests := []struct {
		name string
		call func() error
	}{
		{"update unknown id", func() error { missing.ID = 42; return repo.Update(ctx, missing) }},
		{"update zero id", func() error { missing.ID = 0; return repo.Update(ctx, missing) }},
		{"delete unknown id", func() error { return repo.Delete(ctx, 42) }},
		{"delete negative id", func() error { return repo.Delete(ctx, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !repositories.IsNotFound(err) {
				t.Errorf("error = %v, want not found", err)
			}
			if repositories.IsQueryError(err) {
				t.Error("not found should not be classified as a query error")
			}
		})
	}
}

func TestBirthdayRepository_QueryError(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := testRepo(db)
	if _, err := db.Exec("DROP TABLE birthdays"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	_, err := repo.List(context.Background())
	if !repositories.IsQueryError(err) {
		t.Errorf("List() error = %v, want query error", err)
	}
}
