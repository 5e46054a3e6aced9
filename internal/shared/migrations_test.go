package shared

import (
	"database/sql"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	ConfigureDatabase(db, 1, 1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) < 2 {
			t.Fatalf("expected at least two migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration version %d missing up or down SQL", m.Version)
			}
			if m.Name == "" {
				t.Errorf("migration version %d missing name", m.Version)
			}
		}

		if migrations[0].Name != "create_catalog" {
			t.Errorf("expected first migration create_catalog, got %s", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db := newTestDB(t)

		applied, err := RunMigrations(db)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if applied != 2 {
			t.Errorf("expected 2 migrations applied, got %d", applied)
		}

		for _, table := range []string{"content_items", "history"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		version, err := CurrentVersion(db)
		if err != nil {
			t.Fatalf("failed to get version: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1, got %d", version)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}
		if _, err := db.Exec("SELECT 1 FROM history LIMIT 1"); err == nil {
			t.Error("history table should be dropped after rollback")
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback first migration: %v", err)
		}
		if version, _ := CurrentVersion(db); version != -1 {
			t.Errorf("expected no applied migrations, got version %d", version)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing to rollback")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		applied, err := RunMigrations(db)
		if err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}
		if applied != 0 {
			t.Errorf("expected no migrations on second run, got %d", applied)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})

	t.Run("splitStatements", func(t *testing.T) {
		script := "-- header\nCREATE TABLE a (x INT); -- trailing\n\n;CREATE TABLE b (y INT);"
		got := splitStatements(script)
		if len(got) != 2 {
			t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
		}
		if got[0] != "CREATE TABLE a (x INT)" || got[1] != "CREATE TABLE b (y INT)" {
			t.Errorf("unexpected statements: %q", got)
		}
	})
}
