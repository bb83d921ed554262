package testutil

import (
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/adyen/swaglabs/internal/config"
	"github.com/adyen/swaglabs/internal/database"
	"github.com/google/uuid"
)

// TestDatabase is a migrated schema owned by one test
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// localDefaults matches the docker postgres image
var localDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
	"POSTGRES_PORT":     "5432",
}

func getenv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return localDefaults[key]
}

// SetupTestDatabase creates a fresh schema with the order tables and
// registers its removal with t.Cleanup
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Open(pgConfig)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	schema := "orders_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec("CREATE SCHEMA " + schema); err != nil {
		admin.Close()
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}

	td := &TestDatabase{SchemaName: schema, admin: admin}
	t.Cleanup(func() { td.Teardown(t) })

	td.DB, err = database.Open(pgConfig, "search_path="+schema)
	if err != nil {
		t.Fatalf("Failed to connect to schema %s: %v", schema, err)
	}

	if err := td.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return td
}

// RunMigrations creates the order tables in the test schema
func (td *TestDatabase) RunMigrations() error {
	return database.Migrate(td.DB)
}

// Teardown drops the schema and closes both connections. It is safe to call
// more than once.
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
		td.DB = nil
	}
	if td.admin == nil {
		return
	}

	if _, err := td.admin.Exec("DROP SCHEMA IF EXISTS " + td.SchemaName + " CASCADE"); err != nil {
		t.Logf("Warning: failed to drop schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
	td.admin = nil
}
