// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var quiet = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

// NewDB opens a private in-memory SQLite database with every table migrated.
// It holds a single connection, so statements never interleave; use
// NewFileDB or NewPostgresDB for tests that exercise concurrent writers.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), quiet)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrate(t, db)
	return db
}

// NewFileDB opens a SQLite database file in a temp dir behind a pool of
// connections. Transactions begin IMMEDIATE and so exclude each other, while
// statements outside a transaction interleave freely across connections.
func NewFileDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := "file:" + path + "?_busy_timeout=10000&_txlock=immediate&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), quiet)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrate(t, db)
	return db
}

// NewPostgresDB connects to TEST_DATABASE_URL and migrates every table into
// a fresh schema that is dropped when the test ends. The test is skipped
// when the variable is unset.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	admin, err := gorm.Open(postgres.Open(dsn), quiet)
	require.NoError(t, err)
	adminDB, err := admin.DB()
	require.NoError(t, err)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	require.NoError(t, admin.Exec("CREATE SCHEMA "+schema).Error)

	db, err := gorm.Open(postgres.Open(withSearchPath(dsn, schema)), quiet)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)

	t.Cleanup(func() {
		_ = sqlDB.Close()
		_ = admin.Exec("DROP SCHEMA " + schema + " CASCADE").Error
		_ = adminDB.Close()
	})

	migrate(t, db)
	return db
}

// withSearchPath points new connections at schema, for URL and key=value DSNs.
func withSearchPath(dsn, schema string) string {
	if !strings.Contains(dsn, "://") {
		return dsn + " search_path=" + schema
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "search_path=" + schema
}

func migrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.SystemLog{},
		&models.Pet{},
		&models.PetPhoto{},
		&models.Feed{},
		&models.Message{},
	))
}

// CreateUser inserts an active local user with the given username.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Password:     "$2a$10$abcdefghijklmnopqrstuuYz7V7w1tq9F1x6dWc1Xb7d5sPiZ0G5y",
		IsActive:     true,
		AuthProvider: models.ProviderLocal,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
