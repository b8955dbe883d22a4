package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"go-floor-inventory/internal/model"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var silent = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

// dryRunDB renders SQL without a server
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=5432 user=floor dbname=floor sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// loadEnv loads .env from the module root
func loadEnv() {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			godotenv.Load(filepath.Join(dir, ".env"))
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// setupTestDB connects to TEST_DATABASE_URL with a schema of its own,
// dropped when the test ends. Tests skip without the variable.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	schema := fmt.Sprintf("test_floor_%d", time.Now().UnixNano())

	setupDB, err := gorm.Open(postgres.Open(dsn), silent)
	require.NoError(t, err, "connect for schema setup")
	require.NoError(t, setupDB.Exec("CREATE SCHEMA "+schema).Error)
	t.Cleanup(func() {
		setupDB.Exec("DROP SCHEMA IF EXISTS " + schema + " CASCADE")
		if sqlDB, err := setupDB.DB(); err == nil {
			sqlDB.Close()
		}
	})

	// search_path in the DSN so every pooled connection uses the test schema
	db, err := gorm.Open(postgres.Open(withSearchPath(dsn, schema)), silent)
	require.NoError(t, err, "connect to test schema")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.StockRequest{}, &model.OverflowEvent{}))
	require.NoError(t, db.Create(&model.Product{
		ProductNumber:    "12345-67890-71",
		LocationNumber:   "123456",
		BoxType:          "A4",
		LocationCapacity: 50,
	}).Error)

	return db
}

func withSearchPath(dsn, schema string) string {
	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "search_path=" + schema
	}
	return dsn + " search_path=" + schema
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 3, hour, minute, 0, 0, time.UTC)
}
