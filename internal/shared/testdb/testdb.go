// Package testdb opens a throwaway SQLite database with the application schema for integration tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/pathakpriyanka774/hrms-lite/internal/shared/connection"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/schema"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Open(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hrms_test.db")
	db, err := gorm.Open(sqlite.Open(connection.SQLiteDSN(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := schema.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
