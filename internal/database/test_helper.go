package database

import (
	"fmt"
	"testing"

	"kaasu/internal/config"
	"kaasu/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cleanupTables lists tables children first so deletes never trip a foreign key
var cleanupTables = []string{
	"expense_tags",
	"expenses",
	"tags",
	"categories",
}

// SetupTestDB opens a migrated in-memory sqlite database. Foreign keys are
// enforced and the pool is pinned to one connection, since every new
// connection to ":memory:" would see an empty database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(":memory:")), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestCategory(t *testing.T, db *DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestTag(t *testing.T, db *DB, name string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}

	return tag
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	for _, table := range cleanupTables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}

	sqlDB, err := db.DB.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
