package database

import (
	"fmt"
	"log/slog"
	"time"

	"kaasu/internal/config"
	"kaasu/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	logLevel := logger.Warn
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dialector(cfg), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.IsSQLite() {
		// A single connection serializes writers; sqlite locks the whole file anyway.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConnections)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func dialector(cfg *config.DatabaseConfig) gorm.Dialector {
	if cfg.IsSQLite() {
		return sqlite.Open(sqliteDSN(cfg.SQLitePath))
	}
	return postgres.Open(cfg.DSN())
}

// sqliteDSN enables foreign key enforcement, which sqlite leaves off by default
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on", path)
}

// AutoMigrate creates the schema from the models. The expense_tags join
// table is registered first so both the association and direct writes use
// the same composite-key model.
func (db *DB) AutoMigrate() error {
	if err := db.DB.SetupJoinTable(&models.Expense{}, "Tags", &models.ExpenseTag{}); err != nil {
		return fmt.Errorf("failed to set up expense_tags join table: %w", err)
	}

	return db.DB.AutoMigrate(
		&models.Category{},
		&models.Tag{},
		&models.Expense{},
		&models.ExpenseTag{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_category_id ON expenses(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_date_id ON expenses(date DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_expense_tags_tag_id ON expense_tags(tag_id)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			slog.Warn("Failed to create index", "query", query, "error", err)
		}
	}

	return nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.migrate(cfg); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.CreateIndexes(); err != nil {
		slog.Warn("Failed to create some indexes", "error", err)
	}

	slog.Info("Database initialized successfully", "driver", cfg.Database.Driver)

	return db, nil
}

func (db *DB) migrate(cfg *config.Config) error {
	// golang-migrate only carries postgres SQL; sqlite is always built from the models
	if cfg.Database.IsSQLite() {
		if err := db.AutoMigrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := RunMigrationsIfEnabled(sqlDB, cfg.Migration); err != nil {
		slog.Warn("Migration runner failed, falling back to GORM AutoMigrate", "error", err)

		if err := db.AutoMigrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return nil
}
