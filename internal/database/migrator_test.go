package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kaasu/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMigrationConfig() config.MigrationConfig {
	return config.MigrationConfig{
		AutoMigrate:    true,
		MigrationsPath: "db/migrations",
		SeedsPath:      "db/seeds",
	}
}

// fastRetries shrinks the readiness loop for the duration of a test
func fastRetries(t *testing.T, retries int) {
	t.Helper()

	originalRetries := maxRetries
	originalInterval := retryInterval
	maxRetries = retries
	retryInterval = 100 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testMigrationConfig()
	cfg.SeedDatabase = true
	runner := NewMigrationRunner(db, cfg)

	assert.NotNil(t, runner)
	assert.Equal(t, db, runner.db)
	assert.Equal(t, "db/migrations", runner.migrationsPath)
	assert.Equal(t, "db/seeds", runner.seedsPath)
	assert.True(t, runner.seed)
}

func TestWaitForDatabase_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(nil)

	runner := NewMigrationRunner(db, testMigrationConfig())
	err = runner.WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	fastRetries(t, 2)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	runner := NewMigrationRunner(db, testMigrationConfig())
	err = runner.WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	fastRetries(t, 2)

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	runner := NewMigrationRunner(db, testMigrationConfig())
	err = runner.WaitForDatabase()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestRunMigrations_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{
		db:             db,
		migrationsPath: "/nonexistent/path/to/migrations",
	}

	// A missing directory is skipped, not fatal
	assert.NoError(t, runner.RunMigrations())
}

func TestRollbackMigrations_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{
		db:             db,
		migrationsPath: "/nonexistent/path/to/migrations",
	}

	assert.ErrorIs(t, runner.RollbackMigrations(1), ErrMigrationsNotFound)
}

func TestLoadSeeds_Disabled(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, testMigrationConfig())

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{
		db:        db,
		seedsPath: "/nonexistent/seeds/path",
		seed:      true,
	}

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_NoSeedFiles(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{
		db:        db,
		seedsPath: t.TempDir(),
		seed:      true,
	}

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_SuccessfulExecution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tempDir := t.TempDir()
	seedContent := `
INSERT INTO categories (name) VALUES ('Food'), ('Transport')
ON CONFLICT (name) DO NOTHING;
`
	err = os.WriteFile(filepath.Join(tempDir, "001_categories.sql"), []byte(seedContent), 0644)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO categories").WillReturnResult(sqlmock.NewResult(0, 2))

	runner := &MigrationRunner{
		db:        db,
		seedsPath: tempDir,
		seed:      true,
	}

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ExecutionFailureIsContinued(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tempDir := t.TempDir()
	err = os.WriteFile(filepath.Join(tempDir, "001_bad_data.sql"), []byte("INSERT INTO nonexistent_table VALUES (1);"), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(tempDir, "002_tags.sql"), []byte("INSERT INTO tags (name) VALUES ('urgent');"), 0644)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO nonexistent_table").WillReturnError(errors.New("table does not exist"))
	mock.ExpectExec("INSERT INTO tags").WillReturnResult(sqlmock.NewResult(0, 1))

	runner := &MigrationRunner{
		db:        db,
		seedsPath: tempDir,
		seed:      true,
	}

	// One broken seed file does not stop the others
	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ReadFileError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tempDir := t.TempDir()
	// A directory named like a seed file cannot be read
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "001_invalid.sql"), 0755))

	runner := &MigrationRunner{
		db:        db,
		seedsPath: tempDir,
		seed:      true,
	}

	err = runner.LoadSeeds()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read seed file")
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testMigrationConfig()
	cfg.AutoMigrate = false

	assert.NoError(t, RunMigrationsIfEnabled(db, cfg))
}

func TestRunMigrationsIfEnabled_DatabaseNotReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	fastRetries(t, 2)

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = RunMigrationsIfEnabled(db, testMigrationConfig())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database readiness check failed")
}

func TestGetMigrationStatus_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{
		db:             db,
		migrationsPath: "/nonexistent/migrations",
	}

	_, _, err = runner.GetMigrationStatus()

	assert.ErrorIs(t, err, ErrMigrationsNotFound)
}
