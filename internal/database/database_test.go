package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgeteer/internal/config"
	"budgeteer/internal/logger"
	"budgeteer/internal/models"
)

func init() {
	logger.Init("test")
}

func TestConfigURLs(t *testing.T) {
	cfg := NewConfig(&config.Config{
		DBDriver:   "postgres",
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "budget",
		DBPassword: "p@ss word",
		DBName:     "budgeteer",
		DBSSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5432 user=budget password=p@ss word dbname=budgeteer sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://budget:p%40ss%20word@db:5432/budgeteer?sslmode=disable", cfg.MigrationURL())

	cfg.Driver = "sqlite"
	cfg.SQLitePath = "/tmp/budgeteer.db"
	assert.Equal(t, "sqlite3:///tmp/budgeteer.db", cfg.MigrationURL())
}

func TestNewManagerRejectsUnknownDriver(t *testing.T) {
	_, err := NewManager(&Config{Driver: "mysql"})
	assert.Error(t, err)
}

func TestSQLiteMigrations(t *testing.T) {
	cfg := &Config{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "data", "budgeteer.db")}

	manager, err := NewManager(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	require.NoError(t, manager.RunMigrations())
	require.NoError(t, manager.RunMigrations(), "re-running is a no-op")

	category := &models.Category{Name: "Food", Slug: "food"}
	require.NoError(t, manager.DB().Create(category).Error)

	dup := &models.Category{Name: "Food", Slug: "food"}
	assert.Error(t, manager.DB().Create(dup).Error, "slug is unique")

	orphan := &models.Transaction{CategoryID: "missing", Type: models.TransactionTypeExpense}
	assert.Error(t, manager.DB().Create(orphan).Error, "foreign keys are enforced")

	mig, err := NewMigrator(cfg)
	require.NoError(t, err)
	defer mig.Close()

	version, dirty, err := mig.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.False(t, dirty)

	require.NoError(t, mig.Down(1))
	version, _, err = mig.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 0, version)

	assert.Error(t, mig.Down(0))
}
