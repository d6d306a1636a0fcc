package database

import (
	"path/filepath"
	"testing"

	"edge-gdt-validator/internal/config"
	"edge-gdt-validator/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorUnknownDriver(t *testing.T) {
	cfg := config.LoadConfig()
	cfg.Database.Driver = "oracle"
	_, err := Dialector(cfg)
	assert.Error(t, err)
}

func TestDialectorPostgres(t *testing.T) {
	cfg := config.LoadConfig()
	d, err := Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := config.LoadConfig()
	cfg.Database.Driver = DriverSQLite
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "gdt.db")

	require.NoError(t, Connect(cfg))
	t.Cleanup(func() { _ = Close() })

	require.NoError(t, Migrate())
	require.NoError(t, HealthCheck())
	assert.True(t, DB.Migrator().HasTable(&model.ValidationRun{}))
	assert.True(t, DB.Migrator().HasTable(&model.CheckResult{}))
}
