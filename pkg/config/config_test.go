package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-bins/pkg/config"
)

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	cfg, err := config.Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("STOCK_ALLOW_NEGATIVE", "true")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STOCK_TIMEZONE", "UTC")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverMemory, cfg.Stock.StorageDriver)
	assert.True(t, cfg.Stock.AllowNegativeStock)
	assert.False(t, cfg.Stock.AutoMigrate)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())

	loc, err := cfg.Stock.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_BoolInvalidoUsaDefault(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("STOCK_ALLOW_NEGATIVE", "quizas")
	t.Setenv("STOCK_TIMEZONE", "America/Bogota")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Stock.AllowNegativeStock)
	assert.True(t, cfg.Stock.AutoMigrate)
}

func TestLoad_ZonaInvalida(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("STOCK_TIMEZONE", "Marte/Base")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:1", DBName: "bins", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3A1@db:5432/bins?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
