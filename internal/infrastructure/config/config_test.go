package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "storefront-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "storefront", cfg.Database.DBName)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 100, cfg.HTTP.RateLimitRequests)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.App.Port = "9090"
	cfg.Database.Host = "db.internal"
	cfg.Log.Level = "debug"
	applyDefaults(cfg)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass in development", func(t *testing.T) {
		require.NoError(t, valid().validate())
	})

	t.Run("rejects unknown environment", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "qa"
		require.Error(t, cfg.validate())
	})

	t.Run("production requires real jwt secret", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.Password = "pw"
		require.Error(t, cfg.validate())

		cfg.JWT.Secret = "a-real-secret"
		require.NoError(t, cfg.validate())
	})

	t.Run("production requires database password", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "a-real-secret"
		require.Error(t, cfg.validate())
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Level = "verbose"
		require.Error(t, cfg.validate())
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", DBName: "storefront", SSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=storefront sslmode=disable", d.DSN())
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/storefront?sslmode=disable", d.MigrateURL())
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
