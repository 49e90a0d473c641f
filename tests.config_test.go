package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		StorageBackend: PostgresBackend,
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Postgres: PostgresConfig{
			Host:     "127.0.0.1",
			Port:     "5432",
			Username: "books",
			Password: "books",
			Database: "books",
		},
	}
}

// TestInitConfig ensures defaults and validation of the loaded configuration.
func TestInitConfig(t *testing.T) {
	t.Run("should pass: valid postgres backend", func(t *testing.T) {
		config := validTestConfig()
		require.NoError(t, InitConfig(config, "abc123", "v1.0.0", "2023-07-02"))
		assert.Equal(t, "abc123", config.GitCommit)
		assert.Equal(t, "v1.0.0", config.GitTag)
		assert.Equal(t, "disable", config.Postgres.SSLMode)
		assert.Equal(t, 7*24*time.Hour, config.Auth.TokenExpiry)
	})

	t.Run("should fail: missing server address", func(t *testing.T) {
		config := validTestConfig()
		config.Server.Port = ""
		assert.Error(t, InitConfig(config, "", "", ""))
	})

	t.Run("should fail: missing postgres database", func(t *testing.T) {
		config := validTestConfig()
		config.Postgres.Database = ""
		assert.Error(t, InitConfig(config, "", "", ""))
	})

	t.Run("should fail: unknown storage backend", func(t *testing.T) {
		config := validTestConfig()
		config.StorageBackend = "memcached"
		assert.Error(t, InitConfig(config, "", "", ""))
	})

	t.Run("should fail: bolt backend without file path", func(t *testing.T) {
		config := validTestConfig()
		config.StorageBackend = BoltBackend
		assert.Error(t, InitConfig(config, "", "", ""))
	})
}

// TestLoadConfigFile ensures the yaml configuration is decoded properly.
func TestLoadConfigFile(t *testing.T) {
	content := []byte(`
is_production: true
log_file: "./logs/test.log"
storage_backend: "bolt"
server:
  host: "127.0.0.1"
  port: "9090"
  shutdown_timeout: 10s
boltdb:
  filepath: "./test.db"
  timeout: 5s
  bucket_name: "books"
auth:
  token_secret: "secret"
  token_expiry: 24h
`)
	f, err := os.CreateTemp("", "tmp.config-*.yml")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.Write(content)
	require.NoError(t, err)
	f.Close()

	config, err := LoadConfigFile(f.Name())
	require.NoError(t, err)
	assert.True(t, config.IsProduction)
	assert.Equal(t, "bolt", config.StorageBackend)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, 10*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, "books", config.BoltDB.BucketName)
	assert.Equal(t, 24*time.Hour, config.Auth.TokenExpiry)
}

// TestLoadConfigEnvs ensures environment variables override file values.
func TestLoadConfigEnvs(t *testing.T) {
	config := validTestConfig()
	t.Setenv("DBC_SERVER_PORT", "7070")
	t.Setenv("DBC_POSTGRES_DATABASE", "books_test")
	require.NoError(t, LoadConfigEnvs("DBC", config))
	assert.Equal(t, "7070", config.Server.Port)
	assert.Equal(t, "books_test", config.Postgres.Database)
}
