package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Supported storage backends.
const (
	PostgresBackend = "postgres"
	BoltBackend     = "bolt"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string         `yaml:"git_commit" envconfig:"DBC_GIT_COMMIT"`
	GitTag             string         `yaml:"git_tag" envconfig:"DBC_GIT_TAG"`
	BuildTime          string         `yaml:"build_time" envconfig:"DBC_BUILD_TIME"`
	IsProduction       bool           `yaml:"is_production" envconfig:"DBC_IS_PRODUCTION"`
	LogLevel           zapcore.Level  `yaml:"log_level" envconfig:"DBC_LOG_LEVEL"`
	LogFile            string         `yaml:"log_file" envconfig:"DBC_LOG_FILE"`
	OpsEndpointsEnable bool           `yaml:"ops_endpoints_enable" envconfig:"DBC_OPS_ENDPOINTS_ENABLE"`
	StorageBackend     string         `yaml:"storage_backend" envconfig:"DBC_STORAGE_BACKEND"`
	Server             ServerConfig   `yaml:"server"`
	Postgres           PostgresConfig `yaml:"postgres"`
	BoltDB             BoltDBConfig   `yaml:"boltdb"`
	Auth               AuthConfig     `yaml:"auth"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"DBC_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"DBC_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"DBC_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"DBC_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"DBC_SERVER_SHUTDOWN_TIMEOUT"`
}

type PostgresConfig struct {
	Host           string        `yaml:"host" envconfig:"DBC_POSTGRES_HOST"`
	Port           string        `yaml:"port" envconfig:"DBC_POSTGRES_PORT"`
	Username       string        `yaml:"username" envconfig:"DBC_POSTGRES_USERNAME"`
	Password       string        `yaml:"password" envconfig:"DBC_POSTGRES_PASSWORD"`
	Database       string        `yaml:"database" envconfig:"DBC_POSTGRES_DATABASE"`
	SSLMode        string        `yaml:"ssl_mode" envconfig:"DBC_POSTGRES_SSL_MODE"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"DBC_POSTGRES_CONNECT_TIMEOUT"`
	SchemaAutoSync bool          `yaml:"schema_auto_sync" envconfig:"DBC_POSTGRES_SCHEMA_AUTO_SYNC"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"DBC_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"DBC_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"DBC_BOLTDB_BUCKET_NAME"`
}

// AuthConfig carries the token signing parameters. No endpoint enforces
// authentication yet so the signer stays idle at runtime.
type AuthConfig struct {
	TokenSecret string        `yaml:"token_secret" envconfig:"DBC_AUTH_TOKEN_SECRET"`
	TokenExpiry time.Duration `yaml:"token_expiry" envconfig:"DBC_AUTH_TOKEN_EXPIRY"`
}

// URI builds the postgres connection string from the configured parameters.
func (pc *PostgresConfig) URI() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		pc.Username, pc.Password, pc.Host, pc.Port, pc.Database, pc.SSLMode)
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	switch config.StorageBackend {
	case PostgresBackend:
		if len(config.Postgres.Host) == 0 || len(config.Postgres.Port) == 0 || len(config.Postgres.Database) == 0 {
			return errors.New("make sure to set valid postgres address, port and database in configuration file")
		}
		if len(config.Postgres.SSLMode) == 0 {
			config.Postgres.SSLMode = "disable"
		}
	case BoltBackend:
		if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.BucketName) == 0 {
			return errors.New("make sure to set valid boltdb file path and bucket name in configuration file")
		}
	default:
		return fmt.Errorf("unknown storage backend in configuration file: %q", config.StorageBackend)
	}

	if config.Auth.TokenExpiry == 0 {
		config.Auth.TokenExpiry = 7 * 24 * time.Hour
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration. The env file is optional.
	if err = godotenv.Load("./config.env"); err != nil && !os.IsNotExist(err) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `DBC`.
	err = LoadConfigEnvs("DBC", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
