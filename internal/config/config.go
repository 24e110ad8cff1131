package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ClassifierConfig holds the collection-membership pattern sets.
// The lists consolidate the historically drifted per-script variants into a
// single configurable component.
type ClassifierConfig struct {
	AllowPatterns []string `mapstructure:"allow_patterns"`
	DenyPatterns  []string `mapstructure:"deny_patterns"`
	NameSignals   []string `mapstructure:"name_signals"`
}

// CuratorConfig holds configuration for the curator maintenance job
type CuratorConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Classifier  ClassifierConfig `mapstructure:"classifier"`
	BatchSize   int              `mapstructure:"batch_size"`
	LockTimeout time.Duration    `mapstructure:"lock_timeout"`
	DryRun      bool             `mapstructure:"dry_run"`
}

// ImporterConfig holds configuration for the batch mint job
type ImporterConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig `mapstructure:"database"`
	Collection     string         `mapstructure:"collection"`
	TokenPrefix    string         `mapstructure:"token_prefix"`
	StartNumber    int64          `mapstructure:"start_number"`
	Count          int64          `mapstructure:"count"`
	ImageDir       string         `mapstructure:"image_dir"`
	OwnerUsername  string         `mapstructure:"owner_username"`
	ForSale        bool           `mapstructure:"for_sale"`
	WorkerPoolSize int            `mapstructure:"worker_pool_size"`
}

// LoadCuratorConfig loads configuration for the curator maintenance job
func LoadCuratorConfig(configFile string, envPath string) (*CuratorConfig, error) {
	v := configureViper("curator", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("batch_size", 500)
	v.SetDefault("lock_timeout", "2m")
	v.SetDefault("dry_run", false)
	v.SetDefault("classifier.allow_patterns", DefaultAllowPatterns)
	v.SetDefault("classifier.deny_patterns", DefaultDenyPatterns)
	v.SetDefault("classifier.name_signals", DefaultNameSignals)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// Config file not found, use environment variables. An explicit
			// path that does not exist surfaces as fs.ErrNotExist, not as
			// viper's ConfigFileNotFoundError.
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg CuratorConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.New("batch_size must be positive")
	}

	return &cfg, nil
}

// LoadImporterConfig loads configuration for the batch mint job
func LoadImporterConfig(configFile string, envPath string) (*ImporterConfig, error) {
	v := configureViper("importer", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("collection", "Bored Ape Vault Club")
	v.SetDefault("token_prefix", "BAYC")
	v.SetDefault("start_number", 1)
	v.SetDefault("count", 100)
	v.SetDefault("owner_username", "treasury")
	v.SetDefault("for_sale", true)
	v.SetDefault("worker_pool_size", 10)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// Config file not found, use environment variables. An explicit
			// path that does not exist surfaces as fs.ErrNotExist, not as
			// viper's ConfigFileNotFoundError.
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg ImporterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if cfg.ImageDir == "" {
		return nil, errors.New("image_dir is required")
	}
	if cfg.Count <= 0 {
		return nil, errors.New("count must be positive")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("NFT_CURATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Curator
		"batch_size",
		"lock_timeout",
		"dry_run",
		"classifier.allow_patterns",
		"classifier.deny_patterns",
		"classifier.name_signals",
		// Importer
		"collection",
		"token_prefix",
		"start_number",
		"count",
		"image_dir",
		"owner_username",
		"for_sale",
		"worker_pool_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
