package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Database   Database   `yaml:"database"`
	Logging    Logging    `yaml:"logging"`
	Pagination Pagination `yaml:"pagination"`
	Workers    Workers    `yaml:"workers"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Database struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	SlowThreshold   time.Duration `yaml:"slow_threshold"`
}

type Logging struct {
	Level string `yaml:"level"`
	// Encoding is "json" or "console".
	Encoding string `yaml:"encoding"`
}

type Pagination struct {
	// StrictSort rejects unknown sort tokens instead of falling back to the
	// default ordering.
	StrictSort bool `yaml:"strict_sort"`
}

type Workers struct {
	// Size bounds the number of listing queries running at once.
	Size int `yaml:"size"`
}

func Default() Config {
	return Config{
		HTTP: HTTP{Addr: "0.0.0.0:8080"},
		Database: Database{
			Driver:          DriverPostgres,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			SlowThreshold:   200 * time.Millisecond,
		},
		Logging: Logging{Level: "info", Encoding: "json"},
		Workers: Workers{Size: 8},
	}
}

// Load reads the YAML file at path on top of Default and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("cannot read config file: %w", err)
		}

		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("cannot parse config file: %w", err)
		}
	}

	applyEnv(&cfg, os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	getEnv := func(keys ...string) (string, bool) {
		for _, key := range keys {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := getEnv("WATCHPAGER_HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}
	if v, ok := getEnv("WATCHPAGER_DB_DRIVER"); ok {
		cfg.Database.Driver = v
	}
	if v, ok := getEnv("WATCHPAGER_DB_DSN", "DATABASE_URL"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := getEnv("WATCHPAGER_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
}

func (c Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver '%s'", c.Database.Driver))
	}

	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("database max_open_conns must be positive"))
	}
	if c.Workers.Size <= 0 {
		errs = append(errs, errors.New("workers size must be positive"))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http addr is required"))
	}

	return errors.Join(errs...)
}
