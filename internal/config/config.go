// Package config loads boz settings from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: BOZ_DATABASE_HOST overrides
// database.host.
const EnvPrefix = "BOZ"

// Config is the full configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	// Debug logs the SQL of mutations refused by the safety gate.
	Debug bool `mapstructure:"debug"`
	// Audit is none, writes or all.
	Audit string `mapstructure:"audit"`
	// Validate enables the dangerous statement validator.
	Validate bool `mapstructure:"validate"`
}

// DatabaseConfig describes the connection.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	Prefix       string `mapstructure:"prefix"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
}

// LogConfig selects the logging backend.
type LogConfig struct {
	Backend string `mapstructure:"backend"`
	Level   string `mapstructure:"level"`
}

// DSN returns the data source name for the configured driver, or "" for an
// unknown driver. An empty sqlite name is an in-memory database.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		cfg.DBName = c.Name
		if c.Charset != "" {
			cfg.Params = map[string]string{"charset": c.Charset}
		}
		return cfg.FormatDSN()
	case "sqlite", "sqlite3":
		if c.Name == "" {
			return ":memory:"
		}
		return c.Name
	default:
		return ""
	}
}

// Load reads the configuration file at path, then applies BOZ_* environment
// overrides and ${VAR} placeholders. With an empty path, config.yaml is
// looked up in the working directory and ./configs; a missing file is not an
// error in that case.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	resolveEnvVars(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	// keys only reachable through AutomaticEnv still need a default to unmarshal
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.prefix", "")
	v.SetDefault("log.backend", "slog")
	v.SetDefault("log.level", "info")
	v.SetDefault("debug", false)
	v.SetDefault("audit", "none")
	v.SetDefault("validate", false)
}

func resolveEnvVars(cfg *Config) {
	cfg.Database.Host = resolveEnvVar(cfg.Database.Host)
	cfg.Database.Name = resolveEnvVar(cfg.Database.Name)
	cfg.Database.User = resolveEnvVar(cfg.Database.User)
	cfg.Database.Password = resolveEnvVar(cfg.Database.Password)
}

// resolveEnvVar replaces a whole-value ${VAR} placeholder with the variable,
// leaving it untouched when the variable is unset.
func resolveEnvVar(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		key := strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}")
		if env := os.Getenv(key); env != "" {
			return env
		}
	}
	return value
}
