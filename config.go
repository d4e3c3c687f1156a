package boz

import (
	"fmt"
	"os"

	"github.com/coregx/boz/internal/config"
	"github.com/coregx/boz/internal/core"
	"github.com/coregx/boz/internal/logger"
	"github.com/coregx/boz/internal/security"
)

type (
	// Config is the file and environment configuration.
	Config = config.Config
	// DatabaseConfig describes the connection.
	DatabaseConfig = config.DatabaseConfig
	// LogConfig selects the logging backend.
	LogConfig = config.LogConfig
)

// LoadConfig reads a configuration file, applying BOZ_* environment overrides.
var LoadConfig = config.Load

// OpenConfig opens the database described by cfg. Logs are written to
// stderr. opts are applied after the ones derived from cfg.
func OpenConfig(cfg *Config, opts ...Option) (*DB, error) {
	dsn := cfg.Database.DSN()
	if dsn == "" {
		return nil, fmt.Errorf("boz: unsupported driver %q", cfg.Database.Driver)
	}

	log, err := logger.New(cfg.Log.Backend, cfg.Log.Level, os.Stderr)
	if err != nil {
		return nil, err
	}
	level, err := security.ParseAuditLevel(cfg.Audit)
	if err != nil {
		return nil, err
	}

	base := []Option{
		core.WithPrefix(cfg.Database.Prefix),
		core.WithDebug(cfg.Debug),
		core.WithLogger(log),
		core.WithAuditor(security.NewAuditor(log, level)),
	}
	if cfg.Database.MaxOpenConns > 0 {
		base = append(base, core.WithMaxOpenConns(cfg.Database.MaxOpenConns))
	}
	if cfg.Database.MaxIdleConns > 0 {
		base = append(base, core.WithMaxIdleConns(cfg.Database.MaxIdleConns))
	}
	if cfg.Validate {
		base = append(base, core.WithValidator(security.NewValidator()))
	}

	return core.Open(cfg.Database.Driver, dsn, append(base, opts...)...)
}
