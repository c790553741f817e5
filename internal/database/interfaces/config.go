// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package interfaces

import (
	platformconfig "github.com/qolzam/telar/apps/feed/internal/platform/config"
)

// PostgreSQLConfig represents PostgreSQL specific configuration
type PostgreSQLConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	Database           string
	SSLMode            string
	ConnectTimeout     int
	MaxOpenConnections int
	MaxIdleConnections int
	MaxLifetime        int
	Schema             string
}

// FromPlatformConfig maps the platform postgres section to a client config
func FromPlatformConfig(cfg platformconfig.PostgreSQLConfig) *PostgreSQLConfig {
	return &PostgreSQLConfig{
		Host:               cfg.Host,
		Port:               cfg.Port,
		Username:           cfg.Username,
		Password:           cfg.Password,
		Database:           cfg.Database,
		SSLMode:            cfg.SSLMode,
		ConnectTimeout:     cfg.ConnectTimeout,
		MaxOpenConnections: cfg.MaxOpenConns,
		MaxIdleConnections: cfg.MaxIdleConns,
		MaxLifetime:        int(cfg.ConnMaxLifetime.Seconds()),
		Schema:             cfg.Schema,
	}
}
