package config

import (
	"fmt"
	"time"
)

// ServerConfig is the document server view of [StructuredConfig].
type ServerConfig struct {
	Version        string
	HTTPAddress    string
	RequestTimeout time.Duration
	DSN            string
	Log            Log
}

// GetServerConfig builds and validates the document server configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := cfg.ServerView()
	return serverCfg, serverCfg.validate()
}

// ServerView maps the fields relevant to the document server.
func (cfg *StructuredConfig) ServerView() *ServerConfig {
	return &ServerConfig{
		Version:        cfg.App.Version,
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DSN:            cfg.Storage.DB.DSN,
		Log:            cfg.Log,
	}
}
