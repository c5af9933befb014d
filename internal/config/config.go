// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the document server. It is populated by merging values from
// environment variables, command-line flags, an optional JSON file and the
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the client key/value store and the
	// server document database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and timeout settings of the document server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the remote transport used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds scheduling intervals of background client work.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds the retry policy and per-cycle concurrency.
	Sync Sync `envPrefix:"SYNC_"`

	// Log holds logger output settings.
	Log Log `envPrefix:"LOG_"`

	// Metrics holds the Prometheus endpoint of the client.
	Metrics Metrics `envPrefix:"METRICS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is reported by the health endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB is the server-side PostgreSQL database.
	DB DB `envPrefix:"DB_"`

	// Local is the client-side key/value store.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the server document database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local describes the client key/value store.
type Local struct {
	// Driver selects the implementation: "sqlite", "file" or "memory".
	// Env: STORAGE_LOCAL_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the SQLite database file or the JSON file path.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings of the document server.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds remote transport settings.
type Adapter struct {
	// Mode is "http" for the document server or "local" for the simulated
	// remote kept in the local store.
	// Env: ADAPTER_MODE
	Mode string `env:"MODE"`

	// HTTPAddress is the base URL of the document server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single pull or push.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// FaultRate is the probability of a simulated transient failure in
	// "local" mode. Negative disables fault injection.
	// Env: ADAPTER_FAULT_RATE
	FaultRate float64 `env:"FAULT_RATE"`
}

// Workers holds background scheduling settings.
type Workers struct {
	// SyncInterval is the period of scheduled sync cycles.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ConnectivityInterval is the period of the connectivity probe.
	// Env: WORKERS_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`

	PendingInterval time.Duration `env:"PENDING_INTERVAL"`
}

// Sync holds the retry policy applied to a whole cycle.
type Sync struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS"`
	BaseDelay   time.Duration `env:"BASE_DELAY"`
	MaxDelay    time.Duration `env:"MAX_DELAY"`
	JitterRatio float64       `env:"JITTER_RATIO"`

	// Concurrency limits parallel per-document work inside a cycle.
	Concurrency int `env:"CONCURRENCY"`
}

// Log holds logger settings.
type Log struct {
	// File is the client log file, rotated when large. Empty means stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Metrics holds the Prometheus endpoint settings.
type Metrics struct {
	// Address is where the client serves /metrics. Empty disables it.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources. For every field the first non-zero value wins, in this
// order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
