// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the settings shared by every view.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Adapter.Mode {
	case "", AdapterModeHTTP, AdapterModeLocal:
	default:
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Storage.Local.Driver {
	case "", LocalDriverSQLite, LocalDriverFile, LocalDriverMemory:
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.MaxAttempts < 0 || cfg.Sync.Concurrency < 0 ||
		cfg.Sync.JitterRatio < 0 || cfg.Sync.JitterRatio > 1 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Driver != LocalDriverMemory &&
		(cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory")) {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.Mode == AdapterModeHTTP &&
		(cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0) {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.ConnectivityInterval <= 0 ||
		cfg.Workers.PendingInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Sync.Policy.MaxAttempts < 1 || cfg.Sync.Concurrency < 1 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
