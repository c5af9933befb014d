package config

import (
	"time"

	"github.com/MKhiriev/second-brain-sync/internal/retry"
)

// Transport modes accepted by [Adapter.Mode].
const (
	AdapterModeHTTP  = "http"
	AdapterModeLocal = "local"
)

// Local store drivers accepted by [Local.Driver].
const (
	LocalDriverSQLite = "sqlite"
	LocalDriverFile   = "file"
	LocalDriverMemory = "memory"
)

func defaultConfig() *StructuredConfig {
	policy := retry.DefaultPolicy()

	return &StructuredConfig{
		App: App{Version: "dev"},
		Storage: Storage{
			Local: Local{Driver: LocalDriverSQLite, DSN: "second-brain.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			Mode:           AdapterModeHTTP,
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
			FaultRate:      0.02,
		},
		Workers: Workers{
			SyncInterval:         30 * time.Second,
			ConnectivityInterval: 10 * time.Second,
			PendingInterval:      5 * time.Second,
		},
		Sync: Sync{
			MaxAttempts: policy.MaxAttempts,
			BaseDelay:   policy.BaseDelay,
			MaxDelay:    policy.MaxDelay,
			JitterRatio: policy.JitterRatio,
			Concurrency: 1,
		},
		Log: Log{Level: "debug"},
	}
}
