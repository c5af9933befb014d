package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/second-brain-sync/internal/retry"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// Mode selects the remote transport, see [AdapterModeHTTP].
	Mode string
	// HTTPAddress is the document server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// FaultRate drives the simulated remote.
	FaultRate float64
}

// ClientStorage describes the local key/value store.
type ClientStorage struct {
	Driver string
	DSN    string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often scheduled sync cycles run.
	SyncInterval time.Duration
	// ConnectivityInterval defines how often the remote is probed.
	ConnectivityInterval time.Duration
	// PendingInterval defines how often local edits are recounted.
	PendingInterval time.Duration
}

// ClientSync holds the cycle retry policy and concurrency.
type ClientSync struct {
	Policy      retry.Policy
	Concurrency int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
	Log     Log
	Metrics Metrics
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.Client()
	return clientCfg, clientCfg.validate()
}

// Client maps the fields relevant to the client runtime.
func (cfg *StructuredConfig) Client() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			Mode:           cfg.Adapter.Mode,
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			FaultRate:      cfg.Adapter.FaultRate,
		},
		Storage: ClientStorage{
			Driver: cfg.Storage.Local.Driver,
			DSN:    cfg.Storage.Local.DSN,
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			ConnectivityInterval: cfg.Workers.ConnectivityInterval,
			PendingInterval:      cfg.Workers.PendingInterval,
		},
		Sync: ClientSync{
			Policy: retry.Policy{
				MaxAttempts: cfg.Sync.MaxAttempts,
				BaseDelay:   cfg.Sync.BaseDelay,
				MaxDelay:    cfg.Sync.MaxDelay,
				JitterRatio: cfg.Sync.JitterRatio,
			},
			Concurrency: cfg.Sync.Concurrency,
		},
		Log:     cfg.Log,
		Metrics: cfg.Metrics,
	}
}
