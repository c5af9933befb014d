package adapter

import (
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/config"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/store"
)

// NewRemote builds the transport selected by adapterCfg.Mode. The local mode
// keeps the simulated remote inside docs.
func NewRemote(adapterCfg config.ClientAdapter, docs *store.DocumentStore, log *logger.Logger) (Remote, error) {
	switch adapterCfg.Mode {
	case config.AdapterModeHTTP, "":
		return NewHTTPTransport(adapterCfg, log)
	case config.AdapterModeLocal:
		return NewLocalDriveTransport(docs, adapterCfg.FaultRate), nil
	default:
		return nil, fmt.Errorf("unknown adapter mode %q", adapterCfg.Mode)
	}
}
