package adapter

import (
	"testing"

	"github.com/MKhiriev/second-brain-sync/internal/config"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemote(t *testing.T) {
	docs := store.NewDocumentStore(store.NewMemoryKVStore())

	remote, err := NewRemote(config.ClientAdapter{Mode: config.AdapterModeHTTP, HTTPAddress: "localhost:8080"}, docs, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &HTTPTransport{}, remote)

	remote, err = NewRemote(config.ClientAdapter{Mode: config.AdapterModeLocal, FaultRate: 0.5}, docs, logger.Nop())
	require.NoError(t, err)
	local, ok := remote.(*LocalDriveTransport)
	require.True(t, ok)
	assert.Equal(t, 0.5, local.faultRate)

	_, err = NewRemote(config.ClientAdapter{Mode: "carrier-pigeon"}, docs, logger.Nop())
	assert.Error(t, err)
}
