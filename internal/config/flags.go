package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a partial config.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d server database DSN
//	-l local store DSN
//	-local-driver sqlite|file|memory
//	-r remote document server URL
//	-transport http|local
//	-fault-rate simulated transient failure rate in local mode
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval period of scheduled sync cycles
//	-connectivity-interval period of the connectivity probe
//	-pending-interval period of the pending-changes recount
//	-retry-attempts, -retry-base-delay, -retry-max-delay, -retry-jitter
//	-concurrency per-cycle document concurrency
//	-log-file, -log-level
//	-metrics-address client metrics listen address
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg           StructuredConfig
		serverAddress NetAddress
	)

	fs := flag.NewFlagSet("second-brain-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Local.DSN, "l", "", "Local store DSN")
	fs.StringVar(&cfg.Storage.Local.Driver, "local-driver", "", "Local store driver: sqlite, file or memory")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "r", "", "Remote document server URL")
	fs.StringVar(&cfg.Adapter.Mode, "transport", "", "Remote transport: http or local")
	fs.Float64Var(&cfg.Adapter.FaultRate, "fault-rate", 0, "Simulated transient failure rate, negative disables")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Scheduled sync period")
	fs.DurationVar(&cfg.Workers.ConnectivityInterval, "connectivity-interval", 0, "Connectivity probe period")
	fs.DurationVar(&cfg.Workers.PendingInterval, "pending-interval", 0, "Pending changes recount period")
	fs.IntVar(&cfg.Sync.MaxAttempts, "retry-attempts", 0, "Attempts per sync cycle")
	fs.DurationVar(&cfg.Sync.BaseDelay, "retry-base-delay", 0, "Base backoff delay")
	fs.DurationVar(&cfg.Sync.MaxDelay, "retry-max-delay", 0, "Maximum backoff delay")
	fs.Float64Var(&cfg.Sync.JitterRatio, "retry-jitter", 0, "Backoff jitter ratio")
	fs.IntVar(&cfg.Sync.Concurrency, "concurrency", 0, "Parallel documents per cycle")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.Metrics.Address, "metrics-address", "", "Metrics listen address")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Adapter.RequestTimeout = cfg.Server.RequestTimeout

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
