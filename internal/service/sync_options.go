package service

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/MKhiriev/second-brain-sync/internal/retry"
	"github.com/MKhiriev/second-brain-sync/internal/utils"
	"github.com/MKhiriev/second-brain-sync/models"
)

// DefaultSyncInterval spaces scheduled cycles.
const DefaultSyncInterval = 30 * time.Second

// IDGenerator names cycles in logs and outgoing requests.
type IDGenerator interface {
	Generate() string
}

type orchestratorOptions struct {
	clock       clockwork.Clock
	logger      *logger.Logger
	metrics     *metrics.Sync
	policy      retry.Policy
	jitter      func() float64
	descriptors []models.DocumentDescriptor
	concurrency int
	interval    time.Duration
	online      bool
	listeners   []StateListener
	idGenerator IDGenerator
}

func defaultOrchestratorOptions() orchestratorOptions {
	return orchestratorOptions{
		clock:       clockwork.NewRealClock(),
		logger:      logger.Nop(),
		metrics:     metrics.NewSync(nil),
		policy:      retry.DefaultPolicy(),
		descriptors: models.DefaultDescriptors(),
		concurrency: 1,
		interval:    DefaultSyncInterval,
		online:      true,
		idGenerator: utils.NewUUIDGenerator(),
	}
}

// OrchestratorOption configures an [Orchestrator].
type OrchestratorOption func(*orchestratorOptions)

// WithClock injects the time source for timestamps and the cycle ticker.
func WithClock(clock clockwork.Clock) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.clock = clock
	}
}

func WithLogger(log *logger.Logger) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.logger = log
	}
}

func WithMetrics(m *metrics.Sync) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.metrics = m
	}
}

// WithRetryPolicy sets the backoff of the whole-cycle retry.
func WithRetryPolicy(policy retry.Policy) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.policy = policy
	}
}

// WithJitterSource replaces the random source of retry jitter.
func WithJitterSource(fn func() float64) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.jitter = fn
	}
}

// WithDescriptors replaces the syncable document table. Documents are
// processed in the given order.
func WithDescriptors(descriptors []models.DocumentDescriptor) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.descriptors = append([]models.DocumentDescriptor(nil), descriptors...)
	}
}

// WithConcurrency bounds how many documents one cycle processes at once.
func WithConcurrency(n int) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.concurrency = n
	}
}

// WithSyncInterval spaces scheduled cycles. Non-positive values keep the
// default.
func WithSyncInterval(d time.Duration) OrchestratorOption {
	return func(o *orchestratorOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithInitialConnectivity sets the connectivity assumed at construction.
func WithInitialConnectivity(online bool) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.online = online
	}
}

// WithStateListener subscribes listener for the orchestrator's lifetime.
func WithStateListener(listener StateListener) OrchestratorOption {
	return func(o *orchestratorOptions) {
		if listener != nil {
			o.listeners = append(o.listeners, listener)
		}
	}
}

func WithIDGenerator(g IDGenerator) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.idGenerator = g
	}
}
