package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/second-brain-sync/internal/config"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/retry"
	"github.com/MKhiriev/second-brain-sync/internal/utils"
	"github.com/MKhiriev/second-brain-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	documentPath = "/api/documents/{id}"
	healthPath   = "/api/health"
)

// HTTPTransport is the [RemoteTransport] talking to the document server.
type HTTPTransport struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPTransport constructs an HTTP/REST implementation of [RemoteTransport]
// and [HealthChecker]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPTransport(adapterCfg config.ClientAdapter, logger *logger.Logger) (*HTTPTransport, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &HTTPTransport{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Pull implements [RemoteTransport]. It GETs /api/documents/{id}; a 404 or a
// null document means the server has no copy yet and yields (nil, nil).
func (h *HTTPTransport) Pull(ctx context.Context, documentID string) (models.Document, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", documentID).
		Get(documentPath)
	if err != nil {
		return nil, h.requestError(ctx, fmt.Sprintf("pull %s", documentID), err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("pull %s: %w", documentID, err)
	}

	var envelope models.DocumentEnvelope
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, retry.Permanent(fmt.Errorf("pull %s: %w: %w", documentID, ErrInvalidResponse, err))
	}
	if len(envelope.Document) == 0 {
		return nil, nil
	}

	doc, err := models.DecodeDocument(envelope.Document)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("pull %s: %w: %w", documentID, ErrInvalidResponse, err))
	}

	logger.FromContext(ctx).Debug().
		Str("document_id", documentID).
		Int64("version", envelope.Version).
		Msg("document pulled")
	return doc, nil
}

// Push implements [RemoteTransport]. It PUTs the document wrapped in a
// [models.DocumentEnvelope] to /api/documents/{id}.
func (h *HTTPTransport) Push(ctx context.Context, documentID string, doc models.Document) error {
	payload, err := models.EncodeDocument(doc)
	if err != nil {
		return retry.Permanent(fmt.Errorf("push %s: encode: %w", documentID, err))
	}

	var saved models.DocumentEnvelope
	resp, err := h.request(ctx).
		SetPathParam("id", documentID).
		SetHeader("Content-Type", "application/json").
		SetBody(models.DocumentEnvelope{DocumentID: documentID, Document: payload}).
		SetResult(&saved).
		Put(documentPath)
	if err != nil {
		return h.requestError(ctx, fmt.Sprintf("push %s", documentID), err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("push %s: %w", documentID, err)
	}

	logger.FromContext(ctx).Debug().
		Str("document_id", documentID).
		Int64("version", saved.Version).
		Msg("document pushed")
	return nil
}

// Ping implements [HealthChecker] via GET /api/health.
func (h *HTTPTransport) Ping(ctx context.Context) error {
	var health models.HealthResponse
	resp, err := h.request(ctx).
		SetResult(&health).
		Get(healthPath)
	if err != nil {
		return h.requestError(ctx, "ping", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if health.Status != "ok" {
		return retry.Transient(fmt.Errorf("ping: %w: status %q", ErrServerUnavailable, health.Status))
	}
	return nil
}

func (h *HTTPTransport) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if cycleID, ok := utils.CycleIDFromContext(ctx); ok {
		req.SetHeader(utils.CycleIDHeader, cycleID)
	}
	return req
}

// requestError wraps a failure that produced no HTTP response. Those are
// network level and therefore transient, unless the caller gave up.
func (h *HTTPTransport) requestError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	h.logger.Warn().
		Err(err).
		Str("func", "HTTPTransport."+strings.Fields(op)[0]).
		Msg("request failed")
	return retry.Transient(fmt.Errorf("%s: %w", op, err))
}
