package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout. The bearer token of appCfg is installed right away.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	a := &httpServerAdapter{client: client, logger: logger}
	a.SetToken(appCfg.Token)

	return a, nil
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

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Sync implements [ServerAdapter]. It POSTs batch to POST /sync and decodes
// the [models.SyncResult]. Conflict versions arrive as generic JSON values.
func (h *httpServerAdapter) Sync(ctx context.Context, batch models.SyncBatch) (models.SyncResult, error) {
	var result models.SyncResult

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(batch).
		SetResult(&result).
		Post("/sync")
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("sync request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResult{}, err
	}

	h.logger.Debug().
		Str("func", "httpServerAdapter.Sync").
		Time("server_time", result.ServerTime).
		Int("conflicts", len(result.Conflicts)).
		Int("rejected", len(result.Rejected)).
		Msg("sync response received")

	return result, nil
}

// ServerTime implements [ServerAdapter] via GET /sync/time.
func (h *httpServerAdapter) ServerTime(ctx context.Context) (time.Time, error) {
	var result models.ServerTimeResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get("/sync/time")
	if err != nil {
		return time.Time{}, fmt.Errorf("server time request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return time.Time{}, err
	}

	return result.ServerTime, nil
}

// CreateTransfer implements [ServerAdapter] via POST /transactions/transfer.
func (h *httpServerAdapter) CreateTransfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error) {
	var result models.TransferResult

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/transactions/transfer")
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("create transfer request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TransferResult{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
