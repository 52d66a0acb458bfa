package parkingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/errs"
)

// Client talks to the remote parking REST API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	listRetries int
	logger      *slog.Logger
}

func NewClient(cfg config.UpstreamConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		listRetries: cfg.ListRetries,
		logger:      logger,
	}
}

type call struct {
	method string
	path   string
	query  map[string]string
	token  string
	body   any
}

// do executes c and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, req call) ([]byte, error) {
	url := c.baseURL + req.path

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, errs.Wrap(err, "encoding request")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, url, body)
	if err != nil {
		return nil, errs.Wrap(err, "building request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if len(req.query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}
	if req.token != "" && strings.Contains(httpReq.URL.Path, "/api/") {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Status: 0, Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: 0, Message: "reading response failed", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, raw)
		// An expired token is routine; the session layer logs the user out.
		level := slog.LevelWarn
		if IsUnauthorized(apiErr) {
			level = slog.LevelInfo
		}
		c.logger.Log(ctx, level, "parking api request rejected",
			"method", req.method,
			"path", req.path,
			"status", resp.StatusCode,
			"message", apiErr.Message,
			"field_errors", apiErr.FieldErrors,
		)
		return nil, apiErr
	}
	return raw, nil
}

// doList retries transport failures up to the configured count; rejections
// from the API are returned immediately.
func (c *Client) doList(ctx context.Context, req call) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.listRetries; attempt++ {
		raw, err := c.do(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !IsTransport(err) || ctx.Err() != nil {
			break
		}
		c.logger.Warn("parking api list fetch failed, retrying", "path", req.path, "attempt", attempt+1)
	}
	return nil, lastErr
}

// decodeWrapped accepts either the bare payload or an object carrying it
// under key, e.g. [...] and {"bookings": [...]}.
func decodeWrapped(raw []byte, key string, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return errs.Wrap(err, "decoding response")
		}
		if inner, ok := envelope[key]; ok {
			trimmed = inner
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return errs.Wrap(err, fmt.Sprintf("decoding %s", key))
	}
	return nil
}

func decode(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Wrap(err, "decoding response")
	}
	return nil
}
