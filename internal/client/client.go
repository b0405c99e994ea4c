// Package client talks to the storefront REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/config"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/pkg/errors"
)

// SchemaHeader carries the backend record schema version on every exchange
const SchemaHeader = "X-Schema-Version"

// ErrSchemaMismatch is returned when the backend speaks a different record schema
var ErrSchemaMismatch = goerrors.New("backend schema version mismatch")

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend client. Requests are traced through otelhttp.
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return r.Method + " " + r.URL.Path
				}),
			),
		},
		logger: logger,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// do sends a JSON request and decodes a JSON response into out. A 204
// response leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SchemaHeader, strconv.Itoa(domain.SchemaVersion))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		httpErr := &errors.HTTPError{StatusCode: resp.StatusCode, Message: eb.Message}
		c.logger.Error("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(httpErr),
		)
		return httpErr
	}

	if v := resp.Header.Get(SchemaHeader); v != "" && v != strconv.Itoa(domain.SchemaVersion) {
		return fmt.Errorf("%w: got %s, want %d", ErrSchemaMismatch, v, domain.SchemaVersion)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	var httpErr *errors.HTTPError
	return goerrors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
