package foreman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client defines the interface for Foreman API v2 resource operations.
type Client interface {
	// Search looks up a single resource by field values (e.g. by name).
	// Returns nil when no resource matches the filter.
	Search(ctx context.Context, resource ResourceType, filter map[string]string) (Record, error)
	// Get fetches the full record of a resource by id.
	Get(ctx context.Context, resource ResourceType, id int) (Record, error)
	// Create creates a new resource from the given fields.
	Create(ctx context.Context, resource ResourceType, fields Record) (Record, error)
	// Update replaces the fields of an existing resource by id.
	Update(ctx context.Context, resource ResourceType, id int, fields Record) (Record, error)
	// Delete removes a resource by id and returns the remote confirmation.
	Delete(ctx context.Context, resource ResourceType, id int) (Record, error)
}

// NewClient creates a new Foreman API client based on the configuration.
func NewClient(cfg Config, log *zap.Logger) (Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("foreman host must not be empty")
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration, // TLS Handshake timeout
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration, // Wait for first response byte timeout
	}

	scheme := "https"
	if !cfg.UseSSL {
		scheme = "http"
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &apiClient{
		baseURL:  fmt.Sprintf("%s://%s:%d/api/v2", scheme, cfg.Host, cfg.Port),
		username: cfg.Username,
		password: cfg.Password,
		hc:       &http.Client{Transport: transport},
		log:      log,
	}, nil
}

type apiClient struct {
	baseURL  string
	username string
	password string
	hc       *http.Client
	log      *zap.Logger
}

// searchIndex matches the paginated index response of a search call.
type searchIndex struct {
	Results []Record `json:"results"`
}

func (c *apiClient) Search(ctx context.Context, resource ResourceType, filter map[string]string) (Record, error) {
	query := url.Values{}
	query.Set("search", buildSearchQuery(filter))

	body, err := c.do(ctx, http.MethodGet, "/"+string(resource), query, nil)
	if err != nil {
		return nil, err
	}

	var index searchIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("failed to decode %s search response: %w", resource, err)
	}
	if len(index.Results) == 0 {
		return nil, nil
	}
	return index.Results[0], nil
}

func (c *apiClient) Get(ctx context.Context, resource ResourceType, id int) (Record, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%d", resource, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, body)
}

func (c *apiClient) Create(ctx context.Context, resource ResourceType, fields Record) (Record, error) {
	payload := map[string]any{resource.Singular(): fields}
	body, err := c.do(ctx, http.MethodPost, "/"+string(resource), nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, body)
}

func (c *apiClient) Update(ctx context.Context, resource ResourceType, id int, fields Record) (Record, error) {
	payload := map[string]any{resource.Singular(): fields}
	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/%d", resource, id), nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, body)
}

func (c *apiClient) Delete(ctx context.Context, resource ResourceType, id int) (Record, error) {
	body, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d", resource, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, body)
}

// do performs a single API request and returns the raw response body.
// Non-2xx responses are returned as *APIError.
func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	log := c.log.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)
	log.Debug("Foreman API request")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("foreman request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug("Foreman API response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// decodeRecord parses a single-resource response body.
// An empty body (some delete responses) yields an empty record.
func decodeRecord(resource ResourceType, body []byte) (Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Record{}, nil
	}
	var record Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", resource, err)
	}
	return record, nil
}

// buildSearchQuery renders a field filter into Foreman search syntax,
// e.g. {"name": "example.com"} -> name="example.com".
func buildSearchQuery(filter map[string]string) string {
	terms := make([]string, 0, len(filter))
	for field, value := range filter {
		terms = append(terms, fmt.Sprintf("%s=%q", field, value))
	}
	// Deterministic ordering for multi-field filters
	sort.Strings(terms)
	return strings.Join(terms, " and ")
}
