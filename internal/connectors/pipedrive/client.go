package pipedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/pdsync/internal/core/domain"
	"github.com/custodia-labs/pdsync/internal/core/ports/driven"
	"github.com/custodia-labs/pdsync/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.PersonStore = (*Client)(nil)

const (
	personsPath = "/v1/persons"
	searchPath  = "/v1/persons/search"

	headerAPIToken = "x-api-token"
)

// Client talks to the Pipedrive persons API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *RateLimiter
}

// searchResponse is the /v1/persons/search response format.
type searchResponse struct {
	Data *struct {
		Items *[]struct {
			Item json.RawMessage `json:"item"`
		} `json:"items"`
	} `json:"data"`
}

// writeResponse is the create and update response format.
type writeResponse struct {
	Data json.RawMessage `json:"data"`
}

// NewClient creates a Pipedrive client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL(cfg.CompanyDomain)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      cfg.APIKey,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// FindByName searches persons by name and returns the first result.
// A response without data.items is logged and treated as no match.
func (c *Client) FindByName(ctx context.Context, name string) (*domain.Person, error) {
	query := url.Values{"term": []string{name}}
	body, err := c.do(ctx, http.MethodGet, searchPath, query, nil)
	if err != nil {
		return nil, Classify(err, OpSearch)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Data == nil || resp.Data.Items == nil {
		logger.Warn("Unexpected response structure when searching for person")
		return nil, nil
	}

	items := *resp.Data.Items
	if len(items) == 0 {
		return nil, nil
	}

	first := items[0].Item
	if len(first) == 0 || string(first) == "null" {
		return nil, nil
	}
	var person domain.Person
	if err := json.Unmarshal(first, &person); err != nil {
		logger.Warn("Unexpected person structure in search results: %v", err)
		return nil, nil
	}
	return &person, nil
}

// Create adds a new person.
func (c *Client) Create(ctx context.Context, record domain.Value) (*domain.Person, error) {
	person, err := c.write(ctx, http.MethodPost, personsPath, record, "creating")
	if err != nil {
		return nil, Classify(err, OpCreate)
	}
	return person, nil
}

// Update overwrites fields of an existing person.
func (c *Client) Update(ctx context.Context, id int64, record domain.Value) (*domain.Person, error) {
	path := personsPath + "/" + strconv.FormatInt(id, 10)
	person, err := c.write(ctx, http.MethodPut, path, record, "updating")
	if err != nil {
		return nil, Classify(err, OpUpdate)
	}
	return person, nil
}

// write sends record and decodes the person in the response data.
func (c *Client) write(
	ctx context.Context,
	method, path string,
	record domain.Value,
	verb string,
) (*domain.Person, error) {
	body, err := c.do(ctx, method, path, nil, record)
	if err != nil {
		return nil, err
	}

	var resp writeResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, fmt.Errorf("%w when %s person", domain.ErrInvalidResponse, verb)
	}

	var person domain.Person
	if err := json.Unmarshal(resp.Data, &person); err != nil {
		return nil, fmt.Errorf("%w when %s person: %v", domain.ErrInvalidResponse, verb, err)
	}
	return &person, nil
}

// do sends a request and returns the response body.
// Non-2xx responses are returned as *StatusError.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	payload any,
) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAPIToken, c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s%s", method, c.baseURL, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromResponse(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("%s %s%s -> %d", method, c.baseURL, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
