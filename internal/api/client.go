package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"detention/internal/constants"
	"detention/internal/errors"
	"detention/internal/logger"
	"detention/internal/types"
)

// maxErrorBody bounds how much of an error response is kept for logs
const maxErrorBody = 512

// APIClient is the HTTP client for the instance management API. It is built
// once at startup, logged in with Authenticate and then only read.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures an APIClient
type Option func(*APIClient)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) {
		c.httpClient = hc
	}
}

// NewAPIClient creates a new API client instance. The client always carries a
// cookie jar for the session set by Authenticate.
func NewAPIClient(baseURL string, opts ...Option) (*APIClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}

	c := &APIClient{
		baseURL: strings.TrimSuffix(u.String(), "/"),
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPClientTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	// The API session lives in a cookie. A caller's client without a jar is
	// copied rather than modified.
	if c.httpClient.Jar == nil {
		hc := *c.httpClient
		c.httpClient = &hc

		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}

	return c, nil
}

type githubTokenRequest struct {
	AccessToken string `json:"accessToken"`
}

// Authenticate logs in with a GitHub access token. The session cookie set by
// the API is kept in the client's cookie jar for later requests.
func (c *APIClient) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return errors.AuthenticationFailed("no token configured")
	}

	resp, err := c.post(ctx, "/auth/github/token", githubTokenRequest{AccessToken: token})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := readErrorBody(resp.Body)
		return errors.AuthenticationFailed(fmt.Sprintf("status %d: %s", resp.StatusCode, body))
	}

	logger.ForModule("api").WithField("api", c.baseURL).Trace("authenticated with API")
	return nil
}

// FetchInstance returns the instance with the given short hash. A missing
// instance yields an INSTANCE_NOT_FOUND error; transport failures yield API_CALL.
func (c *APIClient) FetchInstance(ctx context.Context, shortHash string) (*types.Instance, error) {
	query := url.Values{}
	query.Set("shortHash", shortHash)
	path := "/instances/?" + query.Encode()

	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.InstanceNotFound(shortHash, nil)
	case resp.StatusCode >= 400:
		body := readErrorBody(resp.Body)
		return nil, errors.APICallError(http.MethodGet, c.baseURL+path,
			fmt.Errorf("request failed with status %d: %s", resp.StatusCode, body))
	}

	var instances []*types.Instance
	if err := json.NewDecoder(resp.Body).Decode(&instances); err != nil {
		return nil, errors.APICallError(http.MethodGet, c.baseURL+path,
			fmt.Errorf("failed to decode response: %w", err))
	}

	if len(instances) == 0 || instances[0] == nil {
		return nil, errors.InstanceNotFound(shortHash, nil)
	}

	return instances[0], nil
}

// Internal HTTP methods

func (c *APIClient) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.APICallError(http.MethodGet, c.baseURL+path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.APICallError(http.MethodGet, c.baseURL+path, fmt.Errorf("request failed: %w", err))
	}

	return resp, nil
}

func (c *APIClient) post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, errors.APICallError(http.MethodPost, c.baseURL+path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.APICallError(http.MethodPost, c.baseURL+path, fmt.Errorf("request failed: %w", err))
	}

	return resp, nil
}

func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(body))
}
