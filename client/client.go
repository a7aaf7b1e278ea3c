package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethicomply/lms-contract-tests/framework"
)

const DefaultRequestTimeout = time.Second * 30

// APIClient sends requests to the platform's HTTP API. All paths are relative to the base URL
// it was created with. When it holds a token, every request carries it as a bearer token.
//
// Copies made with WithLogger share the token with the original, so a token obtained by one
// check is seen by all later ones. WithoutToken makes a copy with its own, empty token.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	auth       *tokenHolder
	logger     framework.Logger
}

type tokenHolder struct {
	token string
}

// Request describes one call to the API.
type Request struct {
	Method string
	// Path is relative to the base URL, such as "/courses/course-001".
	Path  string
	Query url.Values
	// Body is encoded as JSON if it is not nil.
	Body    interface{}
	Headers map[string]string
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &APIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		auth:       &tokenHolder{},
		logger:     framework.NullLogger(),
	}
}

func (c *APIClient) BaseURL() string {
	return c.baseURL
}

func (c *APIClient) Token() string {
	return c.auth.token
}

// SetToken replaces the bearer token used for all later requests.
func (c *APIClient) SetToken(token string) {
	c.auth.token = token
}

// WithLogger returns a copy of the client that writes request and response details to logger.
func (c *APIClient) WithLogger(logger framework.Logger) *APIClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

// WithoutToken returns a copy of the client that sends no Authorization header.
func (c *APIClient) WithoutToken() *APIClient {
	c1 := *c
	c1.auth = &tokenHolder{}
	return &c1
}

func (c *APIClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

func (c *APIClient) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Do performs the request. If no response was received at all, because the connection failed,
// the timeout elapsed or ctx was cancelled, it returns a *TransportError and a nil Response.
// Any HTTP status, including error statuses, is returned as a Response with a nil error.
func (c *APIClient) Do(ctx context.Context, r Request) (*Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var bodyData []byte
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body for %s %s: %w", method, r.Path, err)
		}
		bodyData = data
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(bodyData))
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.auth.token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Printf("Request: %s", curlCommand(req, bodyData))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("No response after %s: %s", time.Since(start), err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("Error reading response body: %s", err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	c.logger.Printf("Response: HTTP %d (%s, %s) %s", resp.StatusCode, resp.Header.Get("Content-Type"),
		time.Since(start), abbreviate(respData))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respData,
	}, nil
}

const maxLoggedBodyLength = 2000

func abbreviate(data []byte) string {
	if len(data) > maxLoggedBodyLength {
		return string(data[:maxLoggedBodyLength]) + fmt.Sprintf("... (%d bytes)", len(data))
	}
	return string(data)
}
