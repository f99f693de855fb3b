// Package http implements the transport layer: one synchronous HTTP call per
// operation against the Open To Close API, with the credential carried as an
// api_token query parameter on every request.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/fivetwenty-io/opentoclose/internal/constants"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// Client executes HTTP requests against the API. It never batches, never
// retries, and never caches; the only state shared across calls is the token,
// base URL, and underlying session, all read-only, so concurrent use is safe
// as long as the session itself is.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *nethttp.Client
	logger     otc.Logger
	debug      bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the structured logger. Failed requests are logged through
// it unconditionally; request/response traces additionally require WithDebug.
func WithLogger(logger otc.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying session.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the session timeout. Per-call deadlines should be set
// through context instead.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a transport client for the given API root and token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		userAgent:  constants.DefaultUserAgent,
		httpClient: cleanhttp.DefaultPooledClient(),
	}
	client.httpClient.Timeout = constants.DefaultHTTPTimeout

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// FilePart is one file attached to a multipart request.
type FilePart struct {
	Field   string
	Name    string
	Content []byte
}

// Request describes a single API call. Body is JSON-encoded when set; Form
// and Files switch the request to multipart encoding and take precedence over
// Body.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Form    url.Values
	Files   []FilePart
	Headers map[string]string
}

// Response is the decoded result of a call. JSON holds the parsed body: an
// empty map for 204 responses and for success bodies that are empty or not
// parsable as JSON.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
	JSON       interface{}
}

// Do executes one request. Non-2xx responses return both the Response and
// the mapped taxonomy error; transport failures return a network error with
// no Response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	requestID := ""
	if c.debug && c.logger != nil {
		requestID = uuid.NewString()
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"path":       req.Path,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		netErr := otc.NewNetworkError(
			fmt.Sprintf("%s %s failed", req.Method, req.Path), err)

		if c.logger != nil {
			c.logger.Error("HTTP transport failure", map[string]interface{}{
				"method": req.Method,
				"path":   req.Path,
				"error":  err.Error(),
			})
		}

		return nil, netErr
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, otc.NewNetworkError(
			fmt.Sprintf("reading %s %s response", req.Method, req.Path), err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"request_id":  requestID,
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		})
	}

	switch {
	case resp.StatusCode == nethttp.StatusNoContent:
		// 204 never carries a body worth decoding.
		resp.JSON = map[string]interface{}{}
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		resp.JSON = decodeLenient(body)
	default:
		return resp, c.errorFromResponse(req, resp)
	}

	return resp, nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post executes a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// PostForm executes a multipart POST with raw form fields and file parts.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, files []FilePart) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Form: form, Files: files})
}

// Put executes a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Patch executes a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, Body: body})
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*nethttp.Request, error) {
	// A single leading slash is stripped before joining; doubled slashes in
	// the configured base URL are the caller's error and are not repaired.
	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")

	query := url.Values{}

	for key, values := range req.Query {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	// Provider wire contract: the token travels as a query parameter on
	// every request, never as an Authorization header.
	query.Set("api_token", c.token)

	var bodyReader io.Reader

	contentType := ""

	switch {
	case len(req.Files) > 0 || len(req.Form) > 0:
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)

		for key, values := range req.Form {
			for _, value := range values {
				if err := writer.WriteField(key, value); err != nil {
					return nil, fmt.Errorf("writing form field %q: %w", key, err)
				}
			}
		}

		for _, part := range req.Files {
			fileWriter, err := writer.CreateFormFile(part.Field, part.Name)
			if err != nil {
				return nil, fmt.Errorf("creating form file %q: %w", part.Name, err)
			}

			if _, err := fileWriter.Write(part.Content); err != nil {
				return nil, fmt.Errorf("writing form file %q: %w", part.Name, err)
			}
		}

		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("closing multipart writer: %w", err)
		}

		bodyReader = buf
		contentType = writer.FormDataContentType()
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyReader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.URL.RawQuery = query.Encode()
	httpReq.Header.Set("Accept", "application/json")

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// decodeLenient parses a success body, degrading to an empty object when the
// body is empty or not valid JSON.
func decodeLenient(body []byte) interface{} {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return map[string]interface{}{}
	}

	return decoded
}

// errorFromResponse maps a non-success response onto the error taxonomy. The
// body is parsed as JSON when possible and a human message extracted;
// otherwise the raw text becomes the message verbatim.
func (c *Client) errorFromResponse(req *Request, resp *Response) error {
	var responseData interface{}

	message := strings.TrimSpace(string(resp.Body))

	if err := json.Unmarshal(resp.Body, &responseData); err == nil {
		if record, ok := responseData.(map[string]interface{}); ok {
			if msg, ok := record["message"].(string); ok && msg != "" {
				message = msg
			} else if msg, ok := record["error"].(string); ok && msg != "" {
				message = msg
			}
		}
	} else {
		responseData = nil
	}

	if message == "" {
		message = nethttp.StatusText(resp.StatusCode)
	}

	apiErr := otc.ErrorFromStatus(resp.StatusCode, message, responseData)

	if resp.StatusCode == nethttp.StatusTooManyRequests {
		apiErr.RetryAfter = retryAfterHint(resp.Headers)
	}

	if c.logger != nil {
		c.logger.Error("API request failed", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"response":    string(resp.Body),
		})
	}

	return apiErr
}

// retryAfterHint parses a seconds-valued Retry-After header, zero when absent
// or unparsable.
func retryAfterHint(headers nethttp.Header) time.Duration {
	raw := headers.Get("Retry-After")
	if raw == "" {
		return 0
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
