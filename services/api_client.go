package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/internal/types"
)

const (
	ContentTypeJSON = "application/json"
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 10 << 20
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("transport failure")

// HTTPClient matches the subset of http.Client used by ApiClient.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the currently persisted bearer token, or "" when there is none.
type TokenSource interface {
	Token() (string, error)
}

// ApiClient is the single shared client for the backend REST API.
type ApiClient struct {
	base   *url.URL
	client HTTPClient
	tokens TokenSource
}

// NewApiClient builds a client rooted at baseURL. The token is read from tokens on every request.
func NewApiClient(baseURL string, client HTTPClient, tokens TokenSource) (*ApiClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("api: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: base URL %q must be absolute", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ApiClient{
		base:   parsed,
		client: client,
		tokens: tokens,
	}, nil
}

// BaseURL returns the root every request is resolved against.
func (c *ApiClient) BaseURL() string {
	return c.base.String()
}

// RequestHeaders builds the headers of an outgoing request. The Authorization header is
// present only when token is non-empty.
func RequestHeaders(token, contentType string) http.Header {
	if contentType == "" {
		contentType = ContentTypeJSON
	}
	h := make(http.Header)
	h.Set("Content-Type", contentType)
	h.Set("Accept", ContentTypeJSON)
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// Response is the raw outcome of a successful (2xx) call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return errors.New("api: empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// APIError is returned for non-2xx responses and carries the server's error payload.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Payload    json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: backend error (%d): %s", e.StatusCode, e.Message)
}

// Form is a multipart/form-data payload, used where a request carries files.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a Form.
type FormFile struct {
	Field    string
	FileName string
	Data     []byte
}

type requestBody struct {
	reader      io.Reader
	contentType string
}

func jsonBody(payload any) (*requestBody, error) {
	if payload == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("api: encode payload: %w", err)
	}
	return &requestBody{reader: &buf, contentType: ContentTypeJSON}, nil
}

func formBody(form Form) (*requestBody, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	keys := make([]string, 0, len(form.Fields))
	for k := range form.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writer.WriteField(k, form.Fields[k]); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	for _, f := range form.Files {
		part, err := writer.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to copy file data: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &requestBody{reader: body, contentType: writer.FormDataContentType()}, nil
}

func (c *ApiClient) get(ctx context.Context, segments ...string) (*Response, error) {
	return c.call(ctx, http.MethodGet, nil, segments...)
}

func (c *ApiClient) delete(ctx context.Context, segments ...string) (*Response, error) {
	return c.call(ctx, http.MethodDelete, nil, segments...)
}

func (c *ApiClient) sendJSON(ctx context.Context, method string, payload any, segments ...string) (*Response, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, method, body, segments...)
}

func (c *ApiClient) sendForm(ctx context.Context, method string, form Form, segments ...string) (*Response, error) {
	body, err := formBody(form)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, method, body, segments...)
}

func (c *ApiClient) call(ctx context.Context, method string, body *requestBody, segments ...string) (*Response, error) {
	req, err := c.newRequest(ctx, method, c.base.JoinPath(segments...).String(), body)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{
		"method":     method,
		"path":       req.URL.Path,
		"request_id": req.Header.Get(RequestIDHeader),
	})
	logger.Debug("api request")

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debugf("api request failed: %s", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", ErrTransport, err)
	}
	logger.WithField("status", resp.StatusCode).Debug("api response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp, respBody)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       json.RawMessage(respBody),
	}, nil
}

// newRequest is the single point every outgoing request passes through.
func (c *ApiClient) newRequest(ctx context.Context, method, target string, body *requestBody) (*http.Request, error) {
	var reader io.Reader
	contentType := ContentTypeJSON
	if body != nil {
		reader = body.reader
		contentType = body.contentType
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header = RequestHeaders(c.currentToken(), contentType)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

func (c *ApiClient) currentToken() string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Token()
	if err != nil {
		log.Warnf("failed to read stored token, sending request without credentials: %s", err)
		return ""
	}
	return strings.TrimSpace(token)
}

func errorFromResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 {
		if json.Valid(trimmed) {
			apiErr.Payload = json.RawMessage(trimmed)
		}
		var payload types.ErrorPayload
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			switch {
			case payload.Message != "":
				apiErr.Message = payload.Message
			case payload.Error != "":
				apiErr.Message = payload.Error
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = string(trimmed)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// requireID rejects identifiers that are empty or would add path segments, and returns
// the id escaped as a single path segment. JoinPath takes escaped input, so a raw '%'
// must not reach it.
func requireID(name, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("api: %s is required", name)
	}
	if strings.Contains(id, "/") || id == "." || id == ".." {
		return "", fmt.Errorf("api: invalid %s %q", name, id)
	}
	return url.PathEscape(id), nil
}
