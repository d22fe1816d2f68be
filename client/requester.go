package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const apiPath = "/api/v1/"

// Doer performs a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Requester issues one-shot requests against a controller's API and translates failure
// responses into typed errors.
type Requester struct {
	mu      sync.RWMutex
	address string
	port    int
	token   string

	httpClient Doer
	logger     *log.Entry
}

// RequesterOption customizes a Requester.
type RequesterOption func(*Requester)

// WithHTTPClient replaces the transport used for requests.
func WithHTTPClient(d Doer) RequesterOption {
	return func(r *Requester) {
		r.httpClient = d
	}
}

// WithPort overrides the API port.
func WithPort(port int) RequesterOption {
	return func(r *Requester) {
		r.port = port
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *log.Entry) RequesterOption {
	return func(r *Requester) {
		r.logger = logger
	}
}

// NewRequester creates a requester for the controller described by cfg.
func NewRequester(cfg Config, opts ...RequesterOption) *Requester {
	r := &Requester{
		address:    cfg.Address,
		port:       DefaultPort,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.WithField("component", "requester"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Address returns the controller address.
func (r *Requester) Address() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.address
}

// SetAddress points subsequent requests at a new controller address.
func (r *Requester) SetAddress(address string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.address = address
}

// BaseURL returns http://<address>:<port>/api/v1/<token>/.
func (r *Requester) BaseURL() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	host := net.JoinHostPort(r.address, strconv.Itoa(r.port))
	return fmt.Sprintf("http://%s%s%s/", host, apiPath, r.token)
}

func (r *Requester) url(endpoint string) string {
	return r.BaseURL() + strings.TrimPrefix(endpoint, "/")
}

// Execute sends one request. A non-nil body is encoded as JSON. On success the raw
// JSON response is returned, which is nil when the controller sent no content.
func (r *Requester) Execute(ctx context.Context, method, endpoint string, body interface{}) (json.RawMessage, error) {
	url := r.url(endpoint)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "could not encode request body: %s %s", method, endpoint)
		}
		reader = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create request: %s %s", method, endpoint)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := r.httpClient.Do(request)
	if err != nil {
		r.logger.WithError(err).WithFields(log.Fields{
			"method":   method,
			"endpoint": endpoint,
		}).Error("request failed")
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}

	r.logger.WithFields(log.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   response.StatusCode,
		"length":   len(data),
	}).Debug("request complete")

	if response.StatusCode >= http.StatusBadRequest {
		return nil, newControllerError(response.StatusCode, decodePayload(data))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, errors.Errorf("invalid JSON in response: %s %s", method, endpoint)
	}
	return json.RawMessage(data), nil
}

func decodePayload(data []byte) interface{} {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return string(data)
	}
	return payload
}

// Get reads endpoint and decodes the response into target.
func (r *Requester) Get(ctx context.Context, endpoint string, target interface{}) error {
	data, err := r.Execute(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return decodeInto(data, endpoint, target)
}

// Put writes body to endpoint. When target is non-nil the response is decoded into it.
func (r *Requester) Put(ctx context.Context, endpoint string, body, target interface{}) error {
	data, err := r.Execute(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	return decodeInto(data, endpoint, target)
}

// Delete issues a DELETE against endpoint.
func (r *Requester) Delete(ctx context.Context, endpoint string) error {
	_, err := r.Execute(ctx, http.MethodDelete, endpoint, nil)
	return err
}

// decodeInto reports ErrNoContent for an empty or null body, either of which means the
// controller has no value for endpoint.
func decodeInto(data json.RawMessage, endpoint string, target interface{}) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.Wrap(ErrNoContent, endpoint)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Wrapf(err, "could not decode response from %s", endpoint)
	}
	return nil
}

func getValue[T any](ctx context.Context, r *Requester, endpoint string) (T, error) {
	var value T
	err := r.Get(ctx, endpoint, &value)
	return value, err
}
