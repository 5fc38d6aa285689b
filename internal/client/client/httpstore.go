package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/common"
	"github.com/dmitrijs2005/docsession/internal/logging"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodySize  = 4 << 20
	maxErrorBody = 512
)

// HTTPStore talks to the document store's REST API. The collection URL is
// <endpoint>/databases/<db>/collections/<coll>; the access key travels as
// the apiKey query parameter on every request.
type HTTPStore struct {
	collectionURL *url.URL
	apiKey        string
	httpClient    *http.Client
	timeout       time.Duration
	log           logging.Logger
}

type Option func(*HTTPStore)

func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPStore) { s.httpClient = c }
}

// WithTimeout bounds every single request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPStore) { s.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *HTTPStore) { s.log = l }
}

func NewHTTPStore(endpoint, database, collection, apiKey string, opts ...Option) (*HTTPStore, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse endpoint: %q is not an absolute URL", endpoint)
	}
	if database == "" || collection == "" {
		return nil, fmt.Errorf("database and collection must be set")
	}

	s := &HTTPStore{
		collectionURL: base.JoinPath("databases", database, "collections", collection),
		apiKey:        apiKey,
		httpClient:    &http.Client{},
		timeout:       DefaultTimeout,
		log:           logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CollectionURL returns the collection URL without any query.
func (s *HTTPStore) CollectionURL() string {
	return s.collectionURL.String()
}

func (s *HTTPStore) FindUser(ctx context.Context, name string) (models.Record, error) {
	filter, err := json.Marshal(map[string]string{models.FieldName: name})
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	q := url.Values{}
	q.Set("q", string(filter))
	q.Set("fo", "true")

	var rec models.Record
	if err := s.do(ctx, "find user", http.MethodGet, q, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *HTTPStore) CreateUser(ctx context.Context, rec models.Record) (models.Record, error) {
	var created models.Record
	if err := s.do(ctx, "create user", http.MethodPost, url.Values{}, rec, &created); err != nil {
		return nil, err
	}
	if created == nil {
		return nil, &NetworkError{Op: "create user", StatusCode: http.StatusOK, Err: ErrMalformedResponse}
	}
	return created, nil
}

func (s *HTTPStore) UpdateUser(ctx context.Context, id string, fields models.Record) error {
	filter, err := json.Marshal(map[string]models.ObjectID{models.FieldID: {OID: id}})
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}

	q := url.Values{}
	q.Set("q", string(filter))
	q.Set("u", "true")

	return s.do(ctx, "update user", http.MethodPut, q, map[string]any{"$set": fields}, nil)
}

// Ping asks the store for the collection size, which needs a valid key and
// a reachable collection but touches no record.
func (s *HTTPStore) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("q", "{}")
	q.Set("c", "true")

	return s.do(ctx, "ping", http.MethodGet, q, nil, nil)
}

func (s *HTTPStore) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *HTTPStore) do(ctx context.Context, op, method string, q url.Values, in any, out any) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	q.Set(common.APIKeyParam, s.apiKey)
	u := *s.collectionURL
	u.RawQuery = q.Encode()

	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := s.log.With("op", op, "request_id", requestID)
	log.Debug(ctx, "store request", "method", method, "path", u.Path)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "store request failed", "error", err)
		return &NetworkError{Op: op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(ctx, "failed to close the response body", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: read body: %w", ErrUnavailable, err)}
	}

	if err := s.mapStatus(op, resp.StatusCode, data); err != nil {
		log.Warn(ctx, "store rejected request", "status", resp.StatusCode)
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)}
	}
	return nil
}

func (s *HTTPStore) mapStatus(op string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	e := &NetworkError{Op: op, StatusCode: status, Body: truncate(body, maxErrorBody)}
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		e.Err = ErrUnauthorized
	case status >= 500:
		e.Err = ErrUnavailable
	default:
		e.Err = ErrUnexpectedStatus
	}
	return e
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
