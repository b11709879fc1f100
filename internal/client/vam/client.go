// Package vam is a client for the video asset manager REST API.
//
// Resources form a strict hierarchy: a VideoSequence owns Videos,
// a Video owns VideoReferences. Every call is a single synchronous
// request, nothing is retried or cached. Children are created by
// passing the parent's uuid explicitly, so callers must wait for
// the parent to be created first.
package vam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
	"github.com/GintGld/vam-seed/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	formType       = "application/x-www-form-urlencoded"
)

// Object is decoded JSON object returned by the service.
// Numbers are kept as json.Number, so large sizes are not rounded.
type Object map[string]any

// UUID returns object's identifier or empty string.
func (o Object) UUID() string {
	s, _ := o["uuid"].(string)
	return s
}

type Client struct {
	log     *slog.Logger
	baseURL string
	timeout time.Duration
	plural  bool
	http    *http.Client
}

type Option func(*Client)

// WithPluralPaths makes client use collection
// names like "videosequences" instead of "videosequence".
func WithPluralPaths(plural bool) Option {
	return func(c *Client) {
		c.plural = plural
	}
}

// WithHTTPClient replaces underlying http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New returns client for service at baseURL
// (e.g. http://localhost:8080/v1/).
// Every request is limited by timeout,
// non-positive timeout means default one.
func New(
	log *slog.Logger,
	baseURL string,
	timeout time.Duration,
	opts ...Option,
) (*Client, error) {
	const op = "vam.New"

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", op, u.Scheme)
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		log:     log,
		baseURL: strings.TrimSuffix(u.String(), "/"),
		timeout: timeout,
		http:    &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Create sends fields as a creation request for given
// resource type and returns created object.
func (c *Client) Create(ctx context.Context, rt models.ResourceType, fields url.Values) (Object, error) {
	const op = "Client.Create"

	obj, err := send[Object](ctx, c, op, request{
		method: http.MethodPost,
		url:    c.url(rt),
		form:   fields,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return obj, nil
}

// Update sends fields as an update of resource with given id.
func (c *Client) Update(ctx context.Context, rt models.ResourceType, id string, fields url.Values) (Object, error) {
	const op = "Client.Update"

	obj, err := send[Object](ctx, c, op, request{
		method: http.MethodPut,
		url:    c.url(rt, id),
		form:   fields,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return obj, nil
}

// ByID returns resource by its id.
//
// If resource does not exist, returns error matching ErrNotFound.
func (c *Client) ByID(ctx context.Context, rt models.ResourceType, id string) (Object, error) {
	const op = "Client.ByID"

	obj, err := send[Object](ctx, c, op, request{
		method: http.MethodGet,
		url:    c.url(rt, id),
		read:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return obj, nil
}

// ByName returns resource by its name.
// Only video sequences are addressable by name.
func (c *Client) ByName(ctx context.Context, rt models.ResourceType, name string) (Object, error) {
	const op = "Client.ByName"

	if rt != models.ResourceSequence {
		return nil, fmt.Errorf("%s: %s: %w", op, rt, ErrUnsupported)
	}

	obj, err := send[Object](ctx, c, op, request{
		method: http.MethodGet,
		url:    c.url(rt, "name", name),
		read:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return obj, nil
}

// Names returns all known names of resources.
func (c *Client) Names(ctx context.Context, rt models.ResourceType) ([]string, error) {
	const op = "Client.Names"

	if rt != models.ResourceSequence {
		return nil, fmt.Errorf("%s: %s: %w", op, rt, ErrUnsupported)
	}

	names, err := send[[]string](ctx, c, op, request{
		method: http.MethodGet,
		url:    c.url(rt, "names"),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return names, nil
}

// Cameras returns all known camera identifiers.
func (c *Client) Cameras(ctx context.Context) ([]string, error) {
	const op = "Client.Cameras"

	cameras, err := send[[]string](ctx, c, op, request{
		method: http.MethodGet,
		url:    c.url(models.ResourceSequence, "cameras"),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cameras, nil
}

// Delete removes resource by id.
func (c *Client) Delete(ctx context.Context, rt models.ResourceType, id string) error {
	const op = "Client.Delete"

	resp, err := c.do(ctx, op, request{
		method: http.MethodDelete,
		url:    c.url(rt, id),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := resp.statusErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

type request struct {
	method string
	url    string
	form   url.Values
	// read marks lookups, where empty result means not found.
	read bool
}

type response struct {
	url        string
	statusCode int
	reason     string
	body       []byte
}

// Endpoint returns resource URL with escaped path segments.
func (c *Client) Endpoint(rt models.ResourceType, segments ...string) string {
	return c.url(rt, segments...)
}

// url builds resource URL, every segment is escaped.
func (c *Client) url(rt models.ResourceType, segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteByte('/')
	b.WriteString(rt.Path(c.plural))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// send performs request and decodes its JSON body into T.
func send[T any](ctx context.Context, c *Client, op string, req request) (T, error) {
	resp, err := c.do(ctx, op, req)
	if err != nil {
		var res T
		return res, err
	}

	return decode[T](c, op, req, resp)
}

// decode checks response status and decodes body into T.
func decode[T any](c *Client, op string, req request, resp *response) (T, error) {
	var res T

	if err := resp.statusErr(); err != nil {
		return res, err
	}

	if req.read && resp.empty() {
		return res, resp.notFound()
	}

	dec := json.NewDecoder(bytes.NewReader(resp.body))
	dec.UseNumber()

	if err := dec.Decode(&res); err != nil {
		c.log.Error(
			"failed to decode response",
			slog.String("op", op),
			slog.String("url", resp.url),
			slog.Int("status", resp.statusCode),
			sl.Err(err),
		)
		return res, resp.decodeErr(err)
	}

	if obj, ok := any(res).(Object); ok && obj.UUID() == "" {
		return res, resp.decodeErr(ErrMissingUUID)
	}

	return res, nil
}

// do sends request and reads whole response body.
func (c *Client) do(ctx context.Context, op string, req request) (*response, error) {
	log := c.log.With(
		slog.String("op", op),
		slog.String("method", req.method),
		slog.String("url", req.url),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if req.form != nil {
		body = strings.NewReader(req.form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return nil, &TransportError{Method: req.method, URL: req.url, Err: err}
	}
	if req.form != nil {
		httpReq.Header.Set("Content-Type", formType)
	}
	httpReq.Header.Set("Accept", "application/json")

	log.Debug("sending request")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		log.Error("request failed", sl.Err(err))
		return nil, &TransportError{Method: req.method, URL: req.url, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		log.Error("failed to read response", sl.Err(err))
		return nil, &TransportError{Method: req.method, URL: req.url, Err: err}
	}

	log.Debug("got response", slog.Int("status", httpResp.StatusCode))

	return &response{
		url:        req.url,
		statusCode: httpResp.StatusCode,
		reason:     reason(httpResp),
		body:       data,
	}, nil
}

func (r *response) statusErr() error {
	if r.statusCode >= 200 && r.statusCode < 300 {
		return nil
	}

	var form struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(r.body, &form)

	return &StatusError{
		URL:        r.url,
		StatusCode: r.statusCode,
		Reason:     r.reason,
		Body:       r.body,
		Message:    form.Error,
		notFound:   r.statusCode == http.StatusNotFound,
	}
}

func (r *response) notFound() error {
	return &StatusError{
		URL:        r.url,
		StatusCode: r.statusCode,
		Reason:     r.reason,
		Body:       r.body,
		Message:    "empty result",
		notFound:   true,
	}
}

func (r *response) decodeErr(err error) error {
	return &DecodeError{
		URL:        r.url,
		StatusCode: r.statusCode,
		Reason:     r.reason,
		Body:       r.body,
		Err:        err,
	}
}

// empty reports body which carries no resource.
func (r *response) empty() bool {
	b := bytes.TrimSpace(r.body)
	return len(b) == 0 || bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("{}"))
}

// reason extracts reason phrase from status line.
func reason(resp *http.Response) string {
	s := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	s = strings.TrimSpace(s)
	if s == "" {
		s = http.StatusText(resp.StatusCode)
	}
	return s
}
