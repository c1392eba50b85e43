package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"
)

// Config is the externally-supplied part of the client setup. Field tags
// follow the kong convention so command-line tools can embed it directly.
type Config struct {
	ApiServerAddress string `help:"Base URL of the CMS API server" env:"SITECTL_API_URL" default:"http://localhost:5000/api"`
	SessionFile      string `help:"Path of the local session database" env:"SITECTL_SESSION_FILE" default:""`
}

// APIError is the failure of a single API operation, carrying the message
// a human should see: the server-supplied one when the response had a
// usable envelope, the operation's fixed fallback otherwise.
type APIError struct {
	Status  int
	Message string

	cause error
}

func (e *APIError) Error() string { return e.Message }
func (e *APIError) Unwrap() error { return e.cause }

// ErrUnsupported is returned for operations a collection does not offer,
// such as creating a career application from the admin surface.
var ErrUnsupported = errors.New("operation not supported for this collection")

// Client is the one configured request sender every API family goes
// through. The cookie jar forwards the session credential on each request.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     log.Logger
	metrics    *Metrics
}

type Option func(*Client)

// WithLogger attaches a structured logger for per-request debug output.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCookieJar replaces the default in-memory jar, for callers that
// persist the session between process runs.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) { c.httpClient.Jar = jar }
}

// WithMetrics wires request counters and latency observations into the
// given collector set.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Jar: jar},
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func (c *Client) urlFor(apiPath string) *url.URL {
	return &url.URL{
		Scheme: c.baseURL.Scheme,
		User:   c.baseURL.User,
		Host:   c.baseURL.Host,
		Path:   path.Join(c.baseURL.Path, apiPath),
	}
}

// apiOp labels a request for logging and metrics.
type apiOp struct {
	kind Kind
	name string
}

func (c *Client) do(ctx context.Context, op apiOp, method string, target *url.URL, contentType string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	request, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	requestID := uuid.NewString()
	request.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(request)
	elapsed := time.Since(started)

	outcome := "ok"
	status := 0
	if err != nil {
		outcome = "error"
	} else {
		status = resp.StatusCode
		if status >= http.StatusBadRequest {
			outcome = "error"
		}
	}

	if c.metrics != nil {
		c.metrics.observe(op, outcome, elapsed)
	}
	c.logger.Log(
		"kind", op.kind,
		"op", op.name,
		"method", method,
		"path", target.Path,
		"status", status,
		"elapsed", elapsed,
		"request_id", requestID,
		"err", err,
	)

	return resp, err
}

// decodeEnvelope validates the {success, message, ...} response shape and
// returns the raw member named by payloadField. A missing member is not an
// error: some list endpoints omit it when the collection is empty.
func decodeEnvelope(resp *http.Response, payloadField, fallback string) (json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: fallback, cause: err}
	}

	var success bool
	if member, ok := raw["success"]; ok {
		_ = json.Unmarshal(member, &success)
	}

	if !success || resp.StatusCode >= http.StatusBadRequest {
		message := fallback
		var serverMessage string
		if member, ok := raw["message"]; ok {
			if err := json.Unmarshal(member, &serverMessage); err == nil && serverMessage != "" {
				message = serverMessage
			}
		}
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}

	if payloadField == "" {
		return nil, nil
	}
	return raw[payloadField], nil
}

// transportError wraps a request-never-resolved failure with the
// operation's user-facing fallback message.
func transportError(fallback string, cause error) error {
	return &APIError{Message: fallback, cause: cause}
}

// Collection is the generic client for one endpoint family. Every managed
// collection is an instance of it; the family table carries the per-entity
// differences.
type Collection[T any] struct {
	client *Client
	fam    family
}

// List requests the full collection. An empty collection decodes to an
// empty, non-nil slice.
func (c Collection[T]) List(ctx context.Context) ([]T, error) {
	if c.fam.listPath == "" {
		return nil, ErrUnsupported
	}

	resp, err := c.client.do(ctx, apiOp{c.fam.kind, "list"}, http.MethodGet, c.client.urlFor(c.fam.listPath), "", nil)
	if err != nil {
		return nil, transportError(c.fam.messages.Load, err)
	}
	defer resp.Body.Close()

	payload, err := decodeEnvelope(resp, c.fam.listField, c.fam.messages.Load)
	if err != nil {
		return nil, err
	}

	items := []T{}
	if payload != nil {
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, &APIError{Status: resp.StatusCode, Message: c.fam.messages.Load, cause: err}
		}
	}
	return items, nil
}

// Create submits a new record and returns the canonical one the server
// stored, identifier included.
func (c Collection[T]) Create(ctx context.Context, payload Payload) (record T, err error) {
	if c.fam.createPath == "" {
		return record, ErrUnsupported
	}

	body, contentType, err := payload.encode(c.fam.multipart)
	if err != nil {
		return record, err
	}

	resp, err := c.client.do(ctx, apiOp{c.fam.kind, "create"}, http.MethodPost, c.client.urlFor(c.fam.createPath), contentType, body)
	if err != nil {
		return record, transportError(c.fam.messages.Create, err)
	}
	defer resp.Body.Close()

	return decodeRecord[T](resp, c.fam.itemField, c.fam.messages.Create)
}

// Update submits a full or partial payload for one record and returns the
// server's updated copy.
func (c Collection[T]) Update(ctx context.Context, id string, payload Payload) (record T, err error) {
	if c.fam.updatePath == nil {
		return record, ErrUnsupported
	}

	body, contentType, err := payload.encode(c.fam.multipart)
	if err != nil {
		return record, err
	}

	resp, err := c.client.do(ctx, apiOp{c.fam.kind, "update"}, http.MethodPut, c.client.urlFor(c.fam.updatePath(id)), contentType, body)
	if err != nil {
		return record, transportError(c.fam.messages.Update, err)
	}
	defer resp.Body.Close()

	return decodeRecord[T](resp, c.fam.itemField, c.fam.messages.Update)
}

// Delete removes one record. The call reports success only once the server
// has confirmed it.
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	if c.fam.deletePath == nil {
		return ErrUnsupported
	}

	resp, err := c.client.do(ctx, apiOp{c.fam.kind, "delete"}, http.MethodDelete, c.client.urlFor(c.fam.deletePath(id)), "", nil)
	if err != nil {
		return transportError(c.fam.messages.Delete, err)
	}
	defer resp.Body.Close()

	_, err = decodeEnvelope(resp, "", c.fam.messages.Delete)
	return err
}

func decodeRecord[T any](resp *http.Response, field, fallback string) (record T, err error) {
	payload, err := decodeEnvelope(resp, field, fallback)
	if err != nil {
		return record, err
	}
	if payload == nil {
		return record, &APIError{Status: resp.StatusCode, Message: fallback}
	}
	if err := json.Unmarshal(payload, &record); err != nil {
		return record, &APIError{Status: resp.StatusCode, Message: fallback, cause: err}
	}
	return record, nil
}

func (c *Client) Services() Collection[Service]    { return Collection[Service]{c, serviceFamily} }
func (c *Client) Features() Collection[Feature]    { return Collection[Feature]{c, featureFamily} }
func (c *Client) Gallery() Collection[GalleryItem] { return Collection[GalleryItem]{c, galleryFamily} }
func (c *Client) Jobs() Collection[JobPosting]     { return Collection[JobPosting]{c, jobFamily} }
func (c *Client) Careers() Collection[Applicant]   { return Collection[Applicant]{c, applicantFamily} }
func (c *Client) Contact() Collection[Inquiry]     { return Collection[Inquiry]{c, inquiryFamily} }

func (c *Client) Projects() ProjectsAPI {
	return ProjectsAPI{Collection[Project]{c, projectFamily}}
}

// ProjectsAPI extends the generic collection with single-record reads,
// which only the projects endpoint offers.
type ProjectsAPI struct {
	Collection[Project]
}

// Get fetches one project by slug. Returns exists=false when the server
// does not know the slug.
func (a ProjectsAPI) Get(ctx context.Context, slug string) (project Project, exists bool, err error) {
	resp, err := a.client.do(ctx, apiOp{KindProject, "get"}, http.MethodGet, a.client.urlFor("projects/"+slug), "", nil)
	if err != nil {
		return project, false, transportError("Failed to fetch project", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return project, false, nil
	}

	project, err = decodeRecord[Project](resp, "project", "Failed to fetch project")
	if err != nil {
		return project, false, err
	}
	return project, true, nil
}
