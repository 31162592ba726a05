package emtapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/emtdash/internal/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Client talks to the athlete / training REST API. Every call carries the
// backend token of the dashboard session; an empty token sends no auth header.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	callDuration *prometheus.HistogramVec
}

type Option func(*Client)

// WithCallDuration observes every backend call into the histogram,
// labeled by operation and outcome.
func WithCallDuration(h *prometheus.HistogramVec) Option {
	return func(c *Client) {
		c.callDuration = h
	}
}

// NewClient creates a client for backendURL (e.g. https://emt.example.org);
// all paths are resolved under <backendURL>/api/.
func NewClient(backendURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(backendURL, "/") + "/api/")
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: unsupported scheme", backendURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	c := &Client{
		baseURL:    u,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(op, method, path, token string, payload any) (request, error) {
	req := request{op: op, method: method, path: path, token: token}
	if payload == nil {
		return req, nil
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("marshal %s payload: %w", op, err)
	}
	req.body = bytes.NewReader(payloadBytes)
	req.contentType = "application/json"
	return req, nil
}

func formRequest(op, path, token string, fields map[string]string, files []FormFile) (request, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return request{}, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return request{}, fmt.Errorf("create form file %s: %w", f.Field, err)
		}
		if _, err := fw.Write(f.Content); err != nil {
			return request{}, fmt.Errorf("write form file %s: %w", f.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return request{}, fmt.Errorf("close multipart writer: %w", err)
	}

	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		token:       token,
		body:        buf,
		contentType: mw.FormDataContentType(),
	}, nil
}

// doRaw executes the request and returns the response body of a 2xx answer.
func (c *Client) doRaw(ctx context.Context, r request) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "emtapi."+r.op)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	start := time.Now()
	outcome := "ok"
	defer func() {
		if err != nil {
			outcome = "error"
		}
		if c.callDuration != nil {
			c.callDuration.WithLabelValues(r.op, outcome).Observe(time.Since(start).Seconds())
		}
	}()

	endpoint := c.baseURL.JoinPath(r.path)
	// Django routes end with a slash, JoinPath drops it
	endpoint.Path += "/"
	if len(r.query) > 0 {
		endpoint.RawQuery = r.query.Encode()
	}
	span.SetAttributes(
		attribute.String("backend.method", r.method),
		attribute.String("backend.path", endpoint.Path),
	)

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), r.body)
	if err != nil {
		return nil, fmt.Errorf("new %s request: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Token "+r.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", r.op, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", r.op, err)
	}

	span.SetAttributes(attribute.Int("backend.status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debugf("backend %s %s -> %d", r.method, endpoint.Path, resp.StatusCode)
		return nil, &APIError{
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBytes),
		}
	}

	return respBytes, nil
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	respBytes, err := c.doRaw(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", r.op, err)
	}
	return nil
}

// errorMessage pulls a readable message out of a DRF error body:
// {"detail": "..."}, {"non_field_errors": [...]} or plain text.
func errorMessage(body []byte) string {
	var detail struct {
		Detail         string   `json:"detail"`
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if err := json.Unmarshal(body, &detail); err == nil {
		if detail.Detail != "" {
			return detail.Detail
		}
		if len(detail.NonFieldErrors) > 0 {
			return strings.Join(detail.NonFieldErrors, "; ")
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	if msg == "" {
		msg = "no details"
	}
	return msg
}

func idPath(base string, id int, rest ...string) string {
	return strings.Join(append([]string{base, strconv.Itoa(id)}, rest...), "/")
}

func optionalQuery(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	return q
}
