// Package transport sends form submissions over HTTP.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("transport")

// ErrTransport marks failures to reach the server or read its reply.
var ErrTransport = errors.New("transport error")

const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
)

// Request is a single outgoing call. Path is joined to the client's base URL.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Response is the server's reply with the body fully read.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client performs Requests against a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client. A non-positive timeout leaves the http.Client unbounded.
func New(cfg Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Do sends req. Non-2xx replies are returned as a Response, not an error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	url := c.baseURL + req.Path
	ctx, span := tracer.Start(ctx, "transport.Do", trace.WithAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", url),
	))
	defer span.End()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(req.Body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to build request")
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.New().String())
	}
	span.SetAttributes(attribute.String("http.request_id", httpReq.Header.Get(HeaderRequestID)))
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read response body")
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
