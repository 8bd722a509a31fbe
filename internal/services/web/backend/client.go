// Package backend is the HTTP/JSON client for the booking backend's quote and
// booking endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/greenblade/lawncare/internal/platform/timeouts"
	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:8000"

const (
	quotePath   = "/api/quote"
	bookingPath = "/api/book"

	maxResponseBytes = 1 << 20
	instrumentation  = "github.com/greenblade/lawncare/internal/services/web/backend"
)

// Config configures a backend client. Zero values select defaults.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	HTTPClient     *http.Client
	Logger         *log.Logger
	TracerProvider trace.TracerProvider
	Propagator     propagation.TextMapPropagator
}

// Client calls the booking backend.
type Client struct {
	baseURL    *url.URL
	timeout    time.Duration
	httpClient *http.Client
	logger     *log.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must use http or https", raw)
	}
	if baseURL.Host == "" {
		return nil, fmt.Errorf("backend url %q must include a host", raw)
	}

	client := &Client{
		baseURL:    baseURL,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		propagator: cfg.Propagator,
	}
	if client.timeout <= 0 {
		client.timeout = timeouts.BackendRequest
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	if client.propagator == nil {
		client.propagator = otel.GetTextMapPropagator()
	}
	tracerProvider := cfg.TracerProvider
	if tracerProvider == nil {
		tracerProvider = otel.GetTracerProvider()
	}
	client.tracer = tracerProvider.Tracer(instrumentation)
	return client, nil
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// CreateQuote saves a quote and returns the backend's id and total.
func (c *Client) CreateQuote(ctx context.Context, req QuoteRequest) (Quote, error) {
	var quote Quote
	if err := c.post(ctx, "backend.CreateQuote", quotePath, req, &quote); err != nil {
		return Quote{}, c.fail(ErrCreateQuote, "create quote", err)
	}
	if quote.ID == "" {
		return Quote{}, c.fail(ErrCreateQuote, "create quote", errors.New("response is missing id"))
	}
	return quote, nil
}

// CreateBooking books a visit and returns the confirmation.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	if req.Extras == nil {
		req.Extras = []string{}
	}
	var booking Booking
	if err := c.post(ctx, "backend.CreateBooking", bookingPath, req, &booking); err != nil {
		return Booking{}, c.fail(ErrCreateBooking, "create booking", err)
	}
	if booking.ID == "" {
		return Booking{}, c.fail(ErrCreateBooking, "create booking", errors.New("response is missing id"))
	}
	return booking, nil
}

func (c *Client) post(ctx context.Context, spanName string, path string, in any, out any) (err error) {
	if c == nil || c.baseURL == nil {
		return errors.New("backend client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL.JoinPath(path).String()

	ctx, span := c.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", endpoint),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	c.propagator.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
	}()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) fail(public error, op string, cause error) error {
	logger := log.Default()
	if c != nil && c.logger != nil {
		logger = c.logger
	}
	logger.Printf("backend %s failed base_url=%s err=%v", op, c.BaseURL(), cause)
	var appErr apperrors.Error
	if errors.As(public, &appErr) {
		return apperrors.Wrap(appErr.Kind, appErr.Key, appErr.Message, cause)
	}
	return public
}
