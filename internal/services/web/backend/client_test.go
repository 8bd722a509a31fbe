package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "default", baseURL: "", want: DefaultBaseURL},
		{name: "trailing slash trimmed", baseURL: "https://api.example.test/", want: "https://api.example.test"},
		{name: "path prefix kept", baseURL: "http://api.example.test/v1", want: "http://api.example.test/v1"},
		{name: "bad scheme", baseURL: "ftp://api.example.test", wantErr: true},
		{name: "missing host", baseURL: "http://", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client, err := New(Config{BaseURL: tc.baseURL})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("New() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := client.BaseURL(); got != tc.want {
				t.Fatalf("BaseURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCreateQuotePostsJSON(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/quote" {
			t.Errorf("request = %s %s, want POST /api/quote", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"id": 42, "total": 30.99}`)
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL, nil)
	quote, err := client.CreateQuote(context.Background(), QuoteRequest{
		Name:         "Ada",
		Email:        "ada@example.com",
		Address:      "1 Main St",
		ZipCode:      "12345",
		LawnSizeSqft: 1000,
		Frequency:    "weekly",
		Extras:       []string{"edging"},
	})
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}
	if quote.ID != "42" || quote.Total != 30.99 {
		t.Fatalf("quote = %+v, want id 42 total 30.99", quote)
	}
	for key, want := range map[string]any{
		"name":           "Ada",
		"zip_code":       "12345",
		"lawn_size_sqft": float64(1000),
		"frequency":      "weekly",
	} {
		if gotBody[key] != want {
			t.Fatalf("body[%s] = %v, want %v", key, gotBody[key], want)
		}
	}
	extras, ok := gotBody["extras"].([]any)
	if !ok || len(extras) != 1 || extras[0] != "edging" {
		t.Fatalf("body[extras] = %v", gotBody["extras"])
	}
}

func TestCreateBookingEncodesNullsAndEmptyExtras(t *testing.T) {
	t.Parallel()

	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/book" {
			t.Errorf("path = %q, want /api/book", r.URL.Path)
		}
		raw, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{"id": "bk_7", "email": "ada@example.com"}`)
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL, nil)
	booking, err := client.CreateBooking(context.Background(), BookingRequest{
		Name:          "Ada",
		Email:         "ada@example.com",
		Phone:         "555-0100",
		Address:       "1 Main St",
		ZipCode:       "12345",
		LawnSizeSqft:  1000,
		Frequency:     "weekly",
		Notes:         OptionalString("   "),
		PreferredDate: OptionalString("2026-04-01"),
		PriceTotal:    30.99,
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if booking.ID != "bk_7" || booking.Email != "ada@example.com" {
		t.Fatalf("booking = %+v", booking)
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"quote_id", "notes"} {
		value, present := body[key]
		if !present || value != nil {
			t.Fatalf("body[%s] = %v (present %v), want null", key, value, present)
		}
	}
	if body["preferred_date"] != "2026-04-01" {
		t.Fatalf("body[preferred_date] = %v", body["preferred_date"])
	}
	if extras, ok := body["extras"].([]any); !ok || len(extras) != 0 {
		t.Fatalf("body[extras] = %#v, want []", body["extras"])
	}
	if body["price_total"] != 30.99 {
		t.Fatalf("body[price_total] = %v, want 30.99", body["price_total"])
	}
}

func TestCreateBookingSendsQuoteID(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"id": 9, "email": "ada@example.com"}`)
	}))
	t.Cleanup(srv.Close)

	quoteID := "q-1"
	if _, err := newTestClient(t, srv.URL, nil).CreateBooking(context.Background(), BookingRequest{QuoteID: &quoteID}); err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if body["quote_id"] != "q-1" {
		t.Fatalf("body[quote_id] = %v, want q-1", body["quote_id"])
	}
}

func TestCreateQuoteFailuresCollapseToGenericError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		cause   string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "database on fire", http.StatusInternalServerError)
			},
			cause: "unexpected status 500",
		},
		{
			name: "validation error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = io.WriteString(w, `{"detail":"bad zip"}`)
			},
			cause: "unexpected status 422",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `not json`)
			},
			cause: "decode response",
		},
		{
			name: "missing id",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"total": 30.99}`)
			},
			cause: "missing id",
		},
		{
			name: "boolean id",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"id": true, "total": 30.99}`)
			},
			cause: "decode response",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tc.handler)
			t.Cleanup(srv.Close)

			var logs bytes.Buffer
			client := newTestClient(t, srv.URL, log.New(&logs, "", 0))
			_, err := client.CreateQuote(context.Background(), QuoteRequest{})
			assertGenericError(t, err, "Failed to create quote", "quote.error.failed")
			if !strings.Contains(logs.String(), tc.cause) {
				t.Fatalf("log = %q, want cause %q", logs.String(), tc.cause)
			}
			if strings.Contains(err.Error(), tc.cause) {
				t.Fatalf("error %q leaks cause", err.Error())
			}
		})
	}
}

func TestCreateBookingUnreachableBackend(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := newTestClient(t, url, log.New(io.Discard, "", 0))
	_, err := client.CreateBooking(context.Background(), BookingRequest{})
	assertGenericError(t, err, "Failed to create booking", "book.error.failed")
}

func TestCreateQuoteAppliesTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	started := time.Now()
	_, err = client.CreateQuote(context.Background(), QuoteRequest{})
	assertGenericError(t, err, "Failed to create quote", "quote.error.failed")
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Fatalf("elapsed = %v, want timeout to cut the call short", elapsed)
	}
}

func TestCreateQuoteInjectsTraceContext(t *testing.T) {
	t.Parallel()

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		_, _ = io.WriteString(w, `{"id": "q-1", "total": 30.99}`)
	}))
	t.Cleanup(srv.Close)

	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	client, err := New(Config{
		BaseURL:        srv.URL,
		TracerProvider: provider,
		Propagator:     propagation.TraceContext{},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, parent := provider.Tracer("test").Start(context.Background(), "parent")
	defer parent.End()
	if _, err := client.CreateQuote(ctx, QuoteRequest{}); err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}
	traceID := parent.SpanContext().TraceID().String()
	if !strings.Contains(traceparent, traceID) {
		t.Fatalf("traceparent = %q, want trace id %s", traceparent, traceID)
	}
	if parentSpanID := trace.SpanContextFromContext(ctx).SpanID().String(); strings.Contains(traceparent, parentSpanID) {
		t.Fatalf("traceparent = %q, want client span id rather than parent", traceparent)
	}
}

func TestIDUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ID
		wantErr bool
	}{
		{input: `"abc"`, want: "abc"},
		{input: `" abc "`, want: "abc"},
		{input: `123`, want: "123"},
		{input: `1.5e3`, want: "1.5e3"},
		{input: `null`, want: ""},
		{input: `true`, wantErr: true},
		{input: `{}`, wantErr: true},
	}
	for _, tc := range tests {
		var id ID
		err := json.Unmarshal([]byte(tc.input), &id)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Unmarshal(%s) error = nil, want error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tc.input, err)
		}
		if id != tc.want {
			t.Fatalf("Unmarshal(%s) = %q, want %q", tc.input, id, tc.want)
		}
	}
}

func TestOptionalString(t *testing.T) {
	t.Parallel()

	if OptionalString("  ") != nil {
		t.Fatal("OptionalString(blank) != nil")
	}
	if got := OptionalString(" note "); got == nil || *got != "note" {
		t.Fatalf("OptionalString() = %v, want note", got)
	}
}

func newTestClient(t *testing.T, baseURL string, logger *log.Logger) *Client {
	t.Helper()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	client, err := New(Config{BaseURL: baseURL, Logger: logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func assertGenericError(t *testing.T, err error, message string, key string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want %q", message)
	}
	if err.Error() != message {
		t.Fatalf("error = %q, want %q", err.Error(), message)
	}
	if got := apperrors.LocalizationKey(err); got != key {
		t.Fatalf("LocalizationKey() = %q, want %q", got, key)
	}
	if got := apperrors.KindOf(err); got != apperrors.KindUpstream {
		t.Fatalf("KindOf() = %q, want %q", got, apperrors.KindUpstream)
	}
}
