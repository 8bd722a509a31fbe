package booking

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/greenblade/lawncare/internal/services/web/backend"
	"github.com/greenblade/lawncare/internal/services/web/forms"
	"github.com/greenblade/lawncare/internal/services/web/handoff"
	"github.com/greenblade/lawncare/internal/services/web/platform/publichandler"
	"github.com/greenblade/lawncare/internal/services/web/pricing"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

type fakeGateway struct {
	mu       sync.Mutex
	booking  backend.Booking
	err      error
	requests []backend.BookingRequest
}

func (f *fakeGateway) CreateBooking(_ context.Context, req backend.BookingRequest) (backend.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return backend.Booking{}, f.err
	}
	return f.booking, nil
}

type fakeHandoff struct {
	mu        sync.Mutex
	quote     handoff.Quote
	ok        bool
	discarded int
}

func (f *fakeHandoff) Load(context.Context, *http.Request) (handoff.Quote, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quote, f.ok
}

func (f *fakeHandoff) Discard(context.Context, http.ResponseWriter, *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discarded++
}

func savedQuote() *fakeHandoff {
	return &fakeHandoff{
		ok: true,
		quote: handoff.Quote{
			QuoteID:    "q-1",
			QuoteTotal: 61.24,
			Form: forms.QuoteForm{
				Name:         "Ada Lovelace",
				Email:        "ada@example.com",
				Address:      "1 Main St",
				ZipCode:      "12345",
				LawnSizeSqft: 2500,
				Frequency:    pricing.FrequencyBiweekly,
				Extras:       []pricing.Extra{pricing.ExtraPetWaste, pricing.ExtraEdging},
			},
		},
	}
}

func newTestMux(t *testing.T, gateway Gateway, handoff Handoff) *http.ServeMux {
	t.Helper()
	return newTestMuxWithLogger(t, gateway, handoff, log.New(io.Discard, "", 0))
}

func newTestMuxWithLogger(t *testing.T, gateway Gateway, handoff Handoff, logger *log.Logger) *http.ServeMux {
	t.Helper()
	svc, err := newService(gateway, handoff, logger)
	if err != nil {
		t.Fatalf("newService() error = %v", err)
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(svc, publichandler.NewBase(publichandler.WithLogger(logger))))
	return mux
}

func postBooking(mux http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, routepath.Book, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func validBookingValues() url.Values {
	return url.Values{
		"name":           {"Ada Lovelace"},
		"email":          {"ada@example.com"},
		"phone":          {"555-0100"},
		"address":        {"1 Main St"},
		"zip_code":       {"12345"},
		"lawn_size_sqft": {"2500"},
		"frequency":      {"biweekly"},
		"extras":         {"pet_waste", "edging"},
		"preferred_date": {"2026-11-02"},
		"price_total":    {"61.24"},
	}
}

func TestIndexWithoutHandoffUsesDefaults(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestMux(t, &fakeGateway{}, &fakeHandoff{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Book, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if strings.Contains(body, "Quote Total") {
		t.Fatal("default booking must not show a quote total")
	}
	for _, marker := range []string{
		"<title>Book Your Service | GreenBlade Lawn Care</title>",
		`name="lawn_size_sqft" value="1000"`,
		`name="frequency" value="weekly"`,
		`name="price_total" value="0.00"`,
		`href="/quote"`,
		"Confirm Booking",
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("booking page missing %q", marker)
		}
	}
}

func TestIndexPrefillsFromHandoff(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestMux(t, &fakeGateway{}, savedQuote()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Book, nil))
	body := rr.Body.String()
	for _, marker := range []string{
		"Quote Total: $61.24",
		"Includes base, extras and fees",
		`name="name" value="Ada Lovelace"`,
		`name="lawn_size_sqft" value="2500"`,
		`name="frequency" value="biweekly"`,
		`name="price_total" value="61.24"`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("prefilled booking missing %q", marker)
		}
	}
	first := strings.Index(body, `name="extras" value="pet_waste"`)
	second := strings.Index(body, `name="extras" value="edging"`)
	if first < 0 || second < first {
		t.Fatalf("extras lost toggle order: %q", body)
	}
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	values := validBookingValues()
	values.Del("phone")
	values.Set("preferred_date", "next tuesday")
	rr := postBooking(newTestMux(t, gateway, nil), values)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	for _, marker := range []string{"Phone is required.", "Preferred date must use YYYY-MM-DD.", `value="Ada Lovelace"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("invalid booking missing %q", marker)
		}
	}
	if len(gateway.requests) != 0 {
		t.Fatal("gateway called for invalid form")
	}
}

func TestCreateSendsHandoffQuoteID(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{booking: backend.Booking{ID: "b-9", Email: "ada@example.com"}}
	carry := savedQuote()
	values := validBookingValues()
	values.Set("quote_id", "forged")
	rr := postBooking(newTestMux(t, gateway, carry), values)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	if len(gateway.requests) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(gateway.requests))
	}
	req := gateway.requests[0]
	if req.QuoteID == nil || *req.QuoteID != "q-1" {
		t.Fatalf("quote id = %v, want q-1", req.QuoteID)
	}
	if req.Phone != "555-0100" || req.LawnSizeSqft != 2500 || req.Frequency != "biweekly" {
		t.Fatalf("request = %+v", req)
	}
	if strings.Join(req.Extras, ",") != "pet_waste,edging" {
		t.Fatalf("extras = %v", req.Extras)
	}
	if req.Notes != nil {
		t.Fatalf("notes = %q, want nil", *req.Notes)
	}
	if req.PreferredDate == nil || *req.PreferredDate != "2026-11-02" {
		t.Fatalf("preferred date = %v", req.PreferredDate)
	}
	if req.PriceTotal != 61.24 {
		t.Fatalf("price total = %v", req.PriceTotal)
	}
	if carry.discarded != 1 {
		t.Fatalf("discarded = %d, want 1", carry.discarded)
	}

	body := rr.Body.String()
	for _, marker := range []string{
		"Booking Confirmed!",
		"We emailed a confirmation to ada@example.com.",
		"Booking ID: <strong>b-9</strong>",
		`<a class="btn" href="/">Go Home</a>`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("confirmation missing %q", marker)
		}
	}
}

func TestCreateWithoutHandoffSendsNullQuote(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{booking: backend.Booking{ID: "7"}}
	values := validBookingValues()
	values.Set("notes", "  gate code 42 ")
	values.Set("price_total", "")
	values.Set("preferred_date", "")
	rr := postBooking(newTestMux(t, gateway, &fakeHandoff{}), values)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	req := gateway.requests[0]
	if req.QuoteID != nil {
		t.Fatalf("quote id = %q, want nil", *req.QuoteID)
	}
	if req.Notes == nil || *req.Notes != "gate code 42" {
		t.Fatalf("notes = %v", req.Notes)
	}
	if req.PreferredDate != nil {
		t.Fatalf("preferred date = %q, want nil", *req.PreferredDate)
	}
	if req.PriceTotal != 0 {
		t.Fatalf("price total = %v, want 0", req.PriceTotal)
	}
	if !strings.Contains(rr.Body.String(), "We emailed a confirmation to ada@example.com.") {
		t.Fatal("confirmation must fall back to the form email")
	}
}

func TestCreateBackendFailureKeepsForm(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{err: backend.ErrCreateBooking}
	carry := savedQuote()
	rr := postBooking(newTestMux(t, gateway, carry), validBookingValues())
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		`<p class="form-error" role="alert">Failed to create booking</p>`,
		`name="phone" value="555-0100"`,
		"Quote Total: $61.24",
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("failed booking missing %q", marker)
		}
	}
	if carry.discarded != 0 {
		t.Fatal("handoff discarded after a failed booking")
	}
}

func TestCreateUntypedFailureStaysGeneric(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	gateway := &fakeGateway{err: errors.New("context deadline exceeded")}
	rr := postBooking(newTestMuxWithLogger(t, gateway, nil, log.New(&logs, "", 0)), validBookingValues())
	body := rr.Body.String()
	if !strings.Contains(body, "Failed to create booking") || strings.Contains(body, "deadline") {
		t.Fatalf("body = %q", body)
	}
	if !strings.Contains(logs.String(), "booking create failed err=context deadline exceeded") {
		t.Fatalf("logs = %q", logs.String())
	}
}
