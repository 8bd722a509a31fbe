package quote

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, handlers{})
}

func TestRegisterRoutesMethodContract(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, &fakeGateway{}, &fakeHandoff{})
	tests := []struct {
		method string
		path   string
		status int
		allow  string
	}{
		{method: http.MethodGet, path: routepath.Quote, status: http.StatusOK},
		{method: http.MethodHead, path: routepath.Quote, status: http.StatusOK},
		{method: http.MethodPut, path: routepath.Quote, status: http.StatusMethodNotAllowed, allow: "GET, HEAD, POST"},
		{method: http.MethodGet, path: routepath.QuotePreview, status: http.StatusMethodNotAllowed, allow: "POST"},
		{method: http.MethodGet, path: routepath.QuoteExtras, status: http.StatusMethodNotAllowed, allow: "POST"},
		{method: http.MethodGet, path: routepath.QuotePrefix + "unknown", status: http.StatusNotFound},
		{method: http.MethodGet, path: routepath.QuotePrefix, status: http.StatusNotFound},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s %s status = %d, want %d", tc.method, tc.path, rr.Code, tc.status)
		}
		if tc.allow != "" && rr.Header().Get("Allow") != tc.allow {
			t.Fatalf("%s %s Allow = %q, want %q", tc.method, tc.path, rr.Header().Get("Allow"), tc.allow)
		}
	}
}

func TestRegisterRoutesNotFoundUsesErrorPage(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, &fakeGateway{}, &fakeHandoff{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.QuotePrefix+"nope", nil))
	if !strings.Contains(rr.Body.String(), "Page not found") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
