package booking

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, handlers{})
}

func TestRegisterRoutesMethodContract(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, &fakeGateway{}, nil)
	tests := []struct {
		method string
		path   string
		status int
		allow  string
	}{
		{method: http.MethodGet, path: routepath.Book, status: http.StatusOK},
		{method: http.MethodHead, path: routepath.Book, status: http.StatusOK},
		{method: http.MethodDelete, path: routepath.Book, status: http.StatusMethodNotAllowed, allow: "GET, HEAD, POST"},
		{method: http.MethodGet, path: routepath.BookPrefix + "confirm", status: http.StatusNotFound},
		{method: http.MethodPost, path: routepath.BookPrefix + "confirm", status: http.StatusNotFound},
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
