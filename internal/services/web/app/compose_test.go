package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/greenblade/lawncare/internal/services/web/handoff"
	module "github.com/greenblade/lawncare/internal/services/web/module"
	"github.com/greenblade/lawncare/internal/services/web/platform/requestmeta"
)

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/one/", Handler: statusHandler(http.StatusOK)}},
			stubModule{id: "two", mount: module.Mount{Prefix: "/one/", Handler: statusHandler(http.StatusOK)}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
	if got := err.Error(); !strings.Contains(got, `"two"`) || !strings.Contains(got, `"one"`) {
		t.Fatalf("unexpected error = %q", got)
	}
}

func TestComposeRejectsInvalidModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "empty", prefix: ""},
		{name: "missing leading slash", prefix: "quote/"},
		{name: "missing trailing slash", prefix: "/quote"},
		{name: "contains surrounding whitespace", prefix: "/quote/ "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{
				Modules: []module.Module{
					stubModule{id: "bad", mount: module.Mount{Prefix: tc.prefix, Handler: statusHandler(http.StatusOK)}},
				},
			})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsNilModule(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil module error")
	}
}

func TestComposeRejectsMissingHandler(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "quote", mount: module.Mount{Prefix: "/quote/"}}}})
	if err == nil || !strings.Contains(err.Error(), "handler is required") {
		t.Fatalf("err = %v, want handler error", err)
	}
}

func TestComposeRejectsStaticPrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "assets", mount: module.Mount{Prefix: "/static/", Handler: statusHandler(http.StatusOK)}}}})
	if err == nil {
		t.Fatal("expected static prefix error")
	}
}

func TestComposeWrapsMountError(t *testing.T) {
	t.Parallel()

	cause := errors.New("gateway missing")
	_, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "quote", err: cause}}})
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped %v", err, cause)
	}
}

func TestComposeRoutesSlashlessPathsToModule(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "public", mount: module.Mount{Prefix: "/", Handler: statusHandler(http.StatusNotFound)}},
			stubModule{id: "quote", mount: module.Mount{Prefix: "/quote/", Handler: statusHandler(http.StatusNoContent)}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for path, want := range map[string]int{
		"/quote":         http.StatusNoContent,
		"/quote/":        http.StatusNoContent,
		"/quote/preview": http.StatusNoContent,
		"/quotes":        http.StatusNotFound,
		"/":              http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != want {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, want)
		}
	}
}

func TestComposeRejectsHandoffMutationWithoutSameOriginProof(t *testing.T) {
	t.Parallel()

	h := composeBooking(t, requestmeta.SchemePolicy{})
	req := httptest.NewRequest(http.MethodPost, "/book", nil)
	req.AddCookie(&http.Cookie{Name: handoff.CookieName, Value: "token"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestComposeAllowsMutationWithoutHandoffCookie(t *testing.T) {
	t.Parallel()

	h := composeBooking(t, requestmeta.SchemePolicy{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/book", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeAllowsHandoffReadsWithoutOrigin(t *testing.T) {
	t.Parallel()

	h := composeBooking(t, requestmeta.SchemePolicy{})
	req := httptest.NewRequest(http.MethodGet, "/book", nil)
	req.AddCookie(&http.Cookie{Name: handoff.CookieName, Value: "token"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeHandoffMutationOriginChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		host   string
		origin string
		proto  string
		policy requestmeta.SchemePolicy
		want   int
	}{
		{name: "same origin", target: "https://lawn.example.test/book", host: "lawn.example.test", origin: "https://lawn.example.test", want: http.StatusNoContent},
		{name: "scheme differs", target: "https://lawn.example.test/book", host: "lawn.example.test", origin: "http://lawn.example.test", want: http.StatusForbidden},
		{name: "other site", target: "https://lawn.example.test/book", host: "lawn.example.test", origin: "https://evil.example.test", want: http.StatusForbidden},
		{name: "forwarded proto untrusted", target: "http://lawn.example.test/book", host: "lawn.example.test", origin: "https://lawn.example.test", proto: "https", want: http.StatusForbidden},
		{name: "forwarded proto trusted", target: "http://lawn.example.test/book", host: "lawn.example.test", origin: "https://lawn.example.test", proto: "https", policy: requestmeta.SchemePolicy{TrustForwardedProto: true}, want: http.StatusNoContent},
		{name: "origin omits non default port", target: "https://lawn.example.test:8443/book", host: "lawn.example.test:8443", origin: "https://lawn.example.test", want: http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := composeBooking(t, tc.policy)
			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			req.Host = tc.host
			req.Header.Set("Origin", tc.origin)
			if tc.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tc.proto)
			}
			req.AddCookie(&http.Cookie{Name: handoff.CookieName, Value: "token"})
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func composeBooking(t *testing.T, policy requestmeta.SchemePolicy) http.Handler {
	t.Helper()
	h, err := Compose(ComposeInput{
		RequestSchemePolicy: policy,
		Modules: []module.Module{
			stubModule{id: "booking", mount: module.Mount{Prefix: "/book/", Handler: statusHandler(http.StatusNoContent)}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return h
}

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (s stubModule) ID() string {
	return s.id
}

func (s stubModule) Mount() (module.Mount, error) {
	return s.mount, s.err
}
