package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	module "github.com/greenblade/lawncare/internal/services/web/module"
)

func TestBuildRootHandlerRequiresModules(t *testing.T) {
	t.Parallel()

	if _, err := BuildRootHandler(Config{}); err == nil {
		t.Fatal("expected missing modules error")
	}
}

func TestBuildRootHandlerMountsModules(t *testing.T) {
	t.Parallel()

	h, err := BuildRootHandler(Config{Modules: []module.Module{
		stubModule{id: "public", mount: module.Mount{Prefix: "/", Handler: statusHandler(http.StatusOK)}},
		stubModule{id: "booking", mount: module.Mount{Prefix: "/book/", Handler: statusHandler(http.StatusAccepted)}},
	}})
	if err != nil {
		t.Fatalf("BuildRootHandler() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/book", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
}
