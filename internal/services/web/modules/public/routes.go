package public

import (
	"net/http"

	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleLanding)
	mux.HandleFunc(routepath.Root+"{$}", httpx.MethodNotAllowed("GET, HEAD"))
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Health, httpx.MethodNotAllowed("GET, HEAD"))
	mux.HandleFunc(routepath.Root+"{rest...}", h.handleNotFound)
}
