package quote

import (
	"net/http"

	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Quote, h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.Quote, h.handleSave)
	mux.HandleFunc(routepath.Quote, httpx.MethodNotAllowed("GET, HEAD, POST"))
	mux.HandleFunc(http.MethodPost+" "+routepath.QuotePreview, h.handlePreview)
	mux.HandleFunc(routepath.QuotePreview, httpx.MethodNotAllowed("POST"))
	mux.HandleFunc(http.MethodPost+" "+routepath.QuoteExtras, h.handleToggleExtra)
	mux.HandleFunc(routepath.QuoteExtras, httpx.MethodNotAllowed("POST"))
	mux.HandleFunc(routepath.QuotePrefix+"{rest...}", h.handleNotFound)
}
