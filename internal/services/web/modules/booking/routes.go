package booking

import (
	"net/http"

	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Book, h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.Book, h.handleCreate)
	mux.HandleFunc(routepath.Book, httpx.MethodNotAllowed("GET, HEAD, POST"))
	mux.HandleFunc(routepath.BookPrefix+"{rest...}", h.handleNotFound)
}
