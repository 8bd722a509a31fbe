// Package quote serves the quote calculator: the live price preview, the
// extras toggles and saving a quote with the backend.
package quote

import (
	"log"
	"net/http"

	module "github.com/greenblade/lawncare/internal/services/web/module"
	"github.com/greenblade/lawncare/internal/services/web/platform/publichandler"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

// Module provides the quote routes.
type Module struct {
	gateway Gateway
	handoff Handoff
	logger  *log.Logger
}

// New returns a quote module backed by gateway. A nil handoff disables the
// quote to booking carry-over.
func New(gateway Gateway, handoff Handoff, logger *log.Logger) Module {
	return Module{gateway: gateway, handoff: handoff, logger: logger}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "quote"
}

// Mount wires quote routes under the quote prefix.
func (m Module) Mount() (module.Mount, error) {
	base := publichandler.NewBase(publichandler.WithLogger(m.logger))
	svc, err := newService(m.gateway, m.handoff, base.Logger())
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(svc, base))
	return module.Mount{Prefix: routepath.QuotePrefix, Handler: mux}, nil
}
