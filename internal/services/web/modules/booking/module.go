// Package booking serves the booking screen and forwards confirmed bookings
// to the backend.
package booking

import (
	"log"
	"net/http"

	module "github.com/greenblade/lawncare/internal/services/web/module"
	"github.com/greenblade/lawncare/internal/services/web/platform/publichandler"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

// Module provides the booking routes.
type Module struct {
	gateway Gateway
	handoff Handoff
	logger  *log.Logger
}

// New returns a booking module backed by gateway. A nil handoff starts every
// booking from the default form.
func New(gateway Gateway, handoff Handoff, logger *log.Logger) Module {
	return Module{gateway: gateway, handoff: handoff, logger: logger}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "booking"
}

// Mount wires booking routes under the booking prefix.
func (m Module) Mount() (module.Mount, error) {
	base := publichandler.NewBase(publichandler.WithLogger(m.logger))
	svc, err := newService(m.gateway, m.handoff, base.Logger())
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(svc, base))
	return module.Mount{Prefix: routepath.BookPrefix, Handler: mux}, nil
}
