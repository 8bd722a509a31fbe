// Package public serves the landing page, the health check and the
// not-found fallback for every unmatched path.
package public

import (
	"log"
	"net/http"
	"strings"

	module "github.com/greenblade/lawncare/internal/services/web/module"
	"github.com/greenblade/lawncare/internal/services/web/platform/publichandler"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

// Module provides the root routes.
type Module struct {
	logger *log.Logger
	prefix string
}

// New returns the public module.
func New(logger *log.Logger) Module {
	return Module{logger: logger, prefix: routepath.Root}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "public"
}

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(), publichandler.NewBase(publichandler.WithLogger(m.logger))))
	prefix := strings.TrimSpace(m.prefix)
	if prefix == "" {
		prefix = routepath.Root
	}
	return module.Mount{Prefix: prefix, Handler: mux}, nil
}
