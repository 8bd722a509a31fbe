// Package modules defines web module registry helpers.
package modules

import (
	"log"

	module "github.com/greenblade/lawncare/internal/services/web/module"
	"github.com/greenblade/lawncare/internal/services/web/modules/booking"
	"github.com/greenblade/lawncare/internal/services/web/modules/quote"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the backend gateways and handoff store required to
// compose the web module registry. Each field is typed as the narrow
// interface defined by the consuming module.
type Dependencies struct {
	// Quote module collaborators.
	QuoteGateway quote.Gateway
	QuoteHandoff quote.Handoff

	// Booking module collaborators.
	BookingGateway booking.Gateway
	BookingHandoff booking.Handoff

	Logger *log.Logger
}
