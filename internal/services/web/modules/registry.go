package modules

import (
	"github.com/greenblade/lawncare/internal/services/web/modules/booking"
	"github.com/greenblade/lawncare/internal/services/web/modules/public"
	"github.com/greenblade/lawncare/internal/services/web/modules/quote"
)

// DefaultModules returns the site modules in mount order.
func DefaultModules(deps Dependencies) []Module {
	return []Module{
		public.New(deps.Logger),
		quote.New(deps.QuoteGateway, deps.QuoteHandoff, deps.Logger),
		booking.New(deps.BookingGateway, deps.BookingHandoff, deps.Logger),
	}
}
