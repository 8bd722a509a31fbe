package booking

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/greenblade/lawncare/internal/services/web/backend"
	"github.com/greenblade/lawncare/internal/services/web/forms"
	"github.com/greenblade/lawncare/internal/services/web/handoff"
	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
)

// Gateway creates bookings with the backend.
type Gateway interface {
	CreateBooking(ctx context.Context, req backend.BookingRequest) (backend.Booking, error)
}

// Handoff reads and clears the quote carried over from the quote screen.
type Handoff interface {
	Load(ctx context.Context, r *http.Request) (handoff.Quote, bool)
	Discard(ctx context.Context, w http.ResponseWriter, r *http.Request)
}

type service struct {
	gateway Gateway
	handoff Handoff
	logger  *log.Logger
}

func newService(gateway Gateway, handoff Handoff, logger *log.Logger) (service, error) {
	if gateway == nil {
		return service{}, errors.New("booking gateway is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return service{gateway: gateway, handoff: handoff, logger: logger}, nil
}

// handedOffQuote returns the verified quote saved on the quote screen, if any.
func (s service) handedOffQuote(ctx context.Context, r *http.Request) (handoff.Quote, bool) {
	if s.handoff == nil {
		return handoff.Quote{}, false
	}
	return s.handoff.Load(ctx, r)
}

// createBooking sends the booking. The quote id comes from the handoff and is
// never read from the posted form.
func (s service) createBooking(ctx context.Context, w http.ResponseWriter, r *http.Request, form forms.BookingForm, quoteID string) (backend.Booking, error) {
	booking, err := s.gateway.CreateBooking(ctx, bookingRequest(form, quoteID))
	if err != nil {
		if apperrors.LocalizationKey(err) == "" {
			s.logger.Printf("booking create failed err=%v", err)
			return backend.Booking{}, backend.ErrCreateBooking
		}
		return backend.Booking{}, err
	}
	if s.handoff != nil {
		s.handoff.Discard(ctx, w, r)
	}
	return booking, nil
}

func bookingRequest(form forms.BookingForm, quoteID string) backend.BookingRequest {
	extras := make([]string, 0, len(form.Extras))
	for _, extra := range form.Extras {
		extras = append(extras, string(extra))
	}
	return backend.BookingRequest{
		QuoteID:       backend.OptionalString(quoteID),
		Name:          form.Name,
		Email:         form.Email,
		Phone:         form.Phone,
		Address:       form.Address,
		ZipCode:       form.ZipCode,
		LawnSizeSqft:  form.LawnSizeSqft,
		Frequency:     string(form.Frequency),
		Extras:        extras,
		Notes:         backend.OptionalString(form.Notes),
		PreferredDate: backend.OptionalString(form.PreferredDate),
		PriceTotal:    form.PriceTotal,
	}
}
