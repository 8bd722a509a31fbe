package quote

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

// Gateway saves quotes with the booking backend.
type Gateway interface {
	CreateQuote(ctx context.Context, req backend.QuoteRequest) (backend.Quote, error)
}

// Handoff carries a saved quote to the booking screen.
type Handoff interface {
	Save(ctx context.Context, w http.ResponseWriter, r *http.Request, quote handoff.Quote) error
}

type service struct {
	gateway Gateway
	handoff Handoff
	logger  *log.Logger
}

func newService(gateway Gateway, handoff Handoff, logger *log.Logger) (service, error) {
	if gateway == nil {
		return service{}, errors.New("quote gateway is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return service{gateway: gateway, handoff: handoff, logger: logger}, nil
}

// saveQuote creates the quote and stores the handoff. Untyped gateway errors
// surface as ErrCreateQuote. A failed handoff is logged and does not fail the
// quote.
func (s service) saveQuote(ctx context.Context, w http.ResponseWriter, r *http.Request, form forms.QuoteForm) (backend.Quote, error) {
	quote, err := s.gateway.CreateQuote(ctx, quoteRequest(form))
	if err != nil {
		if apperrors.LocalizationKey(err) == "" {
			s.logger.Printf("quote create failed err=%v", err)
			return backend.Quote{}, backend.ErrCreateQuote
		}
		return backend.Quote{}, err
	}
	if s.handoff == nil {
		return quote, nil
	}
	if err := s.handoff.Save(ctx, w, r, handoff.Quote{
		Form:       form,
		QuoteID:    quote.ID.String(),
		QuoteTotal: quote.Total,
	}); err != nil {
		s.logger.Printf("quote handoff failed quote_id=%s err=%v", quote.ID, err)
	}
	return quote, nil
}

func quoteRequest(form forms.QuoteForm) backend.QuoteRequest {
	extras := make([]string, 0, len(form.Extras))
	for _, extra := range form.Extras {
		extras = append(extras, string(extra))
	}
	return backend.QuoteRequest{
		Name:         form.Name,
		Email:        form.Email,
		Address:      form.Address,
		ZipCode:      form.ZipCode,
		LawnSizeSqft: form.LawnSizeSqft,
		Frequency:    string(form.Frequency),
		Extras:       extras,
	}
}
