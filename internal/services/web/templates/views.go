package templates

import (
	"github.com/greenblade/lawncare/internal/services/web/forms"
	"github.com/greenblade/lawncare/internal/services/web/pricing"
)

// QuoteView is the state of the quote screen.
type QuoteView struct {
	Form         forms.QuoteForm
	Breakdown    pricing.Breakdown
	Errors       forms.FieldErrors
	ErrorMessage string
	SavedQuoteID string
}

// NewQuoteView prices form and returns a view without errors.
func NewQuoteView(form forms.QuoteForm) QuoteView {
	return QuoteView{Form: form, Breakdown: form.Preview()}
}

// BookingView is the state of the booking screen.
type BookingView struct {
	Form         forms.BookingForm
	HasQuote     bool
	QuoteTotal   float64
	Errors       forms.FieldErrors
	ErrorMessage string
}

// ConfirmationView is shown after a booking is created.
type ConfirmationView struct {
	BookingID string
	Email     string
}

func frequencyLabel(loc Localizer, frequency pricing.Frequency) string {
	return T(loc, "frequency."+string(frequency))
}

// extraLabel renders "<label> (+$<price>)".
func extraLabel(loc Localizer, extra pricing.Extra) string {
	return T(loc, "quote.extra_option", T(loc, "extra."+string(extra)), int(extra.Price()))
}
