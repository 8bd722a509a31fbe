package booking

import (
	"net/http"

	"github.com/greenblade/lawncare/internal/services/web/forms"
	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
	webi18n "github.com/greenblade/lawncare/internal/services/web/platform/i18n"
	"github.com/greenblade/lawncare/internal/services/web/platform/publichandler"
	webtemplates "github.com/greenblade/lawncare/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
	service service
}

func newHandlers(s service, base publichandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := webtemplates.BookingView{Form: forms.NewBookingForm(forms.DefaultQuoteForm(), 0)}
	if quote, ok := h.service.handedOffQuote(r.Context(), r); ok {
		view.Form = forms.NewBookingForm(quote.Form, quote.QuoteTotal)
		view.HasQuote = true
		view.QuoteTotal = quote.QuoteTotal
	}
	h.writeBookingPage(w, r, http.StatusOK, view)
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form body"))
		return
	}
	form := forms.ParseBookingForm(r.PostForm)
	view := webtemplates.BookingView{Form: form}
	quote, hasQuote := h.service.handedOffQuote(r.Context(), r)
	if hasQuote {
		view.HasQuote = true
		view.QuoteTotal = quote.QuoteTotal
	}
	if errs := form.Validate(); !errs.Empty() {
		view.Errors = errs
		h.writeBookingPage(w, r, http.StatusBadRequest, view)
		return
	}
	booking, err := h.service.createBooking(r.Context(), w, r, form, quote.QuoteID)
	if err != nil {
		loc, _ := h.Localize(w, r)
		view.ErrorMessage = webi18n.LocalizeError(loc, err)
		h.writeBookingPage(w, r, apperrors.HTTPStatus(err), view)
		return
	}
	email := booking.Email
	if email == "" {
		email = form.Email
	}
	loc, lang := h.Localize(w, r)
	h.WritePage(w, r, loc, lang, webtemplates.T(loc, "book.page_title"), http.StatusOK, webtemplates.BookingConfirmation(loc, webtemplates.ConfirmationView{
		BookingID: booking.ID.String(),
		Email:     email,
	}))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) writeBookingPage(w http.ResponseWriter, r *http.Request, statusCode int, view webtemplates.BookingView) {
	loc, lang := h.Localize(w, r)
	h.WritePage(w, r, loc, lang, webtemplates.T(loc, "book.page_title"), statusCode, webtemplates.BookingPage(loc, view))
}
