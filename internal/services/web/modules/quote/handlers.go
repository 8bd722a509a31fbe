package quote

import (
	"net/http"

	"github.com/greenblade/lawncare/internal/services/web/forms"
	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
	webi18n "github.com/greenblade/lawncare/internal/services/web/platform/i18n"
	"github.com/greenblade/lawncare/internal/services/web/platform/publichandler"
	"github.com/greenblade/lawncare/internal/services/web/pricing"
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
	h.writeQuotePage(w, r, http.StatusOK, webtemplates.NewQuoteView(forms.DefaultQuoteForm()))
}

func (h handlers) handlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form body"))
		return
	}
	loc, _ := h.Localize(w, r)
	form := forms.ParseQuoteForm(r.PostForm)
	h.WriteFragment(w, r, http.StatusOK, webtemplates.PriceBreakdown(loc, form.Preview()))
}

func (h handlers) handleToggleExtra(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form body"))
		return
	}
	form := forms.ParseQuoteForm(r.PostForm)
	form.ToggleExtra(pricing.Extra(r.PostForm.Get(forms.FieldToggle)))
	view := webtemplates.NewQuoteView(form)
	if httpx.IsHTMXRequest(r) {
		loc, _ := h.Localize(w, r)
		h.WriteFragment(w, r, http.StatusOK, webtemplates.QuoteFormBody(loc, view))
		return
	}
	h.writeQuotePage(w, r, http.StatusOK, view)
}

func (h handlers) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form body"))
		return
	}
	form := forms.ParseQuoteForm(r.PostForm)
	view := webtemplates.NewQuoteView(form)
	if errs := form.Validate(); !errs.Empty() {
		view.Errors = errs
		h.writeQuotePage(w, r, http.StatusBadRequest, view)
		return
	}
	quote, err := h.service.saveQuote(r.Context(), w, r, form)
	if err != nil {
		loc, _ := h.Localize(w, r)
		view.ErrorMessage = webi18n.LocalizeError(loc, err)
		h.writeQuotePage(w, r, apperrors.HTTPStatus(err), view)
		return
	}
	view.SavedQuoteID = quote.ID.String()
	h.writeQuotePage(w, r, http.StatusOK, view)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) writeQuotePage(w http.ResponseWriter, r *http.Request, statusCode int, view webtemplates.QuoteView) {
	loc, lang := h.Localize(w, r)
	h.WritePage(w, r, loc, lang, webtemplates.T(loc, "quote.page_title"), statusCode, webtemplates.QuotePage(loc, view))
}
