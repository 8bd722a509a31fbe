package public

import (
	"net/http"

	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
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

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.Localize(w, r)
	h.WritePage(w, r, loc, lang, webtemplates.T(loc, "landing.title"), http.StatusOK, webtemplates.Landing(loc))
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, h.service.healthBody())
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
