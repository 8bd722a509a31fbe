// Package publichandler provides a shared base for web module handlers.
// It centralizes error handling, localization, and page rendering that would
// otherwise be duplicated across modules.
package publichandler

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
	webi18n "github.com/greenblade/lawncare/internal/services/web/platform/i18n"
	"github.com/greenblade/lawncare/internal/services/web/platform/pagerender"
	"github.com/greenblade/lawncare/internal/services/web/platform/weberror"
)

// Base provides shared error handling and page rendering. Embed this in
// handler structs to get WritePage, WriteFragment, WriteNotFound and
// WriteError.
type Base struct {
	logger *log.Logger
}

// Option configures a Base.
type Option func(*Base)

// WithLogger sets the logger used for render failures.
func WithLogger(logger *log.Logger) Option {
	return func(b *Base) { b.logger = logger }
}

// NewBase builds a handler base with the given options.
func NewBase(opts ...Option) Base {
	var b Base
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	return b
}

// Logger returns the configured logger, or the standard logger.
func (b Base) Logger() *log.Logger {
	if b.logger == nil {
		return log.Default()
	}
	return b.logger
}

// Localize resolves the request printer and language.
func (Base) Localize(w http.ResponseWriter, r *http.Request) (webi18n.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r)
}

// WritePage renders body inside the site layout.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer, lang string, title string, statusCode int, body templ.Component) {
	err := pagerender.WritePage(w, r, loc, lang, pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Body:       body,
	})
	if err != nil {
		b.renderFailed(w, r, err)
	}
}

// WriteFragment renders body without the site layout.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, body templ.Component) {
	if err := pagerender.WriteFragment(w, r, statusCode, body); err != nil {
		b.renderFailed(w, r, err)
	}
}

// WriteNotFound renders the localized 404 page.
func (Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}

// WriteError renders a user-safe error response: the error page for
// not-found and server errors, plain-text status messages for everything else.
func (Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err)
}

func (b Base) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	b.Logger().Printf("render failed path=%s err=%v", path, err)
	if w != nil {
		_ = httpx.WriteText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
