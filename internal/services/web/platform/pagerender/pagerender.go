// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
	webtemplates "github.com/greenblade/lawncare/internal/services/web/templates"
)

// Page describes a screen response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page.Body inside the site layout. HTMX requests receive
// the body alone so it can be swapped into the current document.
func WritePage(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, lang string, page Page) error {
	if w == nil {
		return nil
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	if httpx.IsHTMXRequest(r) {
		return WriteFragment(w, r, page.StatusCode, body)
	}
	ctx := templ.WithChildren(httpx.RequestContext(r), body)
	layout := webtemplates.Layout(webtemplates.NewPageContext(r, page.Title, lang, loc))
	var buf bytes.Buffer
	if err := layout.Render(ctx, &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, normalizeStatus(page.StatusCode), buf.String())
}

// WriteFragment renders component without the site layout.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	if w == nil {
		return nil
	}
	if component == nil {
		component = emptyComponent{}
	}
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, normalizeStatus(statusCode), buf.String())
}

func normalizeStatus(statusCode int) int {
	if statusCode <= 0 {
		return http.StatusOK
	}
	return statusCode
}
