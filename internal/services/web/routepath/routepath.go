// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root          = "/"
	Health        = "/up"
	StaticPrefix  = "/static/"
	QuotePrefix   = "/quote/"
	Quote         = "/quote"
	QuotePreview  = "/quote/preview"
	QuoteExtras   = "/quote/extras"
	BookPrefix    = "/book/"
	Book          = "/book"
	Stylesheet    = StaticPrefix + "site.css"
	Script        = StaticPrefix + "site.js"
	PricingAnchor = "/#pricing"
	ServiceAnchor = "/#services"
	AreasAnchor   = "/#areas"
)

// WithLanguage returns path with the lang query parameter set to lang,
// keeping any other query values of rawQuery.
func WithLanguage(path string, rawQuery string, lang string) string {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		path = Root
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set("lang", strings.TrimSpace(lang))
	return path + "?" + values.Encode()
}
