package templates

import (
	"net/http"
	"strings"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title        string
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
}

// NewPageContext builds the layout context for r.
func NewPageContext(r *http.Request, title string, lang string, loc Localizer) PageContext {
	page := PageContext{
		Title: strings.TrimSpace(title),
		Lang:  strings.TrimSpace(lang),
		Loc:   loc,
	}
	if page.Title == "" {
		page.Title = T(loc, "core.brand")
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	return page
}

func ariaBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
