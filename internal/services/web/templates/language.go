package templates

import (
	"github.com/greenblade/lawncare/internal/services/web/platform/i18n"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
)

// LanguageOption represents a supported language option in the UI.
type LanguageOption = i18n.LanguageOption

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	return i18n.LanguageOptions(page.Loc, page.Lang)
}

// LanguageURL returns the current URL with the language param updated.
// Form posts switch language on the GET form of the same screen.
func LanguageURL(page PageContext, tag string) string {
	path := page.CurrentPath
	switch path {
	case routepath.QuotePreview, routepath.QuoteExtras:
		path = routepath.Quote
	}
	return routepath.WithLanguage(path, page.CurrentQuery, tag)
}
