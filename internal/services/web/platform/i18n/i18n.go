// Package i18n resolves the request language and localized printers for web
// handlers.
package i18n

import (
	"net/http"
	"strings"
	"time"

	platformi18n "github.com/greenblade/lawncare/internal/platform/i18n"
	"github.com/greenblade/lawncare/internal/platform/i18n/catalog"
	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "gb_lang"
)

const langCookieMaxAge = 365 * 24 * time.Hour

// Localizer exposes translated formatting used by templates and handlers.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

func init() {
	// Registration happens while the catalog package initializes.
	_ = catalog.Default()
}

// ResolveTag determines the request language from the lang query parameter,
// the language cookie, then Accept-Language. The bool reports whether the tag
// came from the query parameter.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if r.URL != nil {
		if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
			if tag, ok := platformi18n.ParseTag(value); ok {
				return tag, true
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// ResolveLanguage returns the effective request language as a BCP 47 string.
func ResolveLanguage(r *http.Request) string {
	tag, _ := ResolveTag(r)
	return tag.String()
}

// ResolveLocalizer resolves a printer and language string for a request. An
// explicit lang query parameter is persisted as a cookie.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, fromQuery := ResolveTag(r)
	if fromQuery {
		SetLanguageCookie(w, tag)
	}
	return message.NewPrinter(tag), tag.String()
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageOptions lists supported languages with the active one marked.
func LanguageOptions(loc Localizer, activeLang string) []LanguageOption {
	active, ok := platformi18n.ParseTag(activeLang)
	if !ok {
		active = platformi18n.DefaultTag()
	}
	supported := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		label := tag.String()
		if loc != nil {
			label = loc.Sprintf("core.language." + tag.String())
		}
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			Active: tag == active,
		})
	}
	return options
}

// LocalizeError returns the translated message for a typed error, or its
// plain message when no key is attached.
func LocalizeError(loc Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			return loc.Sprintf(key)
		}
	}
	return strings.TrimSpace(err.Error())
}
