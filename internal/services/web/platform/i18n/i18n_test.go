package i18n

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		target    string
		cookie    string
		accept    string
		want      language.Tag
		fromQuery bool
	}{
		{name: "default", target: "/", want: language.AmericanEnglish},
		{name: "accept language", target: "/", accept: "pt-BR,pt;q=0.9", want: language.BrazilianPortuguese},
		{name: "cookie beats accept", target: "/", cookie: "en-US", accept: "pt-BR", want: language.AmericanEnglish},
		{name: "query beats cookie", target: "/?lang=pt-BR", cookie: "en-US", want: language.BrazilianPortuguese, fromQuery: true},
		{name: "unsupported query ignored", target: "/?lang=ja", cookie: "pt-BR", want: language.BrazilianPortuguese},
		{name: "unsupported accept falls back", target: "/", accept: "ja-JP", want: language.AmericanEnglish},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, fromQuery := ResolveTag(req)
			if got != tc.want {
				t.Fatalf("ResolveTag() = %v, want %v", got, tc.want)
			}
			if fromQuery != tc.fromQuery {
				t.Fatalf("fromQuery = %v, want %v", fromQuery, tc.fromQuery)
			}
		})
	}
}

func TestResolveTagNilRequestUsesDefault(t *testing.T) {
	t.Parallel()

	if got, _ := ResolveTag(nil); got != language.AmericanEnglish {
		t.Fatalf("ResolveTag(nil) = %v, want %v", got, language.AmericanEnglish)
	}
}

func TestResolveLocalizerPersistsQueryLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/quote?lang=pt-BR", nil)
	rr := httptest.NewRecorder()
	loc, lang := ResolveLocalizer(rr, req)
	if lang != "pt-BR" {
		t.Fatalf("lang = %q, want %q", lang, "pt-BR")
	}
	if got := loc.Sprintf("quote.save"); got != "Salvar orçamento" {
		t.Fatalf("quote.save = %q, want Portuguese copy", got)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %v, want %s=pt-BR", cookies, LangCookieName)
	}
}

func TestResolveLocalizerSkipsCookieWithoutQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/quote", nil)
	rr := httptest.NewRecorder()
	_, lang := ResolveLocalizer(rr, req)
	if lang != "en-US" {
		t.Fatalf("lang = %q, want %q", lang, "en-US")
	}
	if got := len(rr.Result().Cookies()); got != 0 {
		t.Fatalf("cookies = %d, want 0", got)
	}
}

func TestLanguageOptionsMarksActive(t *testing.T) {
	t.Parallel()

	loc, _ := ResolveLocalizer(nil, httptest.NewRequest(http.MethodGet, "/", nil))
	options := LanguageOptions(loc, "pt-BR")
	if len(options) != 2 {
		t.Fatalf("options = %d, want 2", len(options))
	}
	if options[0].Tag != "en-US" || options[0].Label != "English" || options[0].Active {
		t.Fatalf("options[0] = %+v", options[0])
	}
	if options[1].Tag != "pt-BR" || options[1].Label != "Português" || !options[1].Active {
		t.Fatalf("options[1] = %+v", options[1])
	}
}

func TestLocalizeError(t *testing.T) {
	t.Parallel()

	loc, _ := ResolveLocalizer(nil, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := LocalizeError(loc, nil); got != "" {
		t.Fatalf("LocalizeError(nil) = %q, want empty", got)
	}
	keyed := apperrors.EK(apperrors.KindUpstream, "quote.error.failed", "failed")
	if got := LocalizeError(loc, keyed); got != "Failed to create quote" {
		t.Fatalf("LocalizeError(keyed) = %q", got)
	}
	if got := LocalizeError(loc, errors.New(" plain ")); got != "plain" {
		t.Fatalf("LocalizeError(plain) = %q, want %q", got, "plain")
	}
}
