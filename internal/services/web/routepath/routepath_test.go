package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		Root:         "/",
		Health:       "/up",
		StaticPrefix: "/static/",
		Quote:        "/quote",
		QuotePreview: "/quote/preview",
		QuoteExtras:  "/quote/extras",
		Book:         "/book",
		Stylesheet:   "/static/site.css",
		Script:       "/static/site.js",
	}
	for got, want := range tests {
		if got != want {
			t.Fatalf("route = %q, want %q", got, want)
		}
	}
}

func TestPrefixesEndWithSlash(t *testing.T) {
	t.Parallel()

	for _, prefix := range []string{StaticPrefix, QuotePrefix, BookPrefix} {
		if prefix[len(prefix)-1] != '/' {
			t.Fatalf("prefix %q must end with /", prefix)
		}
	}
}

func TestWithLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		query string
		lang  string
		want  string
	}{
		{name: "plain path", path: "/quote", lang: "pt-BR", want: "/quote?lang=pt-BR"},
		{name: "replaces lang", path: "/book", query: "lang=en-US", lang: "pt-BR", want: "/book?lang=pt-BR"},
		{name: "keeps other values", path: "/", query: "ref=ad", lang: "en-US", want: "/?lang=en-US&ref=ad"},
		{name: "empty path", path: "", lang: "en-US", want: "/?lang=en-US"},
		{name: "protocol relative", path: "//evil.example", lang: "en-US", want: "/?lang=en-US"},
		{name: "bad query", path: "/quote", query: "%zz", lang: "en-US", want: "/quote?lang=en-US"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := WithLanguage(tc.path, tc.query, tc.lang); got != tc.want {
				t.Fatalf("WithLanguage() = %q, want %q", got, tc.want)
			}
		})
	}
}
