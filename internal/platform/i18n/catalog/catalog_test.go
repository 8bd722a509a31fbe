package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got := len(bundle.keys(BaseLocale)); got == 0 {
		t.Fatalf("expected %s messages", BaseLocale)
	}
}

func TestEmbeddedLocalesDefineEveryBaseKey(t *testing.T) {
	t.Parallel()

	bundle := Default()
	for _, locale := range bundle.Locales() {
		if missing := bundle.missing(locale); len(missing) > 0 {
			t.Fatalf("locale %s missing keys %v", locale, missing)
		}
	}
}

func TestDefaultRegistersMessagesWithPrinter(t *testing.T) {
	t.Parallel()

	_ = Default()
	en := message.NewPrinter(language.AmericanEnglish)
	if got := en.Sprintf("quote.breakdown.total", 30.99); got != "Total: $30.99" {
		t.Fatalf("en total = %q, want %q", got, "Total: $30.99")
	}
	pt := message.NewPrinter(language.BrazilianPortuguese)
	if got := pt.Sprintf("core.error.go_home"); got != "Voltar ao início" {
		t.Fatalf("pt go home = %q, want %q", got, "Voltar ao início")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	bundle := Default()
	got, ok := bundle.Message("fr-FR", "core.error.not_found")
	if !ok || got != "Page not found" {
		t.Fatalf("Message() = %q, %v; want base fallback", got, ok)
	}
	if _, ok := bundle.Message(BaseLocale, "no.such.key"); ok {
		t.Fatal("expected unknown key to be missing")
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "core.bad": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsPlainKeyInCoreNamespace(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "quote.title": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/quote.yaml"), `locale: "en-US"
namespace: "quote"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/web.yaml"), `locale: "pt-BR"
namespace: "web"
messages:
  "a.key": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestParseCatalogFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "locale: \"en-US\"\nnamespace: \"web\"\nmessages:\n  # comment\n  \"a\": \"say \\\"hi\\\"\"\n"},
		{name: "missing locale", input: "namespace: \"web\"\nmessages:\n  \"a\": \"b\"\n", wantErr: true},
		{name: "missing messages", input: "locale: \"en-US\"\nnamespace: \"web\"\nmessages:\n", wantErr: true},
		{name: "unquoted value", input: "locale: \"en-US\"\nnamespace: \"web\"\nmessages:\n  \"a\": b\n", wantErr: true},
		{name: "unterminated key", input: "locale: \"en-US\"\nnamespace: \"web\"\nmessages:\n  \"a: \"b\"\n", wantErr: true},
		{name: "content before messages", input: "locale: \"en-US\"\n\"a\": \"b\"\n", wantErr: true},
		{name: "duplicate key", input: "locale: \"en-US\"\nnamespace: \"web\"\nmessages:\n  \"a\": \"b\"\n  \"a\": \"c\"\n", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseCatalogFile([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseCatalogFile() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCatalogFile() error = %v", err)
			}
			if got.Messages["a"] != `say "hi"` {
				t.Fatalf("message a = %q, want %q", got.Messages["a"], `say "hi"`)
			}
		})
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
