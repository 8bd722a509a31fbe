// Package catalog loads the embedded message catalogs and registers them
// with golang.org/x/text/message.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the canonical source locale; every other locale must define
// the same keys.
const BaseLocale = "en-US"

// coreNamespace owns every key prefixed with "core.".
const coreNamespace = "core"

type catalogFile struct {
	Locale    string
	Namespace string
	Messages  map[string]string
}

// Bundle holds every locale's messages keyed by message key.
type Bundle struct {
	locales map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded bundle. It is registered with the
// x/text default catalog during package initialization.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		parsed, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.add(p, parsed); err != nil {
			return nil, err
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	if file.Locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, file.Locale, localeFromPath)
	}
	if file.Namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", p, file.Namespace, namespaceFromPath)
	}

	messages, ok := b.locales[file.Locale]
	if !ok {
		messages = map[string]string{}
		b.locales[file.Locale] = messages
	}
	for key, value := range file.Messages {
		isCore := strings.HasPrefix(key, coreNamespace+".")
		if isCore != (file.Namespace == coreNamespace) {
			return fmt.Errorf("catalog %s: key %q does not belong to namespace %q", p, key, file.Namespace)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, file.Locale)
		}
		messages[key] = value
	}
	return nil
}

// Register installs every message with the x/text default catalog.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		messages := b.locales[locale]
		for _, key := range sortedKeys(messages) {
			if err := message.SetString(tag, key, messages[key]); err != nil {
				return fmt.Errorf("register %s %q: %w", locale, key, err)
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all locale identifiers in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return sortedKeys(b.locales)
}

// keys returns the sorted message keys defined for locale.
func (b *Bundle) keys(locale string) []string {
	if b == nil {
		return nil
	}
	return sortedKeys(b.locales[strings.TrimSpace(locale)])
}

// Message returns one message, falling back to the base locale.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if value, ok := b.locales[strings.TrimSpace(locale)][key]; ok {
		return value, true
	}
	value, ok := b.locales[BaseLocale][key]
	return value, ok
}

// missing returns base-locale keys that locale does not define.
func (b *Bundle) missing(locale string) []string {
	if b == nil {
		return nil
	}
	have := b.locales[strings.TrimSpace(locale)]
	var missing []string
	for _, key := range b.keys(BaseLocale) {
		if _, ok := have[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}

// parseCatalogFile reads the flat catalog format:
//
//	locale: "en-US"
//	namespace: "web"
//	messages:
//	  "key": "value"
func parseCatalogFile(data []byte) (catalogFile, error) {
	out := catalogFile{Messages: map[string]string{}}
	inMessages := false

	for n, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var err error
		switch {
		case strings.HasPrefix(line, "locale:"):
			out.Locale, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
		case strings.HasPrefix(line, "namespace:"):
			out.Namespace, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "namespace:")))
		case line == "messages:":
			inMessages = true
		case inMessages:
			var key, value string
			key, value, err = parseMessageEntry(line)
			if err == nil {
				if _, dup := out.Messages[key]; dup {
					err = fmt.Errorf("duplicate key %q", key)
				}
				out.Messages[key] = value
			}
		default:
			err = fmt.Errorf("unexpected content")
		}
		if err != nil {
			return catalogFile{}, fmt.Errorf("line %d: %w", n+1, err)
		}
	}

	switch {
	case out.Locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case out.Namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(out.Messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return out, nil
}

func parseMessageEntry(line string) (string, string, error) {
	keyToken, rest, err := splitQuotedToken(line)
	if err != nil {
		return "", "", err
	}
	key, err := strconv.Unquote(keyToken)
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("message key cannot be blank")
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	value, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(rest, ":")))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}

func splitQuotedToken(line string) (string, string, error) {
	if !strings.HasPrefix(line, "\"") {
		return "", "", fmt.Errorf("expected quoted token")
	}
	escaped := false
	for i := 1; i < len(line); i++ {
		switch {
		case escaped:
			escaped = false
		case line[i] == '\\':
			escaped = true
		case line[i] == '"':
			return line[:i+1], line[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quoted token")
}
