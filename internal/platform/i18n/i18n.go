// Package i18n defines the languages the frontend can render.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher   = language.NewMatcher(supported)
)

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return language.AmericanEnglish
}

// SupportedTags returns a copy of the supported language tags in display order.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// ParseTag parses value and reports whether it maps to a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence < language.High {
		return language.Und, false
	}
	return supported[idx], true
}

// MatchTags picks the best supported language for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[idx]
}
