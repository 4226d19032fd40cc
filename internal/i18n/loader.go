// Package i18n holds the response messages in every supported language.
// Packs are embedded JSON files keyed by message id; English is the fallback.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed en/*.json id/*.json
var packsFS embed.FS

// Supported languages
const (
	LangEN = "en"
	LangID = "id"
)

// Message keys
const (
	DistrictFound       = "district.found"
	DistrictNotFound    = "district.not_found"
	EndpointNotFound    = "endpoint.not_found"
	SearchQueryRequired = "search.query_required"
	SearchFound         = "search.found"
	StatsFound          = "stats.found"
	DataReadFailed      = "data.read_failed"
	ErrorGeneric        = "error.generic"
	FileNotFound        = "file.not_found"
)

// Bundle maps language -> key -> message
type Bundle struct {
	packs    map[string]map[string]string
	fallback string
}

// Load reads the embedded packs. fallback is the language used when a
// request names none we support; it must be one of the supported languages.
func Load(fallback string) (*Bundle, error) {
	b := &Bundle{packs: make(map[string]map[string]string)}

	for _, lang := range []string{LangEN, LangID} {
		data, err := packsFS.ReadFile(lang + "/messages.json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s messages: %w", lang, err)
		}
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s messages: %w", lang, err)
		}
		b.packs[lang] = m
	}

	if _, ok := b.packs[fallback]; !ok {
		return nil, fmt.Errorf("unsupported default language: %s", fallback)
	}
	b.fallback = fallback

	return b, nil
}

// Resolve picks a supported language from an explicit choice (e.g. a lang
// query parameter) or an Accept-Language header, in that order.
func (b *Bundle) Resolve(explicit, acceptLanguage string) string {
	if lang, ok := b.match(explicit); ok {
		return lang
	}

	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		if lang, ok := b.match(tag); ok {
			return lang
		}
	}

	return b.fallback
}

func (b *Bundle) match(tag string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	if _, ok := b.packs[tag]; ok {
		return tag, true
	}
	return "", false
}

// T returns the message for key in lang, formatted with args. Missing keys
// fall back to the default language, then English, then the key itself.
func (b *Bundle) T(lang, key string, args ...interface{}) string {
	msg, ok := b.packs[lang][key]
	if !ok {
		msg, ok = b.packs[b.fallback][key]
	}
	if !ok {
		msg, ok = b.packs[LangEN][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
