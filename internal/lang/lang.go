package lang

import (
	"path/filepath"
	"sort"
	"strings"
)

// Cleartext is the shared metadata tag for languages that have no dedicated
// text encoding in the game and are compiled from plain text.
const Cleartext = "cleartext"

// Default is used whenever neither the file name nor the header metadata
// pins down a language.
const Default = "en"

// metaByLang maps every supported language code to the metadata tag written
// into a string-table header. Languages without a dedicated encoding collapse
// to the shared cleartext tag.
var metaByLang = map[string]string{
	"an":   Cleartext,
	"br":   Cleartext,
	"cn":   "cn",
	"cz":   Cleartext,
	"de":   "de",
	"en":   "en",
	"es":   "es",
	"esmx": Cleartext,
	"fr":   "fr",
	"hu":   Cleartext,
	"it":   "it",
	"jp":   "jp",
	"kr":   Cleartext,
	"pl":   "pl",
	"ru":   "ru",
	"tr":   Cleartext,
	"zh":   "zh",
}

// IsKnown reports whether code is a supported target language.
func IsKnown(code string) bool {
	_, ok := metaByLang[code]
	return ok
}

// All returns every supported language code, sorted.
func All() []string {
	codes := make([]string, 0, len(metaByLang))
	for code := range metaByLang {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// MetaFor returns the metadata tag for a language code. Unknown codes fall
// back to the default language's tag.
func MetaFor(code string) string {
	if meta, ok := metaByLang[code]; ok {
		return meta
	}
	return metaByLang[Default]
}

// IsMetaTag reports whether tag is a legal header metadata value.
func IsMetaTag(tag string) bool {
	if tag == Cleartext {
		return true
	}
	for _, meta := range metaByLang {
		if meta == tag {
			return true
		}
	}
	return false
}

// MetaTags returns every legal header metadata value, sorted.
func MetaTags() []string {
	seen := map[string]struct{}{Cleartext: {}}
	for _, meta := range metaByLang {
		seen[meta] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DeduceFromFileName inspects the dot-delimited components of a file name
// (extension excluded) and returns the first one that is a known language
// code. Returns "" when none match.
func DeduceFromFileName(path string) string {
	parts := strings.Split(filepath.Base(path), ".")
	if len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	for _, part := range parts {
		if IsKnown(part) {
			return part
		}
	}
	return ""
}
