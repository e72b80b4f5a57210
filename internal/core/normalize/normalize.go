// Package normalize cleans provider text before it lands in canonical records
// Body pipeline
// 1 drop anything shaped like a markup tag
// 2 sanitize control bytes and invalid UTF-8
// 3 trim surrounding whitespace
// Body keeps the customer's code points otherwise; emoji sequences rely on ZWJ.
// Short fields additionally get NFC and lose format chars (ZWJ, ZWNJ, BOM).
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var tagRE = regexp.MustCompile(`<[^>]+>`)

// transformers keep state so each caller takes its own chain
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

func fold(s string) string {
	if s == "" {
		return s
	}
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// StripTags removes every <...> substring, unmatched brackets are left alone
func StripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return tagRE.ReplaceAllString(s, "")
}

// Body returns review text with markup removed and whitespace trimmed
func Body(s string) string {
	return strings.TrimSpace(Sanitize(StripTags(s)))
}

// Field cleans a short single value field
func Field(s string) string {
	return strings.TrimSpace(fold(Sanitize(s)))
}

// StripBrand removes every occurrence of brand and trims what is left
func StripBrand(s, brand string) string {
	if brand != "" {
		s = strings.ReplaceAll(s, brand, "")
	}
	return Field(s)
}
