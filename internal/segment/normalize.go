package segment

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	hyphenBreakRe  = regexp.MustCompile(`(\pL)-\n(\pL)`)
	digitLineRe    = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*\n`)
	hspaceRe       = regexp.MustCompile(`[ \t]{2,}`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw document text: consistent line endings, ASCII
// transliteration, OCR de-hyphenation, page-number noise removal, and
// whitespace collapsing. Deterministic: identical input yields identical
// output.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = transliterate(text)

	// OCR end-of-line hyphenation: "senten-\ncia" -> "sentencia".
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")

	// Lines that are pure digits are page-number OCR noise.
	text = digitLineRe.ReplaceAllString(text, "")

	text = hspaceRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// transliterate decomposes accented characters and ligatures (NFKD) and
// strips combining marks, leaving ASCII-safe Spanish legal text.
func transliterate(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
