package segment

import (
	"regexp"
	"strings"
)

// Anchor verbs that open the operative ruling of a Spanish resolution,
// and the boilerplate that closes it (notification orders, signatures,
// data-protection notices). ACUERDO only counts in its uppercase heading
// form because the lowercase word appears in prose ("de acuerdo").
var (
	clauseAnchorRe = regexp.MustCompile(`\b(?:(?i:PARTE DISPOSITIVA|FALLAMOS|FALLO|RESUELVO|DISPONGO)|ACUERDO)\b`)
	clauseCloserRe = regexp.MustCompile(`(?i)\b(NOTIFIQUESE|ASI POR ESTA|ASI LO ACUERDA|FIRMADO|PROTECCION DE DATOS|DILIGENCIA)\b`)
)

// ExtractOperativeClause locates the literal ruling block in normalized
// text. The clause runs from the first anchor match to the next closing
// boilerplate or end of text. The boolean result distinguishes "no
// clause located" from an empty clause; downstream stages must never
// treat the two the same.
func ExtractOperativeClause(normalized string) (string, bool) {
	loc := clauseAnchorRe.FindStringIndex(normalized)
	if loc == nil {
		return "", false
	}

	end := len(normalized)
	if closer := clauseCloserRe.FindStringIndex(normalized[loc[1]:]); closer != nil {
		end = loc[1] + closer[0]
	}

	clause := strings.TrimSpace(normalized[loc[0]:end])
	if clause == "" {
		return "", false
	}
	return clause, true
}
