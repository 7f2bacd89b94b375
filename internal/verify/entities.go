package verify

import "regexp"

// Shared extraction rules. The same regexes run over the original and
// the rewritten text so set differences are meaningful. Accented and
// plain vowels both appear because rewritten text is not transliterated.
var (
	amountRe   = regexp.MustCompile(`(?i)[$€]\s?\d[\d.,]*(?:\s?(?:COP|EUR|USD))?|\d[\d.,]*\s?(?:euros?|eur|cop|usd|pesos|€|\$)`)
	dateRe     = regexp.MustCompile(`(?i)\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{1,2}\s+de\s+[a-zñáéíóú]+\s+de\s+\d{4}\b`)
	deadlineRe = regexp.MustCompile(`(?i)\b\d+\s+(?:d[ií]as(?:\s+h[aá]biles|\s+naturales)?|meses|anos|años)\b`)
)

// ExtractAmounts returns monetary literals in order of appearance,
// deduplicated.
func ExtractAmounts(text string) []string {
	return dedup(amountRe.FindAllString(text, -1))
}

// ExtractDates returns date literals (numeric and written Spanish forms).
func ExtractDates(text string) []string {
	return dedup(dateRe.FindAllString(text, -1))
}

// ExtractDeadlines returns deadline expressions like "20 dias habiles".
func ExtractDeadlines(text string) []string {
	return dedup(deadlineRe.FindAllString(text, -1))
}

func dedup(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
