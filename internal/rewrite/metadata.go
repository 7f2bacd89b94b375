package rewrite

import (
	"regexp"
	"strings"

	"github.com/clarolegal/lexclaro/internal/legal"
)

var (
	courtRe      = regexp.MustCompile(`(?im)^[ \t]*((?:JUZGADO|TRIBUNAL|AUDIENCIA)[^\n]*)`)
	caseNumberRe = regexp.MustCompile(`\b\d{1,5}/\d{4}\b`)
	headerDateRe = regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{1,2}\s+de\s+[a-z]+\s+de\s+\d{4}\b`)

	claimantRe   = regexp.MustCompile(`(?im)^[ \t]*(?:DEMANDANTE|PARTE ACTORA|ACTORA?):?[ \t]*([^\n]+)`)
	respondentRe = regexp.MustCompile(`(?im)^[ \t]*(?:PARTE DEMANDADA|DEMANDAD[OA]):?[ \t]*([^\n]+)`)
)

// extractCaseFacts scrapes court, case number, and decision date from
// the normalized text. Best effort: fields stay empty when not found.
func extractCaseFacts(doc legal.SegmentedDocument) legal.CaseFacts {
	text := doc.NormalizedText
	facts := legal.CaseFacts{}

	if m := courtRe.FindStringSubmatch(text); m != nil {
		facts.Court = strings.TrimSpace(m[1])
	}
	if m := caseNumberRe.FindString(text); m != "" {
		facts.CaseNumber = m
	}
	if m := headerDateRe.FindString(text); m != "" {
		facts.Date = m
	}
	return facts
}

// extractParties scrapes litigant names from labeled header lines.
func extractParties(doc legal.SegmentedDocument) legal.Parties {
	parties := legal.Parties{}
	if m := claimantRe.FindStringSubmatch(doc.NormalizedText); m != nil {
		parties.Claimant = strings.TrimSpace(m[1])
	}
	if m := respondentRe.FindStringSubmatch(doc.NormalizedText); m != nil {
		parties.Respondent = strings.TrimSpace(m[1])
	}
	return parties
}
