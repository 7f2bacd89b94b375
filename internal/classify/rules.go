package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clarolegal/lexclaro/internal/legal"
)

// Keywords holds the immutable keyword tables of the rule estimator.
// Tables are injected at construction; nothing mutates them afterwards.
type Keywords struct {
	ResolutionTerms []string
	FilingTerms     []string
	Subtypes        []SubtypeKeyword
}

// SubtypeKeyword binds a subtype to the literal terms that indicate it.
type SubtypeKeyword struct {
	Subtype legal.DocSubtype
	Terms   []string
}

// DefaultKeywords is the standard table for Spanish judicial documents:
// one family for court-issued resolutions, one for party filings.
func DefaultKeywords() Keywords {
	return Keywords{
		ResolutionTerms: []string{"SENTENCIA", "FALLO", "AUTO", "DECRETO", "RESUELVO"},
		FilingTerms:     []string{"DEMANDA", "ESCRITO", "RECURSO", "SUPLICO", "SOLICITO"},
		Subtypes: []SubtypeKeyword{
			{Subtype: legal.SubtypeJudgment, Terms: []string{"SENTENCIA"}},
			{Subtype: legal.SubtypeOrder, Terms: []string{"AUTO"}},
			{Subtype: legal.SubtypeProvidence, Terms: []string{"PROVIDENCIA"}},
			{Subtype: legal.SubtypeDecree, Terms: []string{"DECRETO"}},
			{Subtype: legal.SubtypeClaim, Terms: []string{"DEMANDA"}},
			{Subtype: legal.SubtypeAppeal, Terms: []string{"RECURSO", "RECURR"}},
		},
	}
}

const (
	// headerLineCount bounds the header window; court headers that
	// carry the subtype marker can appear well below the first line.
	headerLineCount = 20

	typeMatchIncrement    = 0.2
	subtypeHeaderWeight   = 1.0
	subtypeBodyWeight     = 0.25
	baselineTypeScore     = 0.2
	subtypeScoreHalfShare = 0.5
)

// ruleClassify runs the deterministic keyword estimator. Absence of any
// match yields OTHER/UNKNOWN at confidence 0.
func ruleClassify(kw Keywords, doc legal.SegmentedDocument) legal.ClassificationResult {
	text := strings.ToUpper(doc.NormalizedText)
	sectionNames := strings.ToUpper(strings.Join(doc.SectionNames(), "\n"))
	header := headerText(doc.NormalizedText)

	var typeMatches []string
	scoreFamily := func(label string, terms []string) float64 {
		score := 0.0
		for _, term := range terms {
			if strings.Contains(text, term) || strings.Contains(sectionNames, term) {
				score += typeMatchIncrement
				typeMatches = append(typeMatches, fmt.Sprintf("%s:%s", label, term))
			}
		}
		return min(score, 1.0)
	}
	resolutionScore := scoreFamily("RESOLUTION", kw.ResolutionTerms)
	filingScore := scoreFamily("PROCEDURAL_FILING", kw.FilingTerms)

	docType := legal.DocTypeOther
	typeScore := 0.0
	switch {
	case resolutionScore >= filingScore && resolutionScore > 0:
		docType = legal.DocTypeResolution
		typeScore = resolutionScore
	case filingScore > 0:
		docType = legal.DocTypeFiling
		typeScore = filingScore
	}

	var subtypeMatches []string
	bestSubtype := legal.SubtypeUnknown
	bestSubtypeScore := 0.0
	for _, sk := range kw.Subtypes {
		score := 0.0
		for _, term := range sk.Terms {
			switch {
			case strings.Contains(header, term):
				score += subtypeHeaderWeight
				subtypeMatches = append(subtypeMatches, fmt.Sprintf("%s:%s(header)", sk.Subtype, term))
			case strings.Contains(text, term):
				score += subtypeBodyWeight
				subtypeMatches = append(subtypeMatches, fmt.Sprintf("%s:%s", sk.Subtype, term))
			}
		}
		if score > bestSubtypeScore {
			bestSubtypeScore = score
			bestSubtype = sk.Subtype
		}
	}
	bestSubtypeScore = min(bestSubtypeScore, 1.0)

	// A whole-word subtype marker in the header is a forced override.
	if forced, ok := forcedHeaderSubtype(header); ok {
		bestSubtype = forced
		bestSubtypeScore = 1.0
		subtypeMatches = append([]string{fmt.Sprintf("%s:header_override", forced)}, subtypeMatches...)
	}

	if typeScore == 0 && bestSubtypeScore == 0 {
		return legal.ClassificationResult{
			DocType:      legal.DocTypeOther,
			DocSubtype:   legal.SubtypeUnknown,
			Confidence:   0,
			Provenance:   legal.ProvenanceRules,
			Explanations: []string{"No se detectaron patrones fuertes."},
		}
	}

	confidence := min(1.0, max(typeScore, baselineTypeScore)+bestSubtypeScore*subtypeScoreHalfShare)

	var explanations []string
	if len(typeMatches) > 0 {
		explanations = append(explanations, "Reglas tipo: "+strings.Join(capList(typeMatches, 5), ", "))
	}
	if len(subtypeMatches) > 0 {
		explanations = append(explanations, "Reglas subtipo: "+strings.Join(capList(subtypeMatches, 5), ", "))
	}

	return legal.ClassificationResult{
		DocType:      docType,
		DocSubtype:   bestSubtype,
		Confidence:   confidence,
		Provenance:   legal.ProvenanceRules,
		Explanations: explanations,
	}
}

var forcedSubtypePatterns = []struct {
	re      *regexp.Regexp
	subtype legal.DocSubtype
}{
	{regexp.MustCompile(`\bSENTENCIA\b`), legal.SubtypeJudgment},
	{regexp.MustCompile(`\bAUTO\b`), legal.SubtypeOrder},
	{regexp.MustCompile(`\bDECRETO\b`), legal.SubtypeDecree},
	{regexp.MustCompile(`\bPROVIDENCIA\b`), legal.SubtypeProvidence},
}

func forcedHeaderSubtype(header string) (legal.DocSubtype, bool) {
	for _, p := range forcedSubtypePatterns {
		if p.re.MatchString(header) {
			return p.subtype, true
		}
	}
	return legal.SubtypeUnknown, false
}

func headerText(normalized string) string {
	lines := strings.Split(normalized, "\n")
	if len(lines) > headerLineCount {
		lines = lines[:headerLineCount]
	}
	var parts []string
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			parts = append(parts, strings.ToUpper(ln))
		}
	}
	return strings.Join(parts, " ")
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
