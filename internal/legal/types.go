// Package legal defines the shared data model for the document pipeline.
// Each value is created by exactly one stage from its upstream inputs and
// consumed read-only by the next stage; one request owns one chain.
package legal

// SourceKind declares how a document payload was produced.
type SourceKind string

const (
	SourceText  SourceKind = "text"
	SourcePDF   SourceKind = "pdf"
	SourceDOCX  SourceKind = "docx"
	SourceHTML  SourceKind = "html"
	SourceImage SourceKind = "image"
)

// RawDocument is the opaque payload handed to ingestion. Immutable once
// created.
type RawDocument struct {
	Content  []byte
	Source   SourceKind
	Filename string
	Language string
}

// DocumentSection is a named region of the normalized text.
type DocumentSection struct {
	Name       string  `json:"name"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

// SegmentedDocument is the cleaned and sectioned view of a document.
// OperativeClause is a literal substring of NormalizedText; ClauseFound
// distinguishes "no ruling clause located" from an empty clause.
type SegmentedDocument struct {
	RawText         string            `json:"rawText"`
	NormalizedText  string            `json:"normalizedText"`
	Sections        []DocumentSection `json:"sections"`
	OperativeClause string            `json:"operativeClause"`
	ClauseFound     bool              `json:"clauseFound"`
}

// SectionNames returns the ordered section names, used as grounding
// context for the external capability.
func (d SegmentedDocument) SectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return names
}

// DocType is the top-level document category.
type DocType string

const (
	DocTypeResolution DocType = "RESOLUTION"
	DocTypeFiling     DocType = "PROCEDURAL_FILING"
	DocTypeOther      DocType = "OTHER"
)

// DocSubtype refines the document category.
type DocSubtype string

const (
	SubtypeJudgment   DocSubtype = "JUDGMENT"
	SubtypeOrder      DocSubtype = "ORDER"
	SubtypeDecree     DocSubtype = "DECREE"
	SubtypeProvidence DocSubtype = "PROVIDENCE"
	SubtypeClaim      DocSubtype = "CLAIM"
	SubtypeAppeal     DocSubtype = "APPEAL"
	SubtypeUnknown    DocSubtype = "UNKNOWN"
)

// IsResolutionSubtype reports whether the subtype can only belong to a
// court-issued resolution.
func (s DocSubtype) IsResolutionSubtype() bool {
	switch s {
	case SubtypeJudgment, SubtypeOrder, SubtypeDecree, SubtypeProvidence:
		return true
	}
	return false
}

// Provenance records which estimator produced a classification.
type Provenance string

const (
	ProvenanceRules      Provenance = "RULES_ONLY"
	ProvenanceGenerative Provenance = "GENERATIVE"
	ProvenanceHybrid     Provenance = "HYBRID"
)

// ClassificationResult is the document type decision with diagnostics.
type ClassificationResult struct {
	DocType      DocType    `json:"docType"`
	DocSubtype   DocSubtype `json:"docSubtype"`
	Confidence   float64    `json:"confidence"`
	Provenance   Provenance `json:"provenance"`
	Explanations []string   `json:"explanations"`
}

// Winner is the prevailing-party polarity of a ruling.
type Winner string

const (
	WinnerClaimant   Winner = "claimant"
	WinnerRespondent Winner = "respondent"
	WinnerPartial    Winner = "partial"
	WinnerUnknown    Winner = "unknown"
)

// Costs records which party bears the procedural costs.
type Costs string

const (
	CostsClaimant   Costs = "claimant"
	CostsRespondent Costs = "respondent"
	CostsNone       Costs = "none"
	CostsUnknown    Costs = "unknown"
)

// OutcomeDecision is derived only from the literal operative clause,
// never from generative output.
type OutcomeDecision struct {
	Winner        Winner `json:"winner"`
	Costs         Costs  `json:"costs"`
	LiteralClause string `json:"literalClause"`
	Summary       string `json:"summary"`
}

// CaseFacts are header-level facts scraped from the document.
type CaseFacts struct {
	Court      string `json:"court"`
	CaseNumber string `json:"caseNumber"`
	Date       string `json:"date"`
}

// Parties names the litigants when they can be detected.
type Parties struct {
	Claimant   string `json:"claimant"`
	Respondent string `json:"respondent"`
}

// StructuredRewrite is the plain-language rendition of a document.
// Report is the fixed-order rendered text: case facts, parties,
// procedural context, outcome.
type StructuredRewrite struct {
	Facts             CaseFacts       `json:"facts"`
	Parties           Parties         `json:"parties"`
	ProceduralContext string          `json:"proceduralContext"`
	Outcome           OutcomeDecision `json:"outcome"`
	Report            string          `json:"report"`
	Truncated         bool            `json:"truncated"`
	Warnings          []string        `json:"warnings"`
}

// LegalGuide is the four-block citizen guidance built from the rewrite.
type LegalGuide struct {
	MeaningForYou     string `json:"meaningForYou"`
	WhatToDoNow       string `json:"whatToDoNow"`
	WhatHappensNext   string `json:"whatHappensNext"`
	DeadlinesAndRisks string `json:"deadlinesAndRisks"`
	Provider          string `json:"provider"`
}

// Issue severities. All fidelity findings are informational data, never
// control flow.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// FidelityIssue is a single finding from the verifier.
type FidelityIssue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// FidelityReport is the terminal artifact of a pipeline run.
type FidelityReport struct {
	IsSafe          bool            `json:"isSafe"`
	Issues          []FidelityIssue `json:"issues"`
	RuleFlags       []string        `json:"ruleFlags"`
	ExternalVerdict string          `json:"externalVerdict,omitempty"`
}
