// Package classify decides document type and subtype by fusing a
// deterministic keyword estimator with the external reasoning
// capability.
package classify

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/llm"
)

// ErrNoSignal is returned when neither the rules nor the capability
// produced any usable classification. This is the only classifier
// failure that aborts a request.
var ErrNoSignal = errors.New("classify: no usable classification signal")

// Config carries the injected thresholds of the classifier.
type Config struct {
	// RuleThreshold: at or above it the rule result is final and no
	// external call happens. Determinism guarantee, not just a shortcut.
	RuleThreshold float64
	// ForceThreshold: below it the external capability is consulted.
	ForceThreshold float64
	// CharBudget truncates the text sent to the capability.
	CharBudget  int
	Temperature float64
	Retries     int
	Backoff     time.Duration
}

type Classifier struct {
	client   llm.Client
	keywords Keywords
	cfg      Config
	log      *slog.Logger
}

func New(client llm.Client, keywords Keywords, cfg Config, log *slog.Logger) *Classifier {
	return &Classifier{client: client, keywords: keywords, cfg: cfg, log: log}
}

// Classify combines both estimators. The rule result is never discarded:
// the generative result replaces it only on strictly higher confidence,
// and then with provenance HYBRID and both explanation lists.
func (c *Classifier) Classify(ctx context.Context, doc legal.SegmentedDocument) (legal.ClassificationResult, error) {
	rule := ruleClassify(c.keywords, doc)
	if rule.Confidence >= c.cfg.RuleThreshold {
		return enforceCoherence(rule), nil
	}

	var gen *legal.ClassificationResult
	if rule.Confidence < c.cfg.ForceThreshold {
		gen = c.generativeClassify(ctx, doc)
	}
	if gen == nil {
		if rule.Confidence == 0 {
			return legal.ClassificationResult{}, ErrNoSignal
		}
		return enforceCoherence(rule), nil
	}

	if gen.Confidence > rule.Confidence {
		fused := *gen
		fused.Provenance = legal.ProvenanceHybrid
		fused.Explanations = append(append([]string{}, rule.Explanations...), gen.Explanations...)
		return enforceCoherence(fused), nil
	}
	return enforceCoherence(rule), nil
}

type classificationPayload struct {
	DocType    string  `json:"doc_type"`
	DocSubtype string  `json:"doc_subtype"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// generativeClassify consults the capability. Any failure (call, parse,
// schema) degrades silently to nil; the rule result stays authoritative.
func (c *Classifier) generativeClassify(ctx context.Context, doc legal.SegmentedDocument) *legal.ClassificationResult {
	snippet := llm.Truncate(doc.NormalizedText, c.cfg.CharBudget)

	raw, err := llm.CompleteWithRetry(ctx, c.client, classifySystemPrompt, classifyUserPrompt(snippet, doc.SectionNames()), c.cfg.Temperature, c.cfg.Retries, c.cfg.Backoff)
	if err != nil {
		c.log.Warn("generative classification failed", "error", err)
		return nil
	}

	var payload classificationPayload
	if err := llm.ParseObject(raw, llm.ClassificationSchema, &payload); err != nil {
		c.log.Warn("generative classification unparseable", "error", err)
		return nil
	}

	return &legal.ClassificationResult{
		DocType:      mapDocType(payload.DocType),
		DocSubtype:   mapDocSubtype(payload.DocSubtype),
		Confidence:   min(max(payload.Confidence, 0), 1),
		Provenance:   legal.ProvenanceGenerative,
		Explanations: []string{payload.Rationale},
	}
}

// enforceCoherence applies the final corrective step: resolution-only
// subtypes force the resolution type regardless of which estimator won.
func enforceCoherence(r legal.ClassificationResult) legal.ClassificationResult {
	if r.DocSubtype.IsResolutionSubtype() && r.DocType != legal.DocTypeResolution {
		r.DocType = legal.DocTypeResolution
	}
	return r
}

func mapDocType(s string) legal.DocType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RESOLUCION_JURIDICA", "RESOLUTION":
		return legal.DocTypeResolution
	case "ESCRITO_PROCESAL", "PROCEDURAL_FILING":
		return legal.DocTypeFiling
	default:
		return legal.DocTypeOther
	}
}

func mapDocSubtype(s string) legal.DocSubtype {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SENTENCIA", "JUDGMENT":
		return legal.SubtypeJudgment
	case "AUTO", "ORDER":
		return legal.SubtypeOrder
	case "DECRETO", "DECREE":
		return legal.SubtypeDecree
	case "PROVIDENCIA", "PROVIDENCE":
		return legal.SubtypeProvidence
	case "DEMANDA", "CLAIM":
		return legal.SubtypeClaim
	case "RECURSO", "APPEAL":
		return legal.SubtypeAppeal
	default:
		return legal.SubtypeUnknown
	}
}
