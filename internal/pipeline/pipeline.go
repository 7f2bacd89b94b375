// Package pipeline runs the full document flow: ingest, segment,
// classify, rewrite, guide, verify. One request owns one run; stages
// share nothing across requests.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clarolegal/lexclaro/internal/classify"
	"github.com/clarolegal/lexclaro/internal/guide"
	"github.com/clarolegal/lexclaro/internal/ingest"
	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/rewrite"
	"github.com/clarolegal/lexclaro/internal/segment"
	"github.com/clarolegal/lexclaro/internal/verify"
)

// Result is the complete artifact chain of one run.
type Result struct {
	RequestID      string                     `json:"requestId"`
	Document       legal.SegmentedDocument    `json:"document"`
	Classification legal.ClassificationResult `json:"classification"`
	Rewrite        legal.StructuredRewrite    `json:"rewrite"`
	Guide          legal.LegalGuide           `json:"guide"`
	Fidelity       legal.FidelityReport       `json:"fidelity"`
	ElapsedMs      int64                      `json:"elapsedMs"`
}

// Pipeline wires the five stages together. All stages are constructed
// once and are safe for concurrent runs.
type Pipeline struct {
	extractor  *ingest.Extractor
	segmenter  *segment.Segmenter
	classifier *classify.Classifier
	rewriter   *rewrite.Rewriter
	guider     *guide.Builder
	verifier   *verify.Verifier
	log        *slog.Logger
}

func New(extractor *ingest.Extractor, segmenter *segment.Segmenter, classifier *classify.Classifier, rewriter *rewrite.Rewriter, guider *guide.Builder, verifier *verify.Verifier, log *slog.Logger) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		segmenter:  segmenter,
		classifier: classifier,
		rewriter:   rewriter,
		guider:     guider,
		verifier:   verifier,
		log:        log,
	}
}

// Process runs every stage in order. Only ingestion, segmentation, and a
// classifier with no signal at all can fail; everything downstream
// degrades instead of aborting.
func (p *Pipeline) Process(ctx context.Context, doc legal.RawDocument) (Result, error) {
	requestID := uuid.NewString()
	start := time.Now()
	log := p.log.With("request_id", requestID, "source", string(doc.Source))

	text, err := p.extractor.ExtractText(doc)
	if err != nil {
		return Result{}, fmt.Errorf("ingest: %w", err)
	}

	segmented, err := p.segmenter.Segment(text)
	if err != nil {
		return Result{}, err
	}
	log.Info("document segmented",
		"chars", len(segmented.NormalizedText),
		"sections", len(segmented.Sections),
		"clause_found", segmented.ClauseFound)

	classification, err := p.classifier.Classify(ctx, segmented)
	if err != nil {
		return Result{}, err
	}
	log.Info("document classified",
		"doc_type", string(classification.DocType),
		"doc_subtype", string(classification.DocSubtype),
		"confidence", classification.Confidence,
		"provenance", string(classification.Provenance))

	rw := p.rewriter.Rewrite(ctx, segmented, classification)
	lg := p.guider.Build(ctx, rw, classification)
	fidelity := p.verifier.Verify(ctx, segmented, rw, lg)

	elapsed := time.Since(start)
	log.Info("pipeline complete",
		"elapsed_ms", elapsed.Milliseconds(),
		"is_safe", fidelity.IsSafe,
		"rule_flags", len(fidelity.RuleFlags))

	return Result{
		RequestID:      requestID,
		Document:       segmented,
		Classification: classification,
		Rewrite:        rw,
		Guide:          lg,
		Fidelity:       fidelity,
		ElapsedMs:      elapsed.Milliseconds(),
	}, nil
}
