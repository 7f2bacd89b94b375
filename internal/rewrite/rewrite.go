// Package rewrite produces the plain-language rendition of a document.
// The stated outcome is bound deterministically to the extracted
// operative clause; the external capability only rewrites prose.
package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/llm"
)

// Config carries the injected limits of the rewriter.
type Config struct {
	SoftLimit     int // chunk target size in characters
	HardLimit     int // emergency per-chunk cap; exceeding it truncates
	MaxConcurrent int
	Temperature   float64
	Retries       int
	Backoff       time.Duration
}

type Rewriter struct {
	client llm.Client
	cfg    Config
	log    *slog.Logger
}

func New(client llm.Client, cfg Config, log *slog.Logger) *Rewriter {
	return &Rewriter{client: client, cfg: cfg, log: log}
}

// Rewrite builds the structured plain-language document. Chunk-level
// capability failures fall back to the original chunk text; the method
// itself never fails.
func (r *Rewriter) Rewrite(ctx context.Context, doc legal.SegmentedDocument, classification legal.ClassificationResult) legal.StructuredRewrite {
	facts := extractCaseFacts(doc)
	parties := extractParties(doc)
	outcome := DeriveOutcome(doc.OperativeClause, doc.ClauseFound)

	chunks, truncated := buildChunks(doc, r.cfg.SoftLimit, r.cfg.HardLimit)

	// The clause gets its own leading chunk so truncation can never
	// drop it.
	if doc.ClauseFound && !containsChunk(chunks, doc.OperativeClause) {
		chunks = append([]string{doc.OperativeClause}, chunks...)
	}

	parts := make([]string, len(chunks))
	fellBack := make([]bool, len(chunks))

	var g errgroup.Group
	g.SetLimit(max(r.cfg.MaxConcurrent, 1))
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			parts[i], fellBack[i] = r.rewriteChunk(ctx, chunk, classification, doc, facts, parties)
			return nil
		})
	}
	_ = g.Wait()

	combined := joinParts(parts)
	combined = stripMetaComments(combined)

	var warnings []string
	if truncated {
		warnings = append(warnings, "El documento fue dividido y truncado parcialmente para poder simplificarlo.")
	}
	for _, fb := range fellBack {
		if fb {
			warnings = append(warnings, "Algunas partes no pudieron simplificarse y se muestran en su forma original.")
			break
		}
	}

	return legal.StructuredRewrite{
		Facts:             facts,
		Parties:           parties,
		ProceduralContext: combined,
		Outcome:           outcome,
		Report:            renderReport(facts, parties, combined, outcome),
		Truncated:         truncated,
		Warnings:          warnings,
	}
}

type rewritePayload struct {
	SimplifiedText string `json:"simplified_text"`
}

// rewriteChunk calls the capability for one chunk. The second result
// reports whether the chunk passed through unmodified.
func (r *Rewriter) rewriteChunk(ctx context.Context, chunk string, classification legal.ClassificationResult, doc legal.SegmentedDocument, facts legal.CaseFacts, parties legal.Parties) (string, bool) {
	user := rewriteUserPrompt(chunk, classification, doc.OperativeClause, doc.ClauseFound, facts, parties)

	raw, err := llm.CompleteWithRetry(ctx, r.client, rewriteSystemPrompt, user, r.cfg.Temperature, r.cfg.Retries, r.cfg.Backoff)
	if err != nil {
		r.log.Warn("chunk rewrite failed, passing through", "error", err)
		return chunk, true
	}

	var payload rewritePayload
	if err := llm.ParseObject(raw, llm.RewriteSchema, &payload); err != nil {
		// Some backends answer in prose despite the contract; the text
		// is still usable.
		if text := strings.TrimSpace(llm.StripCodeFences(raw)); text != "" {
			return text, false
		}
		r.log.Warn("chunk rewrite unparseable, passing through", "error", err)
		return chunk, true
	}
	if strings.TrimSpace(payload.SimplifiedText) == "" {
		return chunk, true
	}
	return strings.TrimSpace(payload.SimplifiedText), false
}

func joinParts(parts []string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// metaPatterns are lowercase substrings of meta-commentary the
// capability tends to add despite instructions. Accented and plain
// variants both appear because backends differ.
var metaPatterns = []string{
	"este texto es una version",
	"este texto es una versión",
	"explicacion simplificada",
	"explicación simplificada",
	"para conocer el resultado",
	"vease el texto completo",
	"véase el texto completo",
	"nota:",
}

// stripMetaComments drops meta-commentary lines and collapses the blank
// runs left behind.
func stripMetaComments(text string) string {
	if text == "" {
		return ""
	}

	var cleaned []string
	for _, ln := range strings.Split(text, "\n") {
		low := strings.ToLower(ln)
		skip := false
		for _, pat := range metaPatterns {
			if strings.Contains(low, pat) {
				skip = true
				break
			}
		}
		if !skip {
			cleaned = append(cleaned, ln)
		}
	}

	var out []string
	prevBlank := false
	for _, ln := range cleaned {
		isBlank := strings.TrimSpace(ln) == ""
		if isBlank && prevBlank {
			continue
		}
		out = append(out, ln)
		prevBlank = isBlank
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

const notIdentified = "No identificado"

// renderReport assembles the fixed-order report: case facts, parties,
// procedural context, outcome. Downstream code relies on this order.
func renderReport(facts legal.CaseFacts, parties legal.Parties, context string, outcome legal.OutcomeDecision) string {
	var b strings.Builder

	b.WriteString("## Datos del caso\n\n")
	fmt.Fprintf(&b, "- Organo judicial: %s\n", orDefault(facts.Court))
	fmt.Fprintf(&b, "- Numero de caso: %s\n", orDefault(facts.CaseNumber))
	fmt.Fprintf(&b, "- Fecha: %s\n", orDefault(facts.Date))

	b.WriteString("\n## Partes\n\n")
	fmt.Fprintf(&b, "- Parte demandante: %s\n", orDefault(parties.Claimant))
	fmt.Fprintf(&b, "- Parte demandada: %s\n", orDefault(parties.Respondent))

	b.WriteString("\n## Contexto del procedimiento\n\n")
	if context != "" {
		b.WriteString(context)
		b.WriteString("\n")
	} else {
		b.WriteString("No hay contexto disponible.\n")
	}

	b.WriteString("\n## Resultado\n\n")
	b.WriteString(outcome.Summary)
	b.WriteString("\n")
	if outcome.LiteralClause != "" {
		fmt.Fprintf(&b, "\n> Texto literal del fallo: %s\n", outcome.LiteralClause)
	}

	return b.String()
}

func orDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return notIdentified
	}
	return s
}
