// Package verify checks the rewritten output against the original
// document. Rule checks look for lost amounts, dates, and deadlines and
// for outcome statements that contradict the operative clause. Findings
// are informational and never block a response.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/llm"
	"github.com/clarolegal/lexclaro/internal/rewrite"
)

// Issue codes. Entity-loss codes carry the lost literal after the colon,
// e.g. "MISSING_AMOUNT:3.000 euros".
const (
	CodeMissingAmount    = "MISSING_AMOUNT"
	CodeMissingDate      = "MISSING_DATE"
	CodeMissingDeadline  = "MISSING_DEADLINE"
	CodePolarityMismatch = "OUTCOME_POLARITY_MISMATCH"
	CodeCostsMismatch    = "COSTS_MISMATCH"
	CodeAssertsVictory   = "GUIDE_ASSERTS_VICTORY_WITHOUT_RULING"
	CodeExternalWarning  = "EXTERNAL_WARNING"
)

// Config carries the injected limits of the verifier.
type Config struct {
	CharBudget  int // per-text cap for the external review prompt
	Temperature float64
	Retries     int
	Backoff     time.Duration
}

// Verifier runs the fidelity checks. A nil client disables the external
// review pass; rule checks always run.
type Verifier struct {
	client llm.Client
	cfg    Config
	log    *slog.Logger
}

func New(client llm.Client, cfg Config, log *slog.Logger) *Verifier {
	return &Verifier{client: client, cfg: cfg, log: log}
}

// Verify compares the rewrite and guide against the original document.
// The report is safe only when no issue was raised and the external
// reviewer, when reachable, did not object.
func (v *Verifier) Verify(ctx context.Context, doc legal.SegmentedDocument, rw legal.StructuredRewrite, guide legal.LegalGuide) legal.FidelityReport {
	var issues []legal.FidelityIssue

	issues = append(issues, missingEntityIssues(doc.NormalizedText, rw.Report)...)
	issues = append(issues, outcomeIssues(doc, rw)...)
	issues = append(issues, victoryAssertionIssues(rw, guide)...)

	report := legal.FidelityReport{Issues: issues}
	for _, is := range issues {
		report.RuleFlags = append(report.RuleFlags, is.Code)
	}

	externalSafe := true
	if v.client != nil {
		if ext := v.externalReview(ctx, doc, rw); ext != nil {
			report.ExternalVerdict = ext.Verdict
			externalSafe = ext.IsSafe
			for _, w := range ext.Warnings {
				report.Issues = append(report.Issues, legal.FidelityIssue{
					Code:     CodeExternalWarning,
					Message:  w,
					Severity: legal.SeverityInfo,
				})
			}
		}
	}

	report.IsSafe = len(issues) == 0 && externalSafe
	return report
}

// missingEntityIssues flags amounts, dates, and deadlines present in the
// original but absent from the rewritten report.
func missingEntityIssues(original, rewritten string) []legal.FidelityIssue {
	canonical := canon(rewritten)
	var issues []legal.FidelityIssue

	for _, a := range ExtractAmounts(original) {
		if !strings.Contains(canonical, canon(a)) {
			issues = append(issues, legal.FidelityIssue{
				Code:     CodeMissingAmount + ":" + a,
				Message:  fmt.Sprintf("El importe %q del texto original no aparece en la version simplificada.", a),
				Severity: legal.SeverityWarning,
			})
		}
	}
	for _, d := range ExtractDates(original) {
		if !strings.Contains(canonical, canon(d)) {
			issues = append(issues, legal.FidelityIssue{
				Code:     CodeMissingDate + ":" + d,
				Message:  fmt.Sprintf("La fecha %q del texto original no aparece en la version simplificada.", d),
				Severity: legal.SeverityWarning,
			})
		}
	}
	for _, p := range ExtractDeadlines(original) {
		if !strings.Contains(canonical, canon(p)) {
			issues = append(issues, legal.FidelityIssue{
				Code:     CodeMissingDeadline + ":" + p,
				Message:  fmt.Sprintf("El plazo %q del texto original no aparece en la version simplificada.", p),
				Severity: legal.SeverityWarning,
			})
		}
	}
	return issues
}

// outcomeIssues re-derives the outcome from the literal clause and flags
// any disagreement with what the rewrite states.
func outcomeIssues(doc legal.SegmentedDocument, rw legal.StructuredRewrite) []legal.FidelityIssue {
	derived := rewrite.DeriveOutcome(doc.OperativeClause, doc.ClauseFound)
	var issues []legal.FidelityIssue

	if derived.Winner != legal.WinnerUnknown && rw.Outcome.Winner != derived.Winner {
		issues = append(issues, legal.FidelityIssue{
			Code:     CodePolarityMismatch,
			Message:  fmt.Sprintf("El resultado indicado (%s) no coincide con el fallo literal (%s).", rw.Outcome.Winner, derived.Winner),
			Severity: legal.SeverityWarning,
		})
	}
	if derived.Costs != legal.CostsUnknown && rw.Outcome.Costs != derived.Costs {
		issues = append(issues, legal.FidelityIssue{
			Code:     CodeCostsMismatch,
			Message:  fmt.Sprintf("Las costas indicadas (%s) no coinciden con el fallo literal (%s).", rw.Outcome.Costs, derived.Costs),
			Severity: legal.SeverityWarning,
		})
	}
	return issues
}

// victoryPhrases are lowercase markers of a win/lose assertion. Accented
// and plain variants both appear because generated prose keeps accents.
var victoryPhrases = []string{
	"ha ganado",
	"ha perdido",
	"gana el caso",
	"pierde el caso",
	"le dan la razon",
	"le dan la razón",
	"le da la razon",
	"le da la razón",
	"resulta vencedor",
	"resulta vencedora",
}

// victoryAssertionIssues flags win/lose language when no operative
// clause backs it.
func victoryAssertionIssues(rw legal.StructuredRewrite, guide legal.LegalGuide) []legal.FidelityIssue {
	if rw.Outcome.Winner != legal.WinnerUnknown {
		return nil
	}

	prose := strings.ToLower(strings.Join([]string{
		rw.Report,
		guide.MeaningForYou,
		guide.WhatToDoNow,
		guide.WhatHappensNext,
		guide.DeadlinesAndRisks,
	}, "\n"))

	for _, phrase := range victoryPhrases {
		if strings.Contains(prose, phrase) {
			return []legal.FidelityIssue{{
				Code:     CodeAssertsVictory,
				Message:  fmt.Sprintf("El texto afirma un resultado (%q) sin que exista un fallo localizado.", phrase),
				Severity: legal.SeverityWarning,
			}}
		}
	}
	return nil
}

type externalVerdict struct {
	IsSafe   bool     `json:"is_safe"`
	Warnings []string `json:"warnings"`
	Verdict  string   `json:"verdict"`
}

// externalReview asks the capability for a second opinion. Any failure
// returns nil; the rule flags stand on their own.
func (v *Verifier) externalReview(ctx context.Context, doc legal.SegmentedDocument, rw legal.StructuredRewrite) *externalVerdict {
	user := verifyUserPrompt(llm.Truncate(doc.NormalizedText, v.cfg.CharBudget), llm.Truncate(rw.Report, v.cfg.CharBudget))

	raw, err := llm.CompleteWithRetry(ctx, v.client, verifySystemPrompt, user, v.cfg.Temperature, v.cfg.Retries, v.cfg.Backoff)
	if err != nil {
		v.log.Warn("external review unavailable, keeping rule flags only", "error", err)
		return nil
	}

	var verdict externalVerdict
	if err := llm.ParseObject(raw, llm.VerifySchema, &verdict); err != nil {
		v.log.Warn("external review unparseable, keeping rule flags only", "error", err)
		return nil
	}
	return &verdict
}

// canonReplacer folds the accented vowels so literal comparisons survive
// a backend that restores accents the normalizer removed.
var canonReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

func canon(s string) string {
	return canonReplacer.Replace(strings.ToLower(s))
}
