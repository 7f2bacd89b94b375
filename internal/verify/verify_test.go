package verify

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/llm"
)

func TestExtractEntities(t *testing.T) {
	text := "Se condena al pago de $5.000 COP y de 3.000 euros antes del 10/05/2024, " +
		"con un plazo de 20 dias habiles desde el 3 de junio de 2024."

	amounts := ExtractAmounts(text)
	assert.Contains(t, amounts, "$5.000 COP")
	assert.Contains(t, amounts, "3.000 euros")

	dates := ExtractDates(text)
	assert.Contains(t, dates, "10/05/2024")
	assert.Contains(t, dates, "3 de junio de 2024")

	deadlines := ExtractDeadlines(text)
	assert.Contains(t, deadlines, "20 dias habiles")
}

func TestExtractEntitiesDedup(t *testing.T) {
	text := "pago de 500 euros, repito, 500 euros"
	assert.Equal(t, []string{"500 euros"}, ExtractAmounts(text))
}

func testVerifyConfig() Config {
	return Config{
		CharBudget:  6000,
		Temperature: 0,
		Retries:     0,
		Backoff:     time.Millisecond,
	}
}

func TestVerifyFlagsLostEntities(t *testing.T) {
	v := New(nil, testVerifyConfig(), slog.Default())

	doc := legal.SegmentedDocument{
		NormalizedText: "Se condena al pago de $5.000 COP antes del 10/05/2024, en un plazo de 20 dias habiles.",
	}
	rw := legal.StructuredRewrite{
		Report:  "## Resultado\n\nDebes pagar una cantidad de dinero pronto.",
		Outcome: legal.OutcomeDecision{Winner: legal.WinnerUnknown, Costs: legal.CostsUnknown},
	}

	report := v.Verify(context.Background(), doc, rw, legal.LegalGuide{})

	assert.False(t, report.IsSafe)
	assert.Contains(t, report.RuleFlags, "MISSING_AMOUNT:$5.000 COP")
	assert.Contains(t, report.RuleFlags, "MISSING_DATE:10/05/2024")
	assert.Contains(t, report.RuleFlags, "MISSING_DEADLINE:20 dias habiles")
}

func TestVerifyAcceptsAccentedRewrite(t *testing.T) {
	v := New(nil, testVerifyConfig(), slog.Default())

	doc := legal.SegmentedDocument{
		NormalizedText: "Dispones de 20 dias habiles para recurrir.",
	}
	rw := legal.StructuredRewrite{
		// The backend restored the accents the normalizer removed.
		Report:  "Tienes 20 días hábiles para presentar un recurso.",
		Outcome: legal.OutcomeDecision{Winner: legal.WinnerUnknown, Costs: legal.CostsUnknown},
	}

	report := v.Verify(context.Background(), doc, rw, legal.LegalGuide{})
	assert.True(t, report.IsSafe)
	assert.Empty(t, report.Issues)
}

func TestVerifyFlagsPolarityMismatch(t *testing.T) {
	v := New(nil, testVerifyConfig(), slog.Default())

	clause := "FALLO: SE DESESTIMA LA DEMANDA."
	doc := legal.SegmentedDocument{
		NormalizedText:  clause,
		OperativeClause: clause,
		ClauseFound:     true,
	}
	rw := legal.StructuredRewrite{
		Report:  clause,
		Outcome: legal.OutcomeDecision{Winner: legal.WinnerClaimant, Costs: legal.CostsUnknown},
	}

	report := v.Verify(context.Background(), doc, rw, legal.LegalGuide{})

	assert.False(t, report.IsSafe)
	assert.Contains(t, report.RuleFlags, CodePolarityMismatch)
}

func TestVerifyFlagsVictoryAssertionWithoutRuling(t *testing.T) {
	v := New(nil, testVerifyConfig(), slog.Default())

	doc := legal.SegmentedDocument{NormalizedText: "Escrito de tramite sin parte resolutoria."}
	rw := legal.StructuredRewrite{
		Report:  "Resumen del escrito.",
		Outcome: legal.OutcomeDecision{Winner: legal.WinnerUnknown, Costs: legal.CostsUnknown},
	}
	guide := legal.LegalGuide{MeaningForYou: "Enhorabuena, usted ha ganado el caso."}

	report := v.Verify(context.Background(), doc, rw, guide)

	assert.False(t, report.IsSafe)
	assert.Contains(t, report.RuleFlags, CodeAssertsVictory)
}

func TestVerifySafeWithExternalReview(t *testing.T) {
	v := New(llm.NewFakeClient(), testVerifyConfig(), slog.Default())

	clause := "FALLO: Que ESTIMO la demanda y condeno al pago de 3.000 euros."
	doc := legal.SegmentedDocument{
		NormalizedText:  clause,
		OperativeClause: clause,
		ClauseFound:     true,
	}
	rw := legal.StructuredRewrite{
		Report:  "La jueza te da la razon y la otra parte debe pagarte 3.000 euros.",
		Outcome: legal.OutcomeDecision{Winner: legal.WinnerClaimant, Costs: legal.CostsUnknown},
	}

	report := v.Verify(context.Background(), doc, rw, legal.LegalGuide{})

	assert.True(t, report.IsSafe)
	assert.Empty(t, report.Issues)
	assert.Equal(t, "OK", report.ExternalVerdict)
}
