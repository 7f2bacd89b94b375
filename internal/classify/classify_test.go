package classify

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/segment"
)

const sentenciaText = `JUZGADO DE PRIMERA INSTANCIA N 3 DE MADRID
SENTENCIA 123/2024

ANTECEDENTES DE HECHO
PRIMERO. La parte actora presento demanda de juicio ordinario.

FUNDAMENTOS DE DERECHO
PRIMERO. Resulta de aplicacion el articulo 394 LEC.

FALLO
Que ESTIMO la demanda interpuesta y condeno a la demandada al pago de 3.000 euros.

NOTIFIQUESE esta resolucion a las partes.`

// countingClient fails every call and counts how often it was asked.
type countingClient struct {
	calls int
	reply string
}

func (c *countingClient) Name() string { return "counting" }

func (c *countingClient) Complete(_ context.Context, _, _ string, _ float64) (string, error) {
	c.calls++
	if c.reply == "" {
		return "", errors.New("backend unavailable")
	}
	return c.reply, nil
}

func testConfig() Config {
	return Config{
		RuleThreshold:  0.8,
		ForceThreshold: 0.5,
		CharBudget:     6000,
		Temperature:    0,
		Retries:        0,
		Backoff:        time.Millisecond,
	}
}

func segmented(t *testing.T, text string) legal.SegmentedDocument {
	t.Helper()
	doc, err := segment.New().Segment(text)
	require.NoError(t, err)
	return doc
}

func TestClassifySentenciaUsesRulesOnly(t *testing.T) {
	client := &countingClient{}
	c := New(client, DefaultKeywords(), testConfig(), slog.Default())

	result, err := c.Classify(context.Background(), segmented(t, sentenciaText))
	require.NoError(t, err)

	assert.Equal(t, legal.DocTypeResolution, result.DocType)
	assert.Equal(t, legal.SubtypeJudgment, result.DocSubtype)
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
	assert.Equal(t, legal.ProvenanceRules, result.Provenance)
	assert.NotEmpty(t, result.Explanations)

	// Strong rule confidence means the capability is never consulted.
	assert.Equal(t, 0, client.calls)
}

func TestClassifyWeakRulesFusesGenerativeResult(t *testing.T) {
	client := &countingClient{
		reply: `{"doc_type": "RESOLUCION_JURIDICA", "doc_subtype": "SENTENCIA", "confidence": 0.85, "rationale": "Estructura de sentencia."}`,
	}
	c := New(client, DefaultKeywords(), testConfig(), slog.Default())

	doc := legal.SegmentedDocument{NormalizedText: "ESCRITO presentado ante el organo competente."}
	result, err := c.Classify(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, legal.ProvenanceHybrid, result.Provenance)
	assert.Equal(t, legal.DocTypeResolution, result.DocType)
	assert.Equal(t, legal.SubtypeJudgment, result.DocSubtype)
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
	// Both estimators contribute explanations.
	assert.GreaterOrEqual(t, len(result.Explanations), 2)
}

func TestClassifyKeepsRuleResultWhenGenerativeFails(t *testing.T) {
	client := &countingClient{}
	c := New(client, DefaultKeywords(), testConfig(), slog.Default())

	doc := legal.SegmentedDocument{NormalizedText: "ESCRITO presentado ante el organo competente."}
	result, err := c.Classify(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, legal.DocTypeFiling, result.DocType)
	assert.Equal(t, legal.ProvenanceRules, result.Provenance)
}

func TestClassifyNoSignalAtAll(t *testing.T) {
	client := &countingClient{}
	c := New(client, DefaultKeywords(), testConfig(), slog.Default())

	doc := legal.SegmentedDocument{NormalizedText: "Receta de cocina: mezclar harina y agua."}
	_, err := c.Classify(context.Background(), doc)
	require.ErrorIs(t, err, ErrNoSignal)
}

func TestEnforceCoherenceForcesResolutionType(t *testing.T) {
	r := enforceCoherence(legal.ClassificationResult{
		DocType:    legal.DocTypeFiling,
		DocSubtype: legal.SubtypeOrder,
	})
	assert.Equal(t, legal.DocTypeResolution, r.DocType)
}

func TestRuleClassifyNoMatches(t *testing.T) {
	doc := legal.SegmentedDocument{NormalizedText: "texto sin terminos juridicos"}
	r := ruleClassify(DefaultKeywords(), doc)

	assert.Equal(t, legal.DocTypeOther, r.DocType)
	assert.Equal(t, legal.SubtypeUnknown, r.DocSubtype)
	assert.Zero(t, r.Confidence)
}

func TestRuleClassifyResolutionWinsTies(t *testing.T) {
	// One term per family: the resolution family takes the tie.
	doc := legal.SegmentedDocument{NormalizedText: "Se dicta AUTO resolviendo el RECURSO interpuesto."}
	r := ruleClassify(DefaultKeywords(), doc)
	assert.Equal(t, legal.DocTypeResolution, r.DocType)
}

func TestMapDocTypeAndSubtype(t *testing.T) {
	assert.Equal(t, legal.DocTypeResolution, mapDocType("resolucion_juridica"))
	assert.Equal(t, legal.DocTypeFiling, mapDocType("ESCRITO_PROCESAL"))
	assert.Equal(t, legal.DocTypeOther, mapDocType("cualquier cosa"))

	assert.Equal(t, legal.SubtypeJudgment, mapDocSubtype("SENTENCIA"))
	assert.Equal(t, legal.SubtypeAppeal, mapDocSubtype("recurso"))
	assert.Equal(t, legal.SubtypeUnknown, mapDocSubtype("misterio"))
}
