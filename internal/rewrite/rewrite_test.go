package rewrite

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/llm"
	"github.com/clarolegal/lexclaro/internal/segment"
)

type failingClient struct{}

func (failingClient) Name() string { return "failing" }

func (failingClient) Complete(context.Context, string, string, float64) (string, error) {
	return "", errors.New("backend unavailable")
}

func testRewriteConfig() Config {
	return Config{
		SoftLimit:     12000,
		HardLimit:     16000,
		MaxConcurrent: 2,
		Temperature:   0.3,
		Retries:       0,
		Backoff:       time.Millisecond,
	}
}

const rulingText = `JUZGADO DE PRIMERA INSTANCIA N 3 DE MADRID
Procedimiento ordinario 123/2024
DEMANDANTE: MARIA LOPEZ GARCIA
PARTE DEMANDADA: CONSTRUCCIONES EJEMPLO SL

ANTECEDENTES DE HECHO
PRIMERO. La parte actora reclamo 3.000 euros el 10/05/2024.

FALLO
Que ESTIMO la demanda y condeno a la demandada al pago de 3.000 euros, con COSTAS A LA PARTE DEMANDADA.

NOTIFIQUESE esta resolucion a las partes.`

func segmentedRuling(t *testing.T) legal.SegmentedDocument {
	t.Helper()
	doc, err := segment.New().Segment(rulingText)
	require.NoError(t, err)
	require.True(t, doc.ClauseFound)
	return doc
}

func classification() legal.ClassificationResult {
	return legal.ClassificationResult{
		DocType:    legal.DocTypeResolution,
		DocSubtype: legal.SubtypeJudgment,
		Confidence: 0.9,
		Provenance: legal.ProvenanceRules,
	}
}

func TestRewriteWithFakeBackend(t *testing.T) {
	r := New(llm.NewFakeClient(), testRewriteConfig(), slog.Default())
	doc := segmentedRuling(t)

	rw := r.Rewrite(context.Background(), doc, classification())

	assert.Equal(t, legal.WinnerClaimant, rw.Outcome.Winner)
	assert.Equal(t, legal.CostsRespondent, rw.Outcome.Costs)
	assert.Equal(t, doc.OperativeClause, rw.Outcome.LiteralClause)
	assert.False(t, rw.Truncated)
	assert.Empty(t, rw.Warnings)

	// Scraped metadata feeds the report header.
	assert.Equal(t, "MARIA LOPEZ GARCIA", rw.Parties.Claimant)
	assert.Equal(t, "CONSTRUCCIONES EJEMPLO SL", rw.Parties.Respondent)
	assert.Equal(t, "123/2024", rw.Facts.CaseNumber)
	assert.Contains(t, rw.Facts.Court, "JUZGADO DE PRIMERA INSTANCIA")

	// Fixed report order.
	report := rw.Report
	order := []string{"## Datos del caso", "## Partes", "## Contexto del procedimiento", "## Resultado"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(report, heading)
		require.GreaterOrEqual(t, idx, 0, heading)
		assert.Greater(t, idx, last)
		last = idx
	}
	assert.Contains(t, report, "> Texto literal del fallo:")
	assert.Contains(t, report, "3.000 euros")
}

func TestRewriteFallsBackToOriginalChunks(t *testing.T) {
	r := New(failingClient{}, testRewriteConfig(), slog.Default())
	doc := segmentedRuling(t)

	rw := r.Rewrite(context.Background(), doc, classification())

	// The outcome never depends on the backend.
	assert.Equal(t, legal.WinnerClaimant, rw.Outcome.Winner)
	// Original text passes through and the caller is told.
	assert.Contains(t, rw.ProceduralContext, "3.000 euros")
	require.NotEmpty(t, rw.Warnings)
	assert.Contains(t, rw.Warnings[len(rw.Warnings)-1], "forma original")
}

func TestBuildChunksShortDocumentStaysWhole(t *testing.T) {
	doc := legal.SegmentedDocument{NormalizedText: "texto corto"}
	chunks, truncated := buildChunks(doc, 100, 200)
	assert.Equal(t, []string{"texto corto"}, chunks)
	assert.False(t, truncated)
}

func TestBuildChunksSplitsBySections(t *testing.T) {
	doc := legal.SegmentedDocument{
		NormalizedText: strings.Repeat("a", 50),
		Sections: []legal.DocumentSection{
			{Name: "UNO", Content: strings.Repeat("b", 30)},
			{Name: "DOS", Content: strings.Repeat("c", 30)},
		},
	}
	chunks, truncated := buildChunks(doc, 40, 200)
	assert.Len(t, chunks, 2)
	assert.False(t, truncated)
}

func TestBuildChunksTruncatesAtHardLimit(t *testing.T) {
	// One unbreakable paragraph above the hard limit.
	doc := legal.SegmentedDocument{NormalizedText: strings.Repeat("x", 300)}
	chunks, truncated := buildChunks(doc, 100, 200)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 200)
	assert.True(t, truncated)
}

func TestBuildChunksTruncationKeepsMultibyteRunes(t *testing.T) {
	// 100 euro signs are 300 bytes; the hard limit falls mid-rune.
	doc := legal.SegmentedDocument{NormalizedText: strings.Repeat("€", 100)}
	chunks, truncated := buildChunks(doc, 100, 200)
	require.Len(t, chunks, 1)
	assert.True(t, truncated)
	assert.True(t, utf8.ValidString(chunks[0]))
	assert.Len(t, chunks[0], 198)
}

func TestSplitByParagraphsAccumulates(t *testing.T) {
	text := "primero\n\nsegundo\n\ntercero"
	chunks := splitByParagraphs(text, 18)
	assert.Equal(t, []string{"primero\n\nsegundo", "tercero"}, chunks)
}

func TestStripMetaComments(t *testing.T) {
	in := "Texto util.\n\nNota: este texto es una version simplificada.\n\nMas texto util."
	out := stripMetaComments(in)
	assert.NotContains(t, out, "Nota:")
	assert.Contains(t, out, "Texto util.")
	assert.Contains(t, out, "Mas texto util.")
	assert.NotContains(t, out, "\n\n\n")
}
