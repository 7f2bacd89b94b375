package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "crlf to lf",
			input: "linea uno\r\nlinea dos",
			want:  "linea uno\nlinea dos",
		},
		{
			name:  "accents transliterated",
			input: "resolución judicial según ley",
			want:  "resolucion judicial segun ley",
		},
		{
			name:  "ocr hyphenation repaired",
			input: "senten-\ncia firme",
			want:  "sentencia firme",
		},
		{
			name:  "page number lines removed",
			input: "parrafo uno\n12\nparrafo dos",
			want:  "parrafo uno\nparrafo dos",
		},
		{
			name:  "whitespace collapsed",
			input: "texto   con\t\tespacios\n\n\n\ny saltos",
			want:  "texto con espacios\n\ny saltos",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	input := "JUZGADO DE PRIMERA INSTANCIA Nº 3\r\nSENTENCIA   123/2024\n\n\n\nFALLO\nQue estimo la demanda según derecho.\n5\n"
	once := Normalize(input)
	assert.Equal(t, once, Normalize(once))
}

func TestSegmentEmptyInput(t *testing.T) {
	s := New()
	_, err := s.Segment("   \n\t  ")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestSegmentDetectsSections(t *testing.T) {
	s := New()
	doc, err := s.Segment(`JUZGADO DE PRIMERA INSTANCIA N 3 DE MADRID
Procedimiento ordinario 123/2024

ANTECEDENTES DE HECHO
PRIMERO. La parte actora presento demanda.

FUNDAMENTOS DE DERECHO
PRIMERO. Resulta de aplicacion el articulo 394 LEC.

FALLO
Que ESTIMO la demanda interpuesta.

NOTIFIQUESE esta resolucion a las partes.`)
	require.NoError(t, err)

	names := doc.SectionNames()
	assert.Contains(t, names, "ENCABEZADO")
	assert.Contains(t, names, "ANTECEDENTES DE HECHO")
	assert.Contains(t, names, "FUNDAMENTOS DE DERECHO")
	assert.Contains(t, names, "FALLO")

	// Sections appear in document order.
	assert.Equal(t, "ENCABEZADO", names[0])

	require.True(t, doc.ClauseFound)
	assert.Contains(t, doc.OperativeClause, "ESTIMO la demanda")
	assert.NotContains(t, doc.OperativeClause, "NOTIFIQUESE")
	assert.Contains(t, doc.NormalizedText, doc.OperativeClause)
}

func TestSegmentNoMarkersFallsBackToSingleSection(t *testing.T) {
	s := New()
	doc, err := s.Segment("Un texto cualquiera sin estructura judicial reconocible.")
	require.NoError(t, err)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "DOCUMENTO", doc.Sections[0].Name)
	assert.InDelta(t, 0.2, doc.Sections[0].Confidence, 0.001)
	assert.False(t, doc.ClauseFound)
	assert.Empty(t, doc.OperativeClause)
}

func TestExtractOperativeClauseSkipsProseAcuerdo(t *testing.T) {
	clause, found := ExtractOperativeClause("Las partes estan de acuerdo en los hechos.\nFALLO\nQue ESTIMO la demanda.")
	require.True(t, found)
	assert.True(t, strings.HasPrefix(clause, "FALLO"))
}

func TestExtractOperativeClause(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFound  bool
		wantInside string
	}{
		{
			name:       "fallo with closer",
			input:      "FUNDAMENTOS\ntexto\nFALLO\nQue DESESTIMO la demanda.\nNOTIFIQUESE a las partes.",
			wantFound:  true,
			wantInside: "DESESTIMO la demanda",
		},
		{
			name:       "parte dispositiva to end of text",
			input:      "texto previo\nPARTE DISPOSITIVA\nSe acuerda el archivo.",
			wantFound:  true,
			wantInside: "archivo",
		},
		{
			name:      "no anchor",
			input:     "Este escrito no contiene parte resolutoria alguna.",
			wantFound: false,
		},
		{
			name:       "uppercase acuerdo heading",
			input:      "PROVIDENCIA\nACUERDO: Admitir a tramite la demanda.",
			wantFound:  true,
			wantInside: "Admitir a tramite",
		},
		{
			name:      "prose de acuerdo is not a ruling",
			input:     "Texto sin parte resolutoria, aunque estemos de acuerdo.",
			wantFound: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, found := ExtractOperativeClause(tt.input)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Contains(t, clause, tt.wantInside)
			} else {
				assert.Empty(t, clause)
			}
		})
	}
}
