package classify

import (
	"fmt"
	"strings"
)

const classifySystemPrompt = `Eres un asistente LEGAL EXPERTO en documentos judiciales de ESPAÑA.
Debes CLASIFICAR el documento en una de estas categorías:

1) RESOLUCION_JURIDICA -> documentos emitidos por un juzgado.
   Subtipos: SENTENCIA, AUTO, DECRETO, PROVIDENCIA.
2) ESCRITO_PROCESAL -> documentos presentados por las partes.
   Subtipos: DEMANDA, RECURSO, ALEGACIONES, OPOSICION.
3) OTRO -> si no encaja.

Instrucciones:
- Responde SIEMPRE en JSON estricto.
- NO añadas explicaciones fuera del JSON.
- Usa doc_subtype='DESCONOCIDO' si no estás seguro.
`

func classifyUserPrompt(snippet string, sections []string) string {
	sectionsBlock := "- (sin secciones detectadas)"
	if len(sections) > 0 {
		var b strings.Builder
		for i, s := range sections {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- " + s)
		}
		sectionsBlock = b.String()
	}
	return fmt.Sprintf(`Analiza el siguiente texto y clasifícalo:

--- DOCUMENTO ---
%s
--- FIN DOCUMENTO ---

Secciones detectadas:
%s

Devuelve SOLO un JSON con esta forma:
{
  "doc_type": "...",
  "doc_subtype": "...",
  "confidence": 0.0,
  "rationale": "..."
}
`, snippet, sectionsBlock)
}
