package verify

import (
	"fmt"
	"strings"
)

const verifySystemPrompt = `Eres un revisor jurídico. Comparas un texto legal original con su
versión simplificada y decides si la simplificación es FIEL: mismo resultado, mismas partes,
mismos plazos, fechas e importes, sin información inventada.

Responde SOLO con un JSON estricto de esta forma:
{
  "is_safe": true,
  "warnings": ["..."],
  "verdict": "..."
}
"is_safe" es false si la versión simplificada cambia el sentido jurídico, pierde datos
relevantes o afirma resultados que el original no respalda.
`

func verifyUserPrompt(original, rewritten string) string {
	var b strings.Builder

	b.WriteString("--- TEXTO ORIGINAL ---\n")
	b.WriteString(original)
	b.WriteString("\n--- FIN ORIGINAL ---\n\n")

	b.WriteString("--- TEXTO SIMPLIFICADO ---\n")
	b.WriteString(rewritten)
	b.WriteString("\n--- FIN SIMPLIFICADO ---\n\n")

	fmt.Fprintf(&b, "Evalúa la fidelidad de la versión simplificada y responde con el JSON indicado.\n")
	return b.String()
}
