package rewrite

import (
	"fmt"
	"strings"

	"github.com/clarolegal/lexclaro/internal/legal"
)

const rewriteSystemPrompt = `Eres un EXPERTO en Lenguaje Jurídico Claro y Legal Design en España.
Tu misión es REESCRIBIR el texto legal original para que un ciudadano sin conocimientos de derecho
lo entienda perfectamente, SIN CAMBIAR el efecto jurídico, los plazos, las cantidades, las partes
ni el sentido del fallo.

Reglas obligatorias:
1) Usa frases cortas, párrafos separados y listas verticales para enumeraciones.
2) Escribe plazos, fechas y cantidades SIEMPRE con dígitos y mantén TODOS los que aparezcan
   en el texto original. No inventes fechas, plazos ni importes nuevos.
3) Mantén los artículos y normas citadas, colocándolos al final de la frase o entre paréntesis.
4) Mantén los términos jurídicos importantes añadiendo una explicación breve entre paréntesis.
5) Usa el orden Sujeto + Verbo + Complementos y di claramente quién hace qué y a quién.
6) No cambies quién gana o pierde, ni quién debe hacer qué.

Sobre el resultado del caso:
- El FALLO LITERAL que se te proporciona es la ÚNICA fuente de verdad sobre el resultado y las costas.
- NO deduzcas el resultado de ninguna otra sección del documento.
- Si no se te proporciona un fallo literal, NO afirmes que ninguna parte gana o pierde.

Responde SOLO con un JSON estricto de esta forma:
{
  "simplified_text": "..."
}
No añadas comentarios meta ni expliques qué estás haciendo.
`

func rewriteUserPrompt(chunk string, classification legal.ClassificationResult, clause string, clauseFound bool, facts legal.CaseFacts, parties legal.Parties) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tipo de documento: %s / %s\n\n", classification.DocType, classification.DocSubtype)

	if clauseFound {
		b.WriteString("--- FALLO LITERAL (única fuente de verdad sobre el resultado) ---\n")
		b.WriteString(clause)
		b.WriteString("\n--- FIN FALLO LITERAL ---\n\n")
	} else {
		b.WriteString("No se ha localizado el fallo literal: no afirmes ningún resultado.\n\n")
	}

	var meta []string
	if facts.Court != "" {
		meta = append(meta, "Órgano judicial: "+facts.Court)
	}
	if facts.CaseNumber != "" {
		meta = append(meta, "Número de caso: "+facts.CaseNumber)
	}
	if facts.Date != "" {
		meta = append(meta, "Fecha: "+facts.Date)
	}
	if parties.Claimant != "" {
		meta = append(meta, "Parte demandante: "+parties.Claimant)
	}
	if parties.Respondent != "" {
		meta = append(meta, "Parte demandada: "+parties.Respondent)
	}
	if len(meta) > 0 {
		b.WriteString("Contexto del caso:\n")
		for _, m := range meta {
			b.WriteString("- " + m + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Reescribe el siguiente texto jurídico en lenguaje claro.\n")
	b.WriteString("No añadas información nueva ni elimines plazos, importes, partes o derechos.\n\n")
	b.WriteString("--- TEXTO ORIGINAL ---\n")
	b.WriteString(chunk)
	b.WriteString("\n--- FIN TEXTO ---\n")

	return b.String()
}
