// Package guide produces the four-block citizen guidance from the
// rewritten document. The guide is derivative prose; the outcome facts
// it may mention come from the deterministic rewrite, never from here.
package guide

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/llm"
)

// Config carries the injected limits of the guide builder.
type Config struct {
	CharBudget  int
	Temperature float64
	Retries     int
	Backoff     time.Duration
}

type Builder struct {
	client llm.Client
	cfg    Config
	log    *slog.Logger
}

func New(client llm.Client, cfg Config, log *slog.Logger) *Builder {
	return &Builder{client: client, cfg: cfg, log: log}
}

const guideSystemPrompt = `Eres un asistente de orientación jurídica para ciudadanos en España.
A partir de un documento legal ya simplificado, redactas una guía en 4 bloques:

1) "meaning_for_you": qué significa este documento para la persona afectada.
2) "what_to_do_now": qué debe hacer ahora, en pasos concretos.
3) "what_happens_next": qué ocurrirá después en el procedimiento.
4) "deadlines_and_risks": plazos que corren y riesgos de no actuar.

Reglas:
- Usa un tono cercano y frases cortas.
- Mantén plazos, fechas e importes con dígitos, exactamente como aparecen.
- No afirmes que nadie gana o pierde salvo que el resumen del resultado lo diga.
- No des consejo legal personalizado; recomienda consultar a un profesional cuando proceda.

Responde SOLO con un JSON estricto:
{
  "meaning_for_you": "...",
  "what_to_do_now": "...",
  "what_happens_next": "...",
  "deadlines_and_risks": "..."
}
`

func guideUserPrompt(rw legal.StructuredRewrite, classification legal.ClassificationResult, budget int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tipo de documento: %s / %s\n", classification.DocType, classification.DocSubtype)
	fmt.Fprintf(&b, "Resultado determinado: %s (costas: %s)\n", rw.Outcome.Winner, rw.Outcome.Costs)
	fmt.Fprintf(&b, "Resumen del resultado: %s\n\n", rw.Outcome.Summary)

	report := llm.Truncate(rw.Report, budget)
	b.WriteString("--- DOCUMENTO SIMPLIFICADO ---\n")
	b.WriteString(report)
	b.WriteString("\n--- FIN DOCUMENTO ---\n")

	return b.String()
}

type guidePayload struct {
	MeaningForYou     string `json:"meaning_for_you"`
	WhatToDoNow       string `json:"what_to_do_now"`
	WhatHappensNext   string `json:"what_happens_next"`
	DeadlinesAndRisks string `json:"deadlines_and_risks"`
}

// Build asks the capability for the four blocks. On any failure it
// returns the static fallback guide so the response always carries
// guidance.
func (b *Builder) Build(ctx context.Context, rw legal.StructuredRewrite, classification legal.ClassificationResult) legal.LegalGuide {
	user := guideUserPrompt(rw, classification, b.cfg.CharBudget)

	raw, err := llm.CompleteWithRetry(ctx, b.client, guideSystemPrompt, user, b.cfg.Temperature, b.cfg.Retries, b.cfg.Backoff)
	if err != nil {
		b.log.Warn("guide generation failed, using fallback", "error", err)
		return fallbackGuide()
	}

	var payload guidePayload
	if err := llm.ParseObject(raw, llm.GuideSchema, &payload); err != nil {
		b.log.Warn("guide response unparseable, using fallback", "error", err)
		return fallbackGuide()
	}

	return legal.LegalGuide{
		MeaningForYou:     strings.TrimSpace(payload.MeaningForYou),
		WhatToDoNow:       strings.TrimSpace(payload.WhatToDoNow),
		WhatHappensNext:   strings.TrimSpace(payload.WhatHappensNext),
		DeadlinesAndRisks: strings.TrimSpace(payload.DeadlinesAndRisks),
		Provider:          b.client.Name(),
	}
}

// fallbackGuide is generic Spanish guidance used when the capability is
// unreachable or answers garbage.
func fallbackGuide() legal.LegalGuide {
	return legal.LegalGuide{
		MeaningForYou:     "Este documento forma parte de un procedimiento judicial que te afecta. Lee con calma la version simplificada para entender su contenido.",
		WhatToDoNow:       "Guarda el documento, anota las fechas y plazos que aparecen y reune la documentacion relacionada con el caso.",
		WhatHappensNext:   "El juzgado continuara el procedimiento y te notificara los siguientes pasos. Si hay plazos abiertos, el procedimiento avanzara cuando venzan.",
		DeadlinesAndRisks: "Comprueba los plazos indicados en el documento. No responder a tiempo puede hacer que pierdas derechos procesales. Ante cualquier duda consulta a un abogado o al servicio de orientacion juridica gratuita.",
		Provider:          "fallback",
	}
}
