package rewrite

import (
	"regexp"
	"strings"

	"github.com/clarolegal/lexclaro/internal/legal"
)

// Fixed rules over the literal operative clause. Word boundaries keep
// the estimation verb from matching inside DESESTIMA.
var (
	estimationRe = regexp.MustCompile(`(?i)\bESTIM(?:A|O|E|AMOS|ANDO|AR)\b`)
	dismissalRe  = regexp.MustCompile(`(?i)\bDESESTIM\w*`)
	partialRe    = regexp.MustCompile(`(?i)\bPARCIAL(?:MENTE)?\b`)

	costsClaimantRe   = regexp.MustCompile(`(?i)COSTAS\s+A\s+LA\s+(?:PARTE\s+)?ACTORA|COSTAS\s+A\s+LA\s+(?:PARTE\s+)?DEMANDANTE`)
	costsRespondentRe = regexp.MustCompile(`(?i)COSTAS\s+A\s+LA\s+(?:PARTE\s+)?DEMANDADA|COSTAS\s+AL\s+DEMANDADO`)
	costsNoneRe       = regexp.MustCompile(`(?i)SIN\s+(?:HACER\s+)?(?:ESPECIAL\s+)?(?:PRONUNCIAMIENTO|IMPOSICION|CONDENA)\s+(?:SOBRE|EN|DE)?\s*COSTAS|SIN\s+COSTAS`)
)

// NoRulingSummary is the explicit statement used whenever no operative
// clause was located. The capability is never allowed to assert an
// outcome in that case.
const NoRulingSummary = "No se ha localizado la parte dispositiva (fallo) en este documento."

// DeriveOutcome computes winner and costs from the literal clause alone,
// irrespective of anything the external capability proposed.
func DeriveOutcome(clause string, found bool) legal.OutcomeDecision {
	if !found {
		return legal.OutcomeDecision{
			Winner:        legal.WinnerUnknown,
			Costs:         legal.CostsUnknown,
			LiteralClause: "",
			Summary:       NoRulingSummary,
		}
	}

	winner := legal.WinnerUnknown
	switch {
	case estimationRe.MatchString(clause) && partialRe.MatchString(clause):
		winner = legal.WinnerPartial
	case estimationRe.MatchString(clause):
		winner = legal.WinnerClaimant
	case dismissalRe.MatchString(clause):
		winner = legal.WinnerRespondent
	}

	costs := legal.CostsUnknown
	switch {
	case costsNoneRe.MatchString(clause):
		costs = legal.CostsNone
	case costsClaimantRe.MatchString(clause):
		costs = legal.CostsClaimant
	case costsRespondentRe.MatchString(clause):
		costs = legal.CostsRespondent
	}

	return legal.OutcomeDecision{
		Winner:        winner,
		Costs:         costs,
		LiteralClause: clause,
		Summary:       outcomeSummary(winner, costs),
	}
}

func outcomeSummary(winner legal.Winner, costs legal.Costs) string {
	var b strings.Builder
	switch winner {
	case legal.WinnerClaimant:
		b.WriteString("La decision favorece a la parte demandante: se estima la demanda.")
	case legal.WinnerRespondent:
		b.WriteString("La decision favorece a la parte demandada: se desestima la demanda.")
	case legal.WinnerPartial:
		b.WriteString("La decision estima la demanda solo en parte.")
	default:
		b.WriteString("No se ha podido determinar automaticamente quien obtiene la razon; revisa el texto literal del fallo.")
	}
	switch costs {
	case legal.CostsClaimant:
		b.WriteString(" Las costas se imponen a la parte demandante.")
	case legal.CostsRespondent:
		b.WriteString(" Las costas se imponen a la parte demandada.")
	case legal.CostsNone:
		b.WriteString(" No hay condena en costas.")
	}
	return b.String()
}
