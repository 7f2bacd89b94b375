package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clarolegal/lexclaro/internal/legal"
)

func TestDeriveOutcome(t *testing.T) {
	tests := []struct {
		name       string
		clause     string
		wantWinner legal.Winner
		wantCosts  legal.Costs
	}{
		{
			name:       "estimation favors claimant",
			clause:     "FALLO: Que ESTIMO la demanda interpuesta y condeno a la demandada.",
			wantWinner: legal.WinnerClaimant,
			wantCosts:  legal.CostsUnknown,
		},
		{
			name:       "dismissal favors respondent",
			clause:     "FALLO: SE DESESTIMA LA DEMANDA interpuesta por la parte actora.",
			wantWinner: legal.WinnerRespondent,
			wantCosts:  legal.CostsUnknown,
		},
		{
			name:       "partial estimation",
			clause:     "FALLO: ESTIMO PARCIALMENTE la demanda interpuesta.",
			wantWinner: legal.WinnerPartial,
			wantCosts:  legal.CostsUnknown,
		},
		{
			name:       "dismissal with costs to claimant",
			clause:     "FALLO: Que DESESTIMO la demanda, con COSTAS A LA PARTE ACTORA.",
			wantWinner: legal.WinnerRespondent,
			wantCosts:  legal.CostsClaimant,
		},
		{
			name:       "estimation with costs to respondent",
			clause:     "FALLO: ESTIMO la demanda e impongo las COSTAS A LA PARTE DEMANDADA.",
			wantWinner: legal.WinnerClaimant,
			wantCosts:  legal.CostsRespondent,
		},
		{
			name:       "no costs pronouncement",
			clause:     "FALLO: ESTIMO PARCIALMENTE la demanda, SIN ESPECIAL PRONUNCIAMIENTO SOBRE COSTAS.",
			wantWinner: legal.WinnerPartial,
			wantCosts:  legal.CostsNone,
		},
		{
			name:       "no recognizable verbs",
			clause:     "PARTE DISPOSITIVA: Se acuerda dar traslado a las partes.",
			wantWinner: legal.WinnerUnknown,
			wantCosts:  legal.CostsUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := DeriveOutcome(tt.clause, true)
			assert.Equal(t, tt.wantWinner, out.Winner)
			assert.Equal(t, tt.wantCosts, out.Costs)
			assert.Equal(t, tt.clause, out.LiteralClause)
			assert.NotEmpty(t, out.Summary)
		})
	}
}

func TestDeriveOutcomeNoClause(t *testing.T) {
	out := DeriveOutcome("", false)
	assert.Equal(t, legal.WinnerUnknown, out.Winner)
	assert.Equal(t, legal.CostsUnknown, out.Costs)
	assert.Empty(t, out.LiteralClause)
	assert.Equal(t, NoRulingSummary, out.Summary)
}

// The estimation verb inside DESESTIMA must never read as a win for the
// claimant.
func TestDeriveOutcomeDismissalIsNotEstimation(t *testing.T) {
	out := DeriveOutcome("SE DESESTIMA LA DEMANDA", true)
	assert.Equal(t, legal.WinnerRespondent, out.Winner)
}
