package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"raincheck/internal/types"
)

func TestEvaluate_SevereCodes(t *testing.T) {
	for code := range types.SevereConditionCodes {
		decision := Evaluate(types.ForecastResult{ConditionText: "Lluvia", ConditionCode: code})
		assert.True(t, decision.ShouldNotify, "code %d should be severe", code)
		assert.Equal(t, code, decision.ConditionCode)
	}
}

func TestEvaluate_BenignCodes(t *testing.T) {
	benign := []int{0, 1000, 1003, 1006, 1030, 1066, 1087, 1180, 1183, 1273, -1}
	for _, code := range benign {
		decision := Evaluate(types.ForecastResult{ConditionText: "Despejado", ConditionCode: code})
		assert.False(t, decision.ShouldNotify, "code %d should not be severe", code)
	}
}

func TestEvaluate_PassesConditionThroughUnchanged(t *testing.T) {
	decision := Evaluate(types.ForecastResult{
		ConditionText: "Lluvia moderada a intervalos",
		ConditionCode: 1189,
	})
	assert.Equal(t, "Lluvia moderada a intervalos", decision.ConditionText)
	assert.Equal(t, 1189, decision.ConditionCode)
	assert.True(t, decision.ShouldNotify)
}

func TestEvaluate_TextDoesNotInfluenceDecision(t *testing.T) {
	// Only the numeric code decides; alarming text with a benign code stays quiet.
	decision := Evaluate(types.ForecastResult{ConditionText: "Lluvia torrencial", ConditionCode: 1000})
	assert.False(t, decision.ShouldNotify)

	decision = Evaluate(types.ForecastResult{ConditionText: "Soleado", ConditionCode: 1195})
	assert.True(t, decision.ShouldNotify)
}

func TestWarningMessage(t *testing.T) {
	subject, body := warningMessage("lluvia ligera")

	assert.Equal(t, "ENTREGA RETRASADA POR CONDICIONES CLIMÁTICAS", subject)
	assert.Contains(t, body, "Mañana se espera lluvia ligera")
	assert.Contains(t, body, "lluvia ligera is expected tomorrow")
}
