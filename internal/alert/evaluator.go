package alert

import "raincheck/internal/types"

// Evaluate maps a forecast to an alert decision using the fixed severity
// policy in types.SevereConditionCodes. It is a pure, total function: no side
// effects, no failure modes. Condition text and code pass through unchanged;
// the evaluator adds no interpretation beyond membership testing.
func Evaluate(forecast types.ForecastResult) types.AlertDecision {
	return types.AlertDecision{
		ShouldNotify:  types.IsSevereCode(forecast.ConditionCode),
		ConditionText: forecast.ConditionText,
		ConditionCode: forecast.ConditionCode,
	}
}
